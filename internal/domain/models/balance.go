package models

import "github.com/shopspring/decimal"

// PartyKind names the owner of a running balance.
type PartyKind string

const (
	PartyCustomer PartyKind = "customer"
	PartySupplier PartyKind = "supplier"
	PartyBank     PartyKind = "bank"
)

// Valid reports whether k is a known party kind.
func (k PartyKind) Valid() bool {
	return k == PartyCustomer || k == PartySupplier || k == PartyBank
}

// Drift is a stored counter that disagrees with the replay of its history.
type Drift struct {
	Kind     PartyKind       `json:"kind"`
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Stored   decimal.Decimal `json:"stored"`
	Replayed decimal.Decimal `json:"replayed"`
	Diff     decimal.Decimal `json:"diff"`
}

// ReconcileReport lists every drift found in one reconciliation pass.
type ReconcileReport struct {
	Checked  int     `json:"checked"`
	Drifts   []Drift `json:"drifts"`
	Repaired bool    `json:"repaired"`
}

// PartyBalance is a point-in-time balance derived from history.
type PartyBalance struct {
	Kind    PartyKind       `json:"kind"`
	ID      string          `json:"id"`
	AsOf    string          `json:"asOf"`
	Balance decimal.Decimal `json:"balance"`
	Stored  decimal.Decimal `json:"stored"`
}
