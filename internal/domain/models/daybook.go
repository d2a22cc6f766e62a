package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryCategory labels where a daybook row came from.
type EntryCategory string

const (
	EntrySale       EntryCategory = "SALE"
	EntryPurchase   EntryCategory = "PURCHASE"
	EntryExpense    EntryCategory = "EXPENSE"
	EntryPayment    EntryCategory = "PAYMENT"
	EntryAdjustment EntryCategory = "ADJUSTMENT"
	EntryBank       EntryCategory = "BANK"
)

// EntryType tells whether a row is money in or money out.
type EntryType string

const (
	EntryIncome      EntryType = "INCOME"
	EntryExpenditure EntryType = "EXPENSE"
)

// DaybookEntry is one row of the cash book. Purchases carry their invoice
// total in RecordedAmount and never move Balance.
type DaybookEntry struct {
	Date           string           `json:"date"`
	At             time.Time        `json:"-"`
	Description    string           `json:"desc"`
	Type           EntryType        `json:"type"`
	Category       EntryCategory    `json:"category"`
	Credit         decimal.Decimal  `json:"credit"`
	Debit          decimal.Decimal  `json:"debit"`
	RecordedAmount *decimal.Decimal `json:"recordedAmount,omitempty"`
	Balance        decimal.Decimal  `json:"balance"`
	SourceID       string           `json:"sourceId"`
}

// QuarantinedRecord is a record left out of an aggregation because its date
// could not be parsed.
type QuarantinedRecord struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// Daybook is the cash book for an inclusive range of days.
type Daybook struct {
	Start          string              `json:"start"`
	End            string              `json:"end"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	Entries        []DaybookEntry      `json:"entries"`
	ClosingBalance decimal.Decimal     `json:"closingBalance"`
	TotalCredit    decimal.Decimal     `json:"totalCredit"`
	TotalDebit     decimal.Decimal     `json:"totalDebit"`
	Quarantined    []QuarantinedRecord `json:"quarantined,omitempty"`
}
