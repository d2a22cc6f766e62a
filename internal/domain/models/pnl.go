package models

import "github.com/shopspring/decimal"

// ProfitAndLoss is the trading result of a day range.
type ProfitAndLoss struct {
	Start         string          `json:"start"`
	End           string          `json:"end"`
	Revenue       decimal.Decimal `json:"revenue"`
	COGS          decimal.Decimal `json:"cogs"`
	GrossProfit   decimal.Decimal `json:"grossProfit"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	DamageLoss    decimal.Decimal `json:"damageLoss"`
	NetProfit     decimal.Decimal `json:"netProfit"`

	Quarantined []QuarantinedRecord `json:"quarantined,omitempty"`
}
