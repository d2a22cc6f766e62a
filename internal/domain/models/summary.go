package models

import "github.com/shopspring/decimal"

// BankTotals are the per-category sums shared by the global and per-account views.
type BankTotals struct {
	OpeningIn       decimal.Decimal `json:"openingIn"`
	UPIIn           decimal.Decimal `json:"upiIn"`
	TotalIn         decimal.Decimal `json:"totalIn"`
	TotalOut        decimal.Decimal `json:"totalOut"`
	SupplierOut     decimal.Decimal `json:"supplierOut"`
	ExpensesOut     decimal.Decimal `json:"expensesOut"`
	ComputedBalance decimal.Decimal `json:"computedBalance"`
}

// AccountSummary is the bank summary of one account.
type AccountSummary struct {
	BankAccountID  string          `json:"bankAccountId"`
	Name           string          `json:"name"`
	AccountNumber  string          `json:"accountNumber"`
	AccountBalance decimal.Decimal `json:"accountBalance"`
	BankTotals
}

// BankSummary feeds the dashboard tiles.
type BankSummary struct {
	BankTotals
	AccountBalances            decimal.Decimal  `json:"accountBalances"`
	OpeningFromDaybook         decimal.Decimal  `json:"openingFromDaybook"`
	ComputedBalanceWithOpening decimal.Decimal  `json:"computedBalanceWithOpening"`
	PerAccount                 []AccountSummary `json:"perAccount"`
}
