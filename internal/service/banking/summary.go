package banking

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// Summarize sums bank transactions by category, globally and per account.
// Cash adjustments tagged OPENING contribute the daybook-declared opening.
func Summarize(accounts []models.BankAccount, txns []models.BankTransaction, adjustments []models.CashAdjustment) models.BankSummary {
	summary := models.BankSummary{
		BankTotals:         totals(txns, ""),
		AccountBalances:    decimal.Zero,
		OpeningFromDaybook: decimal.Zero,
		PerAccount:         make([]models.AccountSummary, 0, len(accounts)),
	}

	for _, account := range accounts {
		balance := decimal.NewFromFloat(account.Balance)
		summary.AccountBalances = summary.AccountBalances.Add(balance)
		summary.PerAccount = append(summary.PerAccount, models.AccountSummary{
			BankAccountID:  account.ID,
			Name:           account.Name,
			AccountNumber:  account.AccountNumber,
			AccountBalance: balance,
			BankTotals:     totals(txns, account.ID),
		})
	}

	for _, adj := range adjustments {
		if adj.Type == models.AdjustmentAdd && adj.Category == models.AdjustmentOpening {
			summary.OpeningFromDaybook = summary.OpeningFromDaybook.Add(decimal.NewFromFloat(adj.Amount))
		}
	}
	summary.ComputedBalanceWithOpening = summary.ComputedBalance.Add(summary.OpeningFromDaybook)

	return summary
}

// totals folds the transactions of one account, or of all accounts when
// accountID is empty.
func totals(txns []models.BankTransaction, accountID string) models.BankTotals {
	t := models.BankTotals{
		OpeningIn:   decimal.Zero,
		UPIIn:       decimal.Zero,
		TotalIn:     decimal.Zero,
		TotalOut:    decimal.Zero,
		SupplierOut: decimal.Zero,
		ExpensesOut: decimal.Zero,
	}
	for _, txn := range txns {
		if accountID != "" && txn.BankAccountID != accountID {
			continue
		}
		amount := decimal.NewFromFloat(txn.Amount)
		category := models.BankCategory(strings.ToUpper(string(txn.Category)))

		switch txn.Type {
		case models.TxnIn:
			t.TotalIn = t.TotalIn.Add(amount)
		case models.TxnOut:
			t.TotalOut = t.TotalOut.Add(amount)
		}
		// Category sums follow the category alone, whatever the direction.
		switch category {
		case models.BankOpening:
			t.OpeningIn = t.OpeningIn.Add(amount)
		case models.BankUPI:
			t.UPIIn = t.UPIIn.Add(amount)
		case models.BankSupplier:
			t.SupplierOut = t.SupplierOut.Add(amount)
		case models.BankExpense:
			t.ExpensesOut = t.ExpensesOut.Add(amount)
		}
	}
	t.ComputedBalance = t.TotalIn.Sub(t.TotalOut)
	return t
}
