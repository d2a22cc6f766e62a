package banking

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/floraledger/internal/domain/models"
)

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, got.Equal(decimal.RequireFromString(want)), "want %s, got %s", want, got)
}

func TestOpeningAndUPIAccount(t *testing.T) {
	accounts := []models.BankAccount{{ID: "acc-1", Name: "HDFC", AccountNumber: "001", Balance: 1200}}
	txns := []models.BankTransaction{
		{ID: "t1", BankAccountID: "acc-1", Amount: 1000, Type: models.TxnIn, Category: models.BankOpening},
		{ID: "t2", BankAccountID: "acc-1", Amount: 200, Type: models.TxnIn, Category: models.BankUPI},
	}

	summary := Summarize(accounts, txns, nil)

	require.Len(t, summary.PerAccount, 1)
	acc := summary.PerAccount[0]
	assert.Equal(t, "HDFC", acc.Name)
	assertAmount(t, "1200", acc.ComputedBalance)
	assertAmount(t, "200", acc.UPIIn)
	assertAmount(t, "1000", acc.OpeningIn)
	assertAmount(t, "1200", acc.AccountBalance)

	assertAmount(t, "1200", summary.ComputedBalance)
	assertAmount(t, "1200", summary.AccountBalances)
}

func TestCategoriesAndPerAccountFilter(t *testing.T) {
	accounts := []models.BankAccount{{ID: "a", Balance: 100}, {ID: "b", Balance: 50}}
	txns := []models.BankTransaction{
		{BankAccountID: "a", Amount: 500, Type: models.TxnIn, Category: models.BankOther},
		{BankAccountID: "a", Amount: 120, Type: models.TxnOut, Category: models.BankSupplier},
		{BankAccountID: "b", Amount: 80, Type: models.TxnOut, Category: "expense"},
		{BankAccountID: "b", Amount: 10, Type: models.TxnOut, Category: models.BankOther},
		{BankAccountID: "gone", Amount: 7, Type: models.TxnIn, Category: models.BankUPI},
	}

	summary := Summarize(accounts, txns, nil)

	assertAmount(t, "507", summary.TotalIn)
	assertAmount(t, "210", summary.TotalOut)
	assertAmount(t, "120", summary.SupplierOut)
	assertAmount(t, "80", summary.ExpensesOut)
	assertAmount(t, "7", summary.UPIIn)
	assertAmount(t, "297", summary.ComputedBalance)
	assertAmount(t, "150", summary.AccountBalances)

	a, b := summary.PerAccount[0], summary.PerAccount[1]
	assertAmount(t, "380", a.ComputedBalance)
	assertAmount(t, "120", a.SupplierOut)
	assertAmount(t, "-90", b.ComputedBalance)
	assertAmount(t, "80", b.ExpensesOut)
}

func TestCategoryTotalsIgnoreDirection(t *testing.T) {
	accounts := []models.BankAccount{{ID: "a", Balance: 650}}
	txns := []models.BankTransaction{
		{BankAccountID: "a", Amount: 1000, Type: models.TxnIn, Category: models.BankOpening},
		{BankAccountID: "a", Amount: 100, Type: models.TxnOut, Category: models.BankOpening},
		{BankAccountID: "a", Amount: 50, Type: models.TxnOut, Category: models.BankUPI},
		{BankAccountID: "a", Amount: 30, Type: models.TxnIn, Category: models.BankSupplier},
		{BankAccountID: "a", Amount: 20, Type: models.TxnIn, Category: models.BankExpense},
		{BankAccountID: "a", Amount: 250, Type: models.TxnOut, Category: models.BankOther},
	}

	summary := Summarize(accounts, txns, nil)

	assertAmount(t, "1100", summary.OpeningIn)
	assertAmount(t, "50", summary.UPIIn)
	assertAmount(t, "30", summary.SupplierOut)
	assertAmount(t, "20", summary.ExpensesOut)
	assertAmount(t, "1050", summary.TotalIn)
	assertAmount(t, "400", summary.TotalOut)
	assertAmount(t, "650", summary.ComputedBalance)

	acc := summary.PerAccount[0]
	assertAmount(t, "1100", acc.OpeningIn)
	assertAmount(t, "50", acc.UPIIn)
}

func TestOpeningFromDaybookUsesCategory(t *testing.T) {
	txns := []models.BankTransaction{{Amount: 300, Type: models.TxnIn, Category: models.BankUPI}}
	adjustments := []models.CashAdjustment{
		{Amount: 1000, Type: models.AdjustmentAdd, Category: models.AdjustmentOpening, Description: "Float"},
		{Amount: 500, Type: models.AdjustmentAdd, Category: models.AdjustmentOther, Description: "Opening balance"},
		{Amount: 40, Type: models.AdjustmentRemove, Category: models.AdjustmentOpening},
	}

	summary := Summarize(nil, txns, adjustments)

	assertAmount(t, "1000", summary.OpeningFromDaybook)
	assertAmount(t, "1300", summary.ComputedBalanceWithOpening)
	assert.Empty(t, summary.PerAccount)
}

type stubRepo struct {
	accounts []models.BankAccount
	txns     []models.BankTransaction
	err      error
}

func (s stubRepo) ListBankAccounts(context.Context) ([]models.BankAccount, error) {
	return s.accounts, s.err
}

func (s stubRepo) ListBankTransactions(context.Context) ([]models.BankTransaction, error) {
	return s.txns, nil
}

func (s stubRepo) ListCashAdjustments(context.Context) ([]models.CashAdjustment, error) {
	return nil, nil
}

func TestServiceSummary(t *testing.T) {
	svc := NewService(stubRepo{
		accounts: []models.BankAccount{{ID: "a"}},
		txns:     []models.BankTransaction{{BankAccountID: "a", Amount: 10, Type: models.TxnIn}},
	}, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assertAmount(t, "10", summary.PerAccount[0].TotalIn)

	_, err = NewService(stubRepo{err: errors.New("timeout")}, nil).Summary(context.Background())
	assert.ErrorContains(t, err, "load bank accounts")
}
