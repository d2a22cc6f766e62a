package backfill

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/floraledger/internal/domain/models"
)

type fakeRepo struct {
	txns        []models.BankTransaction
	adjustments []models.CashAdjustment
	bankSet     map[string]models.BankCategory
	adjSet      map[string]models.AdjustmentCategory
	failSet     bool
}

func (f *fakeRepo) ListBankTransactions(context.Context) ([]models.BankTransaction, error) {
	return f.txns, nil
}

func (f *fakeRepo) SetBankTransactionCategory(_ context.Context, id string, c models.BankCategory) error {
	if f.failSet {
		return errors.New("write conflict")
	}
	if f.bankSet == nil {
		f.bankSet = map[string]models.BankCategory{}
	}
	f.bankSet[id] = c
	return nil
}

func (f *fakeRepo) ListCashAdjustments(context.Context) ([]models.CashAdjustment, error) {
	return f.adjustments, nil
}

func (f *fakeRepo) SetCashAdjustmentCategory(_ context.Context, id string, c models.AdjustmentCategory) error {
	if f.adjSet == nil {
		f.adjSet = map[string]models.AdjustmentCategory{}
	}
	f.adjSet[id] = c
	return nil
}

func legacyRepo() *fakeRepo {
	return &fakeRepo{
		txns: []models.BankTransaction{
			{ID: "t1", Type: models.TxnIn, Description: "Opening Balance"},
			{ID: "t2", Type: models.TxnIn, Description: "UPI Sale 42", Category: models.BankOther},
			{ID: "t3", Type: models.TxnOut, Description: "Paid supplier Rose Co", Category: "misc"},
			{ID: "t4", Type: models.TxnOut, Description: "Electricity"},
			{ID: "t5", Type: models.TxnIn, Description: "Cash deposit", Category: models.BankOther},
			{ID: "t6", Type: models.TxnOut, Description: "upi refund", Category: models.BankExpense},
		},
		adjustments: []models.CashAdjustment{
			{ID: "a1", Type: models.AdjustmentAdd, Description: "Opening cash"},
			{ID: "a2", Type: models.AdjustmentRemove, Description: "Opening float returned"},
			{ID: "a3", Type: models.AdjustmentAdd, Description: "Opening", Category: models.AdjustmentOther},
		},
	}
}

func TestRun(t *testing.T) {
	repo := legacyRepo()

	res, err := NewService(repo, nil).Run(context.Background(), false)
	require.NoError(t, err)

	assert.Equal(t, Result{BankTransactions: 4, CashAdjustments: 2}, res)
	assert.Equal(t, map[string]models.BankCategory{
		"t1": models.BankOpening,
		"t2": models.BankUPI,
		"t3": models.BankSupplier,
		"t4": models.BankExpense,
	}, repo.bankSet)
	assert.Equal(t, map[string]models.AdjustmentCategory{
		"a1": models.AdjustmentOpening,
		"a2": models.AdjustmentOther,
	}, repo.adjSet)
}

func TestRunDryRun(t *testing.T) {
	repo := legacyRepo()

	res, err := NewService(repo, nil).Run(context.Background(), true)
	require.NoError(t, err)

	assert.Equal(t, Result{BankTransactions: 4, CashAdjustments: 2}, res)
	assert.Empty(t, repo.bankSet)
	assert.Empty(t, repo.adjSet)
}

func TestRunStopsOnWriteFailure(t *testing.T) {
	repo := legacyRepo()
	repo.failSet = true

	_, err := NewService(repo, nil).Run(context.Background(), false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "update bank transaction t1")
}
