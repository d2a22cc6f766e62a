package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInferBankCategory(t *testing.T) {
	assert.Equal(t, BankOpening, InferBankCategory(BankTransaction{Description: "Opening balance", Type: TxnIn}))
	assert.Equal(t, BankUPI, InferBankCategory(BankTransaction{Description: "UPI Sale abc", Type: TxnIn}))
	assert.Equal(t, BankSupplier, InferBankCategory(BankTransaction{Description: "Supplier Payment", Type: TxnOut}))
	assert.Equal(t, BankExpense, InferBankCategory(BankTransaction{Description: "electricity", Type: TxnOut}))
	assert.Equal(t, BankOther, InferBankCategory(BankTransaction{Description: "interest", Type: TxnIn}))
}

func TestInferAdjustmentCategory(t *testing.T) {
	assert.Equal(t, AdjustmentOpening, InferAdjustmentCategory(CashAdjustment{Type: AdjustmentAdd, Description: "Opening Balance"}))
	assert.Equal(t, AdjustmentOther, InferAdjustmentCategory(CashAdjustment{Type: AdjustmentRemove, Description: "opening float taken"}))
	assert.Equal(t, AdjustmentOther, InferAdjustmentCategory(CashAdjustment{Type: AdjustmentAdd, Description: "float top-up"}))
}
