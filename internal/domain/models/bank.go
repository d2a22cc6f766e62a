package models

import "strings"

// BankAccount holds the shop's money outside the cash drawer.
type BankAccount struct {
	ID            string  `bson:"id" json:"id"`
	Name          string  `bson:"name" json:"name"`
	AccountNumber string  `bson:"accountNumber" json:"accountNumber"`
	IFSC          string  `bson:"ifsc" json:"ifsc"`
	Balance       float64 `bson:"balance" json:"balance"`
}

// TxnType is the direction of a bank transaction.
type TxnType string

const (
	TxnIn  TxnType = "IN"
	TxnOut TxnType = "OUT"
)

// BankCategory groups bank transactions for reporting.
type BankCategory string

const (
	BankOpening  BankCategory = "OPENING"
	BankUPI      BankCategory = "UPI"
	BankSupplier BankCategory = "SUPPLIER"
	BankExpense  BankCategory = "EXPENSE"
	BankOther    BankCategory = "OTHER"
)

// Valid reports whether c is a known category.
func (c BankCategory) Valid() bool {
	switch c {
	case BankOpening, BankUPI, BankSupplier, BankExpense, BankOther:
		return true
	}
	return false
}

// BankTransaction moves money in or out of one bank account. SourceID links
// transactions recorded as a side effect of a sale, payment or expense.
type BankTransaction struct {
	ID            string       `bson:"id" json:"id"`
	BankAccountID string       `bson:"bankAccountId" json:"bankAccountId"`
	Amount        float64      `bson:"amount" json:"amount"`
	Type          TxnType      `bson:"type" json:"type"`
	Category      BankCategory `bson:"category" json:"category"`
	Date          string       `bson:"date" json:"date"`
	Description   string       `bson:"description" json:"description"`
	SourceID      string       `bson:"sourceId,omitempty" json:"sourceId,omitempty"`
	CreatedBy     string       `bson:"createdBy" json:"createdBy"`
}

// InferBankCategory classifies a transaction stored or posted without a
// category from its description. Aggregation relies on Category alone.
func InferBankCategory(t BankTransaction) BankCategory {
	desc := strings.ToLower(t.Description)
	switch {
	case strings.Contains(desc, "opening"):
		return BankOpening
	case strings.Contains(desc, "upi"):
		return BankUPI
	case strings.Contains(desc, "supplier"):
		return BankSupplier
	case t.Type == TxnOut:
		return BankExpense
	default:
		return BankOther
	}
}
