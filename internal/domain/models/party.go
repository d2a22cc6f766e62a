package models

// Customer owes the shop OutstandingBalance.
type Customer struct {
	ID                 string  `bson:"id" json:"id"`
	Name               string  `bson:"name" json:"name"`
	Phone              string  `bson:"phone" json:"phone"`
	OpeningBalance     float64 `bson:"openingBalance" json:"openingBalance"`
	OutstandingBalance float64 `bson:"outstandingBalance" json:"outstandingBalance"`
}

// Supplier is owed OutstandingBalance by the shop.
type Supplier struct {
	ID                 string  `bson:"id" json:"id"`
	Name               string  `bson:"name" json:"name"`
	Contact            string  `bson:"contact" json:"contact"`
	OpeningBalance     float64 `bson:"openingBalance" json:"openingBalance"`
	OutstandingBalance float64 `bson:"outstandingBalance" json:"outstandingBalance"`
}

// PaymentMethod enumerates how a customer settled debt.
type PaymentMethod string

const (
	MethodCash   PaymentMethod = "CASH"
	MethodUPI    PaymentMethod = "UPI"
	MethodCard   PaymentMethod = "CARD"
	MethodBank   PaymentMethod = "BANK"
	MethodCheque PaymentMethod = "CHEQUE"
)

// CustomerPayment reduces a customer's debt.
type CustomerPayment struct {
	ID            string        `bson:"id" json:"id"`
	CustomerID    string        `bson:"customerId" json:"customerId"`
	Amount        float64       `bson:"amount" json:"amount"`
	Date          string        `bson:"date" json:"date"`
	PaymentMethod PaymentMethod `bson:"paymentMethod" json:"paymentMethod"`
	BankAccountID string        `bson:"bankAccountId,omitempty" json:"bankAccountId,omitempty"`
	CreatedBy     string        `bson:"createdBy" json:"createdBy"`
}

// SupplierPayment reduces what the shop owes a supplier.
type SupplierPayment struct {
	ID              string      `bson:"id" json:"id"`
	SupplierID      string      `bson:"supplierId" json:"supplierId"`
	Amount          float64     `bson:"amount" json:"amount"`
	Date            string      `bson:"date" json:"date"`
	Note            string      `bson:"note" json:"note"`
	PaymentMode     PaymentMode `bson:"paymentMode,omitempty" json:"paymentMode,omitempty"`
	BankAccountID   string      `bson:"bankAccountId,omitempty" json:"bankAccountId,omitempty"`
	HideFromDaybook bool        `bson:"hideFromDaybook" json:"hideFromDaybook"`
	CreatedBy       string      `bson:"createdBy" json:"createdBy"`
}
