package models

// Snapshot is every record the aggregators read, fetched in one go.
type Snapshot struct {
	Sales            []Sale
	Stock            []StockBatch
	Expenses         []Expense
	Customers        []Customer
	CustomerPayments []CustomerPayment
	Suppliers        []Supplier
	SupplierPayments []SupplierPayment
	CashAdjustments  []CashAdjustment
	BankAccounts     []BankAccount
	BankTransactions []BankTransaction
}
