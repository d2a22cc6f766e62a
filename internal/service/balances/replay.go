package balances

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// SaleDebt is what a sale adds to its customer's outstanding balance: the
// unpaid remainder of a credit sale made to a known customer.
func SaleDebt(sale models.Sale) decimal.Decimal {
	if sale.PaymentMode != models.PaymentCredit || sale.CustomerID == "" {
		return decimal.Zero
	}
	debt := decimal.NewFromFloat(sale.TotalAmount).Sub(decimal.NewFromFloat(sale.AmountPaid))
	if !debt.IsPositive() {
		return decimal.Zero
	}
	return debt
}

// PurchaseCredit is what a batch bought on credit adds to its supplier's balance.
func PurchaseCredit(batch models.StockBatch) decimal.Decimal {
	if batch.PaymentStatus != models.PurchaseCredit || batch.SupplierID == "" {
		return decimal.Zero
	}
	qty := decimal.NewFromInt(int64(batch.PurchasedQuantity()))
	return qty.Mul(decimal.NewFromFloat(batch.PurchasePrice))
}

// BankDelta is the signed effect of a transaction on its account.
func BankDelta(txn models.BankTransaction) decimal.Decimal {
	amount := decimal.NewFromFloat(txn.Amount)
	if txn.Type == models.TxnOut {
		return amount.Neg()
	}
	return amount
}

// Ledger holds balances derived from history, keyed by party id.
type Ledger struct {
	Customers map[string]decimal.Decimal
	Suppliers map[string]decimal.Decimal
	Banks     map[string]decimal.Decimal
}

// Get returns the replayed balance of one party.
func (l Ledger) Get(kind models.PartyKind, id string) (decimal.Decimal, bool) {
	var m map[string]decimal.Decimal
	switch kind {
	case models.PartyCustomer:
		m = l.Customers
	case models.PartySupplier:
		m = l.Suppliers
	case models.PartyBank:
		m = l.Banks
	}
	v, ok := m[id]
	return v, ok
}

// Replay folds every party's history into its balance. A zero asOf replays
// everything; otherwise only records dated on or before that day count, and
// records with unusable dates are left out.
func Replay(snap models.Snapshot, asOf time.Time) Ledger {
	l := Ledger{
		Customers: make(map[string]decimal.Decimal, len(snap.Customers)),
		Suppliers: make(map[string]decimal.Decimal, len(snap.Suppliers)),
		Banks:     make(map[string]decimal.Decimal, len(snap.BankAccounts)),
	}
	counts := func(raw string) bool {
		if asOf.IsZero() {
			return true
		}
		d, err := models.ParseDay(raw)
		return err == nil && !d.After(models.Day(asOf))
	}
	add := func(m map[string]decimal.Decimal, id string, delta decimal.Decimal) {
		m[id] = m[id].Add(delta)
	}

	for _, c := range snap.Customers {
		l.Customers[c.ID] = decimal.NewFromFloat(c.OpeningBalance)
	}
	for _, s := range snap.Suppliers {
		l.Suppliers[s.ID] = decimal.NewFromFloat(s.OpeningBalance)
	}
	for _, a := range snap.BankAccounts {
		l.Banks[a.ID] = decimal.Zero
	}

	for _, sale := range snap.Sales {
		if debt := SaleDebt(sale); debt.IsPositive() && counts(sale.Date) {
			add(l.Customers, sale.CustomerID, debt)
		}
	}
	for _, p := range snap.CustomerPayments {
		if counts(p.Date) {
			add(l.Customers, p.CustomerID, decimal.NewFromFloat(p.Amount).Neg())
		}
	}
	for _, batch := range snap.Stock {
		if credit := PurchaseCredit(batch); credit.IsPositive() && counts(batch.PurchaseDate) {
			add(l.Suppliers, batch.SupplierID, credit)
		}
	}
	for _, p := range snap.SupplierPayments {
		if counts(p.Date) {
			add(l.Suppliers, p.SupplierID, decimal.NewFromFloat(p.Amount).Neg())
		}
	}
	for _, txn := range snap.BankTransactions {
		if txn.BankAccountID != "" && counts(txn.Date) {
			add(l.Banks, txn.BankAccountID, BankDelta(txn))
		}
	}

	return l
}
