package pos

import (
	"context"
	"maps"
	"slices"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

type memState struct {
	sales            map[string]models.Sale
	stock            map[string]models.StockBatch
	expenses         map[string]models.Expense
	customers        map[string]models.Customer
	customerPayments map[string]models.CustomerPayment
	suppliers        map[string]models.Supplier
	supplierPayments map[string]models.SupplierPayment
	adjustments      map[string]models.CashAdjustment
	accounts         map[string]models.BankAccount
	accountOrder     []string
	txns             map[string]models.BankTransaction
}

func (s memState) clone() memState {
	return memState{
		sales:            maps.Clone(s.sales),
		stock:            maps.Clone(s.stock),
		expenses:         maps.Clone(s.expenses),
		customers:        maps.Clone(s.customers),
		customerPayments: maps.Clone(s.customerPayments),
		suppliers:        maps.Clone(s.suppliers),
		supplierPayments: maps.Clone(s.supplierPayments),
		adjustments:      maps.Clone(s.adjustments),
		accounts:         maps.Clone(s.accounts),
		accountOrder:     slices.Clone(s.accountOrder),
		txns:             maps.Clone(s.txns),
	}
}

// memRepo is an in-memory Repository whose transactions roll back on error.
type memRepo struct {
	memState
	txCalls int
	failOn  string
	audits  []models.AuditLog
}

func newMemRepo() *memRepo {
	return &memRepo{memState: memState{
		sales:            map[string]models.Sale{},
		stock:            map[string]models.StockBatch{},
		expenses:         map[string]models.Expense{},
		customers:        map[string]models.Customer{},
		customerPayments: map[string]models.CustomerPayment{},
		suppliers:        map[string]models.Supplier{},
		supplierPayments: map[string]models.SupplierPayment{},
		adjustments:      map[string]models.CashAdjustment{},
		accounts:         map[string]models.BankAccount{},
		txns:             map[string]models.BankTransaction{},
	}}
}

func (r *memRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	r.txCalls++
	saved := r.memState.clone()
	if err := fn(ctx); err != nil {
		r.memState = saved
		return err
	}
	return nil
}

func (r *memRepo) fail(op string) error {
	if r.failOn == op {
		return apperror.NewInternal(nil)
	}
	return nil
}

func (r *memRepo) GetSale(_ context.Context, id string) (models.Sale, error) {
	if v, ok := r.sales[id]; ok {
		return v, nil
	}
	return models.Sale{}, apperror.NewNotFound("sale", id)
}

func (r *memRepo) InsertSale(_ context.Context, sale models.Sale) error {
	if err := r.fail("InsertSale"); err != nil {
		return err
	}
	r.sales[sale.ID] = sale
	return nil
}

func (r *memRepo) DeleteSale(_ context.Context, id string) error {
	if _, ok := r.sales[id]; !ok {
		return apperror.NewNotFound("sale", id)
	}
	delete(r.sales, id)
	return nil
}

func (r *memRepo) ListStock(context.Context) ([]models.StockBatch, error) {
	out := make([]models.StockBatch, 0, len(r.stock))
	for _, b := range r.stock {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b models.StockBatch) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *memRepo) GetStockBatch(_ context.Context, id string) (models.StockBatch, error) {
	if v, ok := r.stock[id]; ok {
		return v, nil
	}
	return models.StockBatch{}, apperror.NewNotFound("stock batch", id)
}

func (r *memRepo) InsertStockBatch(_ context.Context, batch models.StockBatch) error {
	r.stock[batch.ID] = batch
	return nil
}

func (r *memRepo) AdjustStockQuantity(_ context.Context, id string, delta int) error {
	batch, ok := r.stock[id]
	if !ok {
		return apperror.NewNotFound("stock batch", id)
	}
	if batch.Quantity+delta < 0 {
		return apperror.NewInsufficientStock(id, -delta)
	}
	batch.Quantity += delta
	r.stock[id] = batch
	return nil
}

func (r *memRepo) SetStockSellingPrice(_ context.Context, id string, price float64) error {
	batch, ok := r.stock[id]
	if !ok {
		return apperror.NewNotFound("stock batch", id)
	}
	batch.SellingPrice = price
	r.stock[id] = batch
	return nil
}

func (r *memRepo) InsertExpense(_ context.Context, e models.Expense) error {
	r.expenses[e.ID] = e
	return nil
}

func (r *memRepo) GetCustomer(_ context.Context, id string) (models.Customer, error) {
	if v, ok := r.customers[id]; ok {
		return v, nil
	}
	return models.Customer{}, apperror.NewNotFound("customer", id)
}

func (r *memRepo) InsertCustomer(_ context.Context, c models.Customer) error {
	r.customers[c.ID] = c
	return nil
}

func (r *memRepo) IncCustomerBalance(_ context.Context, id string, delta float64) error {
	if err := r.fail("IncCustomerBalance"); err != nil {
		return err
	}
	c, ok := r.customers[id]
	if !ok {
		return apperror.NewNotFound("customer", id)
	}
	c.OutstandingBalance += delta
	r.customers[id] = c
	return nil
}

func (r *memRepo) InsertCustomerPayment(_ context.Context, p models.CustomerPayment) error {
	r.customerPayments[p.ID] = p
	return nil
}

func (r *memRepo) GetSupplier(_ context.Context, id string) (models.Supplier, error) {
	if v, ok := r.suppliers[id]; ok {
		return v, nil
	}
	return models.Supplier{}, apperror.NewNotFound("supplier", id)
}

func (r *memRepo) InsertSupplier(_ context.Context, s models.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *memRepo) IncSupplierBalance(_ context.Context, id string, delta float64) error {
	s, ok := r.suppliers[id]
	if !ok {
		return apperror.NewNotFound("supplier", id)
	}
	s.OutstandingBalance += delta
	r.suppliers[id] = s
	return nil
}

func (r *memRepo) InsertSupplierPayment(_ context.Context, p models.SupplierPayment) error {
	r.supplierPayments[p.ID] = p
	return nil
}

func (r *memRepo) InsertCashAdjustment(_ context.Context, c models.CashAdjustment) error {
	r.adjustments[c.ID] = c
	return nil
}

func (r *memRepo) GetBankAccount(_ context.Context, id string) (models.BankAccount, error) {
	if v, ok := r.accounts[id]; ok {
		return v, nil
	}
	return models.BankAccount{}, apperror.NewNotFound("bank account", id)
}

func (r *memRepo) FirstBankAccount(context.Context) (models.BankAccount, error) {
	if len(r.accountOrder) == 0 {
		return models.BankAccount{}, apperror.NewNotFound("bank account", "")
	}
	return r.accounts[r.accountOrder[0]], nil
}

func (r *memRepo) InsertBankAccount(_ context.Context, a models.BankAccount) error {
	r.accounts[a.ID] = a
	r.accountOrder = append(r.accountOrder, a.ID)
	return nil
}

func (r *memRepo) UpdateBankAccountDetails(_ context.Context, a models.BankAccount) error {
	current, ok := r.accounts[a.ID]
	if !ok {
		return apperror.NewNotFound("bank account", a.ID)
	}
	current.Name, current.AccountNumber, current.IFSC = a.Name, a.AccountNumber, a.IFSC
	r.accounts[a.ID] = current
	return nil
}

func (r *memRepo) IncBankBalance(_ context.Context, id string, delta float64) error {
	a, ok := r.accounts[id]
	if !ok {
		return apperror.NewNotFound("bank account", id)
	}
	a.Balance += delta
	r.accounts[id] = a
	return nil
}

func (r *memRepo) InsertBankTransaction(_ context.Context, t models.BankTransaction) error {
	r.txns[t.ID] = t
	return nil
}

func (r *memRepo) ListBankTransactionsBySource(_ context.Context, sourceID string) ([]models.BankTransaction, error) {
	var out []models.BankTransaction
	for _, t := range r.txns {
		if t.SourceID == sourceID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memRepo) DeleteBankTransaction(_ context.Context, id string) error {
	if _, ok := r.txns[id]; !ok {
		return apperror.NewNotFound("bank transaction", id)
	}
	delete(r.txns, id)
	return nil
}

func (r *memRepo) txnsOf(accountID string) []models.BankTransaction {
	var out []models.BankTransaction
	for _, t := range r.txns {
		if t.BankAccountID == accountID {
			out = append(out, t)
		}
	}
	return out
}

func (r *memRepo) InsertAuditLog(_ context.Context, entry models.AuditLog) error {
	if err := r.fail("InsertAuditLog"); err != nil {
		return err
	}
	r.audits = append(r.audits, entry)
	return nil
}
