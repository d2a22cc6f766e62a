package pos

import (
	"context"

	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// Audited resources.
const (
	resourceSale        = "SALE"
	resourceStock       = "STOCK"
	resourceExpense     = "EXPENSE"
	resourceCustomer    = "CUSTOMER"
	resourceSupplier    = "SUPPLIER"
	resourcePayment     = "PAYMENT"
	resourceAdjustment  = "ADJUSTMENT"
	resourceBankAccount = "BANK_ACCOUNT"
	resourceTransaction = "TRANSACTION"
)

// audit stores who did what after the write has committed or failed. A
// failure to store the entry is logged and never fails the write.
func (s *Service) audit(ctx context.Context, actor models.Actor, action, resource, resourceID string, changes map[string]any, opErr error) {
	entry := models.AuditLog{
		ID:         s.newID(),
		UserID:     actor.Name,
		Role:       actor.Role,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		IPAddress:  actor.IP,
		Timestamp:  s.now().UTC(),
		Status:     models.AuditSuccess,
	}
	if opErr != nil {
		entry.Status = models.AuditFailure
		entry.ErrorMessage = opErr.Error()
	} else {
		entry.Changes = changes
	}
	if err := s.repo.InsertAuditLog(context.WithoutCancel(ctx), entry); err != nil {
		s.logger.Warn("failed to store audit log",
			zap.String("action", action),
			zap.String("resource_id", resourceID),
			zap.Error(err))
	}
}

// CreateSale checks out a cart. See createSale.
func (s *Service) CreateSale(ctx context.Context, actor models.Actor, sale models.Sale) (models.Sale, error) {
	out, err := s.createSale(ctx, actor, sale)
	s.audit(ctx, actor, "CREATE_SALE", resourceSale, out.ID, map[string]any{
		"totalAmount": out.TotalAmount,
		"paymentMode": out.PaymentMode,
		"items":       len(out.Items),
	}, err)
	return out, err
}

// DeleteSale reverses a sale. See deleteSale.
func (s *Service) DeleteSale(ctx context.Context, actor models.Actor, id string) error {
	err := s.deleteSale(ctx, actor, id)
	s.audit(ctx, actor, "DELETE_SALE", resourceSale, id, nil, err)
	return err
}

// AddPurchase stores a new stock batch. See addPurchase.
func (s *Service) AddPurchase(ctx context.Context, actor models.Actor, batch models.StockBatch) (models.StockBatch, error) {
	out, err := s.addPurchase(ctx, actor, batch)
	s.audit(ctx, actor, "CREATE_STOCK", resourceStock, out.ID, map[string]any{
		"productName":   out.ProductName,
		"quantity":      out.OriginalQuantity,
		"purchasePrice": out.PurchasePrice,
	}, err)
	return out, err
}

// UpdateSellingPrice changes the price a batch sells at.
func (s *Service) UpdateSellingPrice(ctx context.Context, actor models.Actor, id string, price float64) error {
	err := s.updateSellingPrice(ctx, id, price)
	s.audit(ctx, actor, "UPDATE_STOCK", resourceStock, id, map[string]any{"sellingPrice": price}, err)
	return err
}

// AddExpense records an operating cost. See addExpense.
func (s *Service) AddExpense(ctx context.Context, actor models.Actor, expense models.Expense) (models.Expense, error) {
	out, err := s.addExpense(ctx, actor, expense)
	s.audit(ctx, actor, "CREATE_EXPENSE", resourceExpense, out.ID, map[string]any{
		"category": out.Category,
		"amount":   out.Amount,
	}, err)
	return out, err
}

// AddCustomer registers a customer with an optional opening debt.
func (s *Service) AddCustomer(ctx context.Context, actor models.Actor, customer models.Customer) (models.Customer, error) {
	out, err := s.addCustomer(ctx, customer)
	s.audit(ctx, actor, "CREATE_CUSTOMER", resourceCustomer, out.ID, map[string]any{
		"name":           out.Name,
		"openingBalance": out.OpeningBalance,
	}, err)
	return out, err
}

// AddSupplier registers a supplier with an optional opening balance owed.
func (s *Service) AddSupplier(ctx context.Context, actor models.Actor, supplier models.Supplier) (models.Supplier, error) {
	out, err := s.addSupplier(ctx, supplier)
	s.audit(ctx, actor, "CREATE_SUPPLIER", resourceSupplier, out.ID, map[string]any{
		"name":           out.Name,
		"openingBalance": out.OpeningBalance,
	}, err)
	return out, err
}

// AddCustomerPayment settles customer debt. See addCustomerPayment.
func (s *Service) AddCustomerPayment(ctx context.Context, actor models.Actor, payment models.CustomerPayment) (models.CustomerPayment, error) {
	out, err := s.addCustomerPayment(ctx, actor, payment)
	s.audit(ctx, actor, "CREATE_CUSTOMER_PAYMENT", resourcePayment, out.ID, map[string]any{
		"customerId": out.CustomerID,
		"amount":     out.Amount,
	}, err)
	return out, err
}

// AddSupplierPayment settles supplier debt. See addSupplierPayment.
func (s *Service) AddSupplierPayment(ctx context.Context, actor models.Actor, payment models.SupplierPayment) (models.SupplierPayment, error) {
	out, err := s.addSupplierPayment(ctx, actor, payment)
	s.audit(ctx, actor, "CREATE_SUPPLIER_PAYMENT", resourcePayment, out.ID, map[string]any{
		"supplierId": out.SupplierID,
		"amount":     out.Amount,
	}, err)
	return out, err
}

// AddCashAdjustment records a manual cash correction. See addCashAdjustment.
func (s *Service) AddCashAdjustment(ctx context.Context, actor models.Actor, adjustment models.CashAdjustment) (models.CashAdjustment, error) {
	out, err := s.addCashAdjustment(ctx, actor, adjustment)
	s.audit(ctx, actor, "CREATE_CASH_ADJUSTMENT", resourceAdjustment, out.ID, map[string]any{
		"type":     out.Type,
		"category": out.Category,
		"amount":   out.Amount,
	}, err)
	return out, err
}

// AddBankAccount opens an account. See addBankAccount.
func (s *Service) AddBankAccount(ctx context.Context, actor models.Actor, account models.BankAccount) (models.BankAccount, error) {
	out, err := s.addBankAccount(ctx, actor, account)
	s.audit(ctx, actor, "CREATE_BANK_ACCOUNT", resourceBankAccount, out.ID, map[string]any{
		"name":    out.Name,
		"balance": out.Balance,
	}, err)
	return out, err
}

// UpdateBankAccount edits an account's details. See updateBankAccount.
func (s *Service) UpdateBankAccount(ctx context.Context, actor models.Actor, id string, changes models.BankAccount) (models.BankAccount, error) {
	out, err := s.updateBankAccount(ctx, actor, id, changes)
	s.audit(ctx, actor, "UPDATE_BANK_ACCOUNT", resourceBankAccount, id, map[string]any{
		"name":          out.Name,
		"accountNumber": out.AccountNumber,
		"ifsc":          out.IFSC,
	}, err)
	return out, err
}

// AddBankTransaction books a manual movement. See addBankTransaction.
func (s *Service) AddBankTransaction(ctx context.Context, actor models.Actor, txn models.BankTransaction) (models.BankTransaction, error) {
	out, err := s.addBankTransaction(ctx, actor, txn)
	s.audit(ctx, actor, "CREATE_BANK_TRANSACTION", resourceTransaction, out.ID, map[string]any{
		"bankAccountId": out.BankAccountID,
		"type":          out.Type,
		"category":      out.Category,
		"amount":        out.Amount,
	}, err)
	return out, err
}
