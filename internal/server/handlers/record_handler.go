package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// POSService records shop activity and keeps balances in step.
type POSService interface {
	CreateSale(ctx context.Context, actor models.Actor, sale models.Sale) (models.Sale, error)
	DeleteSale(ctx context.Context, actor models.Actor, id string) error
	AddPurchase(ctx context.Context, actor models.Actor, batch models.StockBatch) (models.StockBatch, error)
	UpdateSellingPrice(ctx context.Context, actor models.Actor, id string, price float64) error
	ComputedStock(ctx context.Context) (models.ComputedStock, error)
	AddExpense(ctx context.Context, actor models.Actor, expense models.Expense) (models.Expense, error)
	AddCustomer(ctx context.Context, actor models.Actor, customer models.Customer) (models.Customer, error)
	AddSupplier(ctx context.Context, actor models.Actor, supplier models.Supplier) (models.Supplier, error)
	AddCustomerPayment(ctx context.Context, actor models.Actor, payment models.CustomerPayment) (models.CustomerPayment, error)
	AddSupplierPayment(ctx context.Context, actor models.Actor, payment models.SupplierPayment) (models.SupplierPayment, error)
	AddCashAdjustment(ctx context.Context, actor models.Actor, adjustment models.CashAdjustment) (models.CashAdjustment, error)
	AddBankAccount(ctx context.Context, actor models.Actor, account models.BankAccount) (models.BankAccount, error)
	UpdateBankAccount(ctx context.Context, actor models.Actor, id string, changes models.BankAccount) (models.BankAccount, error)
	AddBankTransaction(ctx context.Context, actor models.Actor, txn models.BankTransaction) (models.BankTransaction, error)
}

// RecordLister reads persisted collections as stored.
type RecordLister interface {
	ListSales(ctx context.Context) ([]models.Sale, error)
	ListStock(ctx context.Context) ([]models.StockBatch, error)
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	ListCustomerPayments(ctx context.Context) ([]models.CustomerPayment, error)
	ListSuppliers(ctx context.Context) ([]models.Supplier, error)
	ListSupplierPayments(ctx context.Context) ([]models.SupplierPayment, error)
	ListCashAdjustments(ctx context.Context) ([]models.CashAdjustment, error)
	ListBankAccounts(ctx context.Context) ([]models.BankAccount, error)
	ListBankTransactions(ctx context.Context) ([]models.BankTransaction, error)
	ListAuditLogs(ctx context.Context) ([]models.AuditLog, error)
}

// RecordHandler serves the record collections.
type RecordHandler struct {
	pos    POSService
	lister RecordLister
	logger *zap.Logger
}

// NewRecordHandler constructs the HTTP handler adapter.
func NewRecordHandler(pos POSService, lister RecordLister, logger *zap.Logger) *RecordHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RecordHandler{pos: pos, lister: lister, logger: logger}
}

func list[T any](h *RecordHandler, fetch func(context.Context) ([]T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := fetch(c.Request.Context())
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		if items == nil {
			items = []T{}
		}
		c.JSON(http.StatusOK, items)
	}
}

func create[T any](h *RecordHandler, save func(ctx context.Context, actor models.Actor, in T) (T, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in T
		if err := c.ShouldBindJSON(&in); err != nil {
			badRequest(c, err)
			return
		}
		out, err := save(c.Request.Context(), actorFrom(c), in)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusCreated, out)
	}
}

func (h *RecordHandler) ListSales() gin.HandlerFunc { return list(h, h.lister.ListSales) }
func (h *RecordHandler) ListStock() gin.HandlerFunc { return list(h, h.lister.ListStock) }
func (h *RecordHandler) ListExpenses() gin.HandlerFunc { return list(h, h.lister.ListExpenses) }
func (h *RecordHandler) ListCustomers() gin.HandlerFunc { return list(h, h.lister.ListCustomers) }
func (h *RecordHandler) ListSuppliers() gin.HandlerFunc { return list(h, h.lister.ListSuppliers) }
func (h *RecordHandler) ListBankAccounts() gin.HandlerFunc { return list(h, h.lister.ListBankAccounts) }
func (h *RecordHandler) ListCustomerPayments() gin.HandlerFunc {
	return list(h, h.lister.ListCustomerPayments)
}
func (h *RecordHandler) ListSupplierPayments() gin.HandlerFunc {
	return list(h, h.lister.ListSupplierPayments)
}
func (h *RecordHandler) ListCashAdjustments() gin.HandlerFunc {
	return list(h, h.lister.ListCashAdjustments)
}
func (h *RecordHandler) ListBankTransactions() gin.HandlerFunc {
	return list(h, h.lister.ListBankTransactions)
}
func (h *RecordHandler) ListAuditLogs() gin.HandlerFunc { return list(h, h.lister.ListAuditLogs) }

func (h *RecordHandler) CreateSale() gin.HandlerFunc { return create(h, h.pos.CreateSale) }
func (h *RecordHandler) AddPurchase() gin.HandlerFunc { return create(h, h.pos.AddPurchase) }
func (h *RecordHandler) AddExpense() gin.HandlerFunc { return create(h, h.pos.AddExpense) }
func (h *RecordHandler) AddCustomerPayment() gin.HandlerFunc {
	return create(h, h.pos.AddCustomerPayment)
}
func (h *RecordHandler) AddSupplierPayment() gin.HandlerFunc {
	return create(h, h.pos.AddSupplierPayment)
}
func (h *RecordHandler) AddCashAdjustment() gin.HandlerFunc {
	return create(h, h.pos.AddCashAdjustment)
}
func (h *RecordHandler) AddBankAccount() gin.HandlerFunc { return create(h, h.pos.AddBankAccount) }
func (h *RecordHandler) AddBankTransaction() gin.HandlerFunc {
	return create(h, h.pos.AddBankTransaction)
}
func (h *RecordHandler) AddCustomer() gin.HandlerFunc { return create(h, h.pos.AddCustomer) }
func (h *RecordHandler) AddSupplier() gin.HandlerFunc { return create(h, h.pos.AddSupplier) }

// DeleteSale answers DELETE /api/sales/:id.
func (h *RecordHandler) DeleteSale(c *gin.Context) {
	if err := h.pos.DeleteSale(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSellingPrice answers PUT /api/stock/:id with {"sellingPrice": n}.
func (h *RecordHandler) UpdateSellingPrice(c *gin.Context) {
	var req struct {
		SellingPrice *float64 `json:"sellingPrice"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.SellingPrice == nil {
		badRequest(c, errors.New("sellingPrice is required"))
		return
	}
	if err := h.pos.UpdateSellingPrice(c.Request.Context(), actorFrom(c), c.Param("id"), *req.SellingPrice); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "sellingPrice": *req.SellingPrice})
}

// ComputedStock answers GET /api/stock/computed.
func (h *RecordHandler) ComputedStock(c *gin.Context) {
	stock, err := h.pos.ComputedStock(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, stock)
}

// UpdateBankAccount answers PUT /api/bank-accounts/:id.
func (h *RecordHandler) UpdateBankAccount(c *gin.Context) {
	var changes models.BankAccount
	if err := c.ShouldBindJSON(&changes); err != nil {
		badRequest(c, err)
		return
	}
	account, err := h.pos.UpdateBankAccount(c.Request.Context(), actorFrom(c), c.Param("id"), changes)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, account)
}
