package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/models"
	"github.com/mamadbah2/floraledger/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(ledger *handlers.LedgerHandler, records *handlers.RecordHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api", handlers.Identify())
	admin := handlers.RequireRole(models.RoleAdmin)

	api.GET("/daybook", ledger.Daybook)
	api.GET("/bank-summary", ledger.BankSummary)
	api.GET("/reports/pnl", ledger.ProfitAndLoss)
	api.GET("/reconcile", admin, ledger.Reconcile)
	api.POST("/reconcile", admin, ledger.Reconcile)
	api.GET("/balances/:kind/:id", ledger.Balance)

	api.GET("/sales", records.ListSales())
	api.POST("/sales", records.CreateSale())
	api.DELETE("/sales/:id", admin, records.DeleteSale)

	api.GET("/stock", records.ListStock())
	api.GET("/stock/computed", records.ComputedStock)
	api.POST("/stock", records.AddPurchase())
	api.PUT("/stock/:id", records.UpdateSellingPrice)

	api.GET("/expenses", records.ListExpenses())
	api.POST("/expenses", records.AddExpense())

	api.GET("/customers", records.ListCustomers())
	api.POST("/customers", records.AddCustomer())
	api.GET("/customer-payments", records.ListCustomerPayments())
	api.POST("/customer-payments", records.AddCustomerPayment())

	api.GET("/suppliers", records.ListSuppliers())
	api.POST("/suppliers", records.AddSupplier())
	api.GET("/supplier-payments", records.ListSupplierPayments())
	api.POST("/supplier-payments", records.AddSupplierPayment())

	api.GET("/cash-adjustments", records.ListCashAdjustments())
	api.POST("/cash-adjustments", records.AddCashAdjustment())

	api.GET("/bank-accounts", records.ListBankAccounts())
	api.POST("/bank-accounts", admin, records.AddBankAccount())
	api.PUT("/bank-accounts/:id", admin, records.UpdateBankAccount)
	api.GET("/bank-transactions", records.ListBankTransactions())
	api.POST("/bank-transactions", admin, records.AddBankTransaction())

	api.GET("/audit-logs", admin, records.ListAuditLogs())

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("user", c.GetHeader("X-User-Name")),
			zap.String("client_ip", c.ClientIP()))
	}
}
