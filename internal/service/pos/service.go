// Package pos records the shop's transactions: checkouts, purchases,
// expenses, payments, cash adjustments and bank movements. Every record is
// written in the same transaction as the balance counters it moves.
package pos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
	"github.com/mamadbah2/floraledger/internal/service/balances"
)

// Repository is the storage the point of sale writes to.
type Repository interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	GetSale(ctx context.Context, id string) (models.Sale, error)
	InsertSale(ctx context.Context, sale models.Sale) error
	DeleteSale(ctx context.Context, id string) error

	ListStock(ctx context.Context) ([]models.StockBatch, error)
	GetStockBatch(ctx context.Context, id string) (models.StockBatch, error)
	InsertStockBatch(ctx context.Context, batch models.StockBatch) error
	AdjustStockQuantity(ctx context.Context, batchID string, delta int) error
	SetStockSellingPrice(ctx context.Context, id string, price float64) error

	InsertExpense(ctx context.Context, expense models.Expense) error

	GetCustomer(ctx context.Context, id string) (models.Customer, error)
	InsertCustomer(ctx context.Context, customer models.Customer) error
	IncCustomerBalance(ctx context.Context, id string, delta float64) error
	InsertCustomerPayment(ctx context.Context, payment models.CustomerPayment) error

	GetSupplier(ctx context.Context, id string) (models.Supplier, error)
	InsertSupplier(ctx context.Context, supplier models.Supplier) error
	IncSupplierBalance(ctx context.Context, id string, delta float64) error
	InsertSupplierPayment(ctx context.Context, payment models.SupplierPayment) error

	InsertCashAdjustment(ctx context.Context, adjustment models.CashAdjustment) error

	GetBankAccount(ctx context.Context, id string) (models.BankAccount, error)
	FirstBankAccount(ctx context.Context) (models.BankAccount, error)
	InsertBankAccount(ctx context.Context, account models.BankAccount) error
	UpdateBankAccountDetails(ctx context.Context, account models.BankAccount) error
	IncBankBalance(ctx context.Context, id string, delta float64) error
	InsertBankTransaction(ctx context.Context, txn models.BankTransaction) error
	ListBankTransactionsBySource(ctx context.Context, sourceID string) ([]models.BankTransaction, error)
	DeleteBankTransaction(ctx context.Context, id string) error

	InsertAuditLog(ctx context.Context, entry models.AuditLog) error
}

// Service implements the write side of the ledger.
type Service struct {
	repo   Repository
	loc    *time.Location
	logger *zap.Logger

	now   func() time.Time
	newID func() string
}

// NewService wires a new point of sale service. Record dates default to the
// current time in loc.
func NewService(repo Repository, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:   repo,
		loc:    loc,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *Service) localNow() time.Time {
	return s.now().In(s.loc)
}

// stamp returns value when it is a usable date, the current local time when
// it is empty, and a validation error otherwise.
func (s *Service) stamp(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.localNow().Format(time.RFC3339), nil
	}
	if _, err := models.ParseTimestamp(value); err != nil {
		return "", apperror.NewValidation("date must be YYYY-MM-DD or an ISO-8601 timestamp").WithDetail("date", value)
	}
	return value, nil
}

func requireAdmin(actor models.Actor, action string) error {
	if !actor.IsAdmin() {
		return apperror.NewForbidden(fmt.Sprintf("only admins can %s", action))
	}
	return nil
}

func positive(value float64, field string) error {
	if value <= 0 {
		return apperror.NewValidation(fmt.Sprintf("%s must be greater than 0", field)).WithDetail(field, value)
	}
	return nil
}

func nonNegative(value float64, field string) error {
	if value < 0 {
		return apperror.NewValidation(fmt.Sprintf("%s must not be negative", field)).WithDetail(field, value)
	}
	return nil
}

func toFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// resolveAccount picks the named account, else the first one. When none
// exists it creates one if autoCreate is set and reports ok=false otherwise.
func (s *Service) resolveAccount(ctx context.Context, preferred string, autoCreate bool) (models.BankAccount, bool, error) {
	if preferred != "" {
		account, err := s.repo.GetBankAccount(ctx, preferred)
		if err != nil {
			return models.BankAccount{}, false, err
		}
		return account, true, nil
	}

	account, err := s.repo.FirstBankAccount(ctx)
	if err == nil {
		return account, true, nil
	}
	if !apperror.IsNotFound(err) {
		return models.BankAccount{}, false, err
	}
	if !autoCreate {
		return models.BankAccount{}, false, nil
	}

	account = models.BankAccount{
		ID:            s.newID(),
		Name:          "Auto UPI Account",
		AccountNumber: "AUTO",
		IFSC:          "AUTO",
	}
	if err := s.repo.InsertBankAccount(ctx, account); err != nil {
		return models.BankAccount{}, false, fmt.Errorf("auto-create bank account: %w", err)
	}
	s.logger.Info("auto-created bank account for UPI receipts", zap.String("bank_account_id", account.ID))
	return account, true, nil
}

// postBankTransaction stores txn and applies it to its account balance.
func (s *Service) postBankTransaction(ctx context.Context, txn models.BankTransaction) (models.BankTransaction, error) {
	if txn.ID == "" {
		txn.ID = s.newID()
	}
	if err := s.repo.InsertBankTransaction(ctx, txn); err != nil {
		return txn, err
	}
	if err := s.repo.IncBankBalance(ctx, txn.BankAccountID, toFloat(balances.BankDelta(txn))); err != nil {
		return txn, fmt.Errorf("apply bank transaction %s: %w", txn.ID, err)
	}
	return txn, nil
}

// unpostBankTransaction deletes txn and takes its effect off the account.
func (s *Service) unpostBankTransaction(ctx context.Context, txn models.BankTransaction) error {
	if err := s.repo.DeleteBankTransaction(ctx, txn.ID); err != nil {
		return err
	}
	err := s.repo.IncBankBalance(ctx, txn.BankAccountID, toFloat(balances.BankDelta(txn).Neg()))
	if apperror.IsNotFound(err) {
		s.logger.Warn("bank account of reversed transaction is gone",
			zap.String("bank_transaction_id", txn.ID),
			zap.String("bank_account_id", txn.BankAccountID),
		)
		return nil
	}
	return err
}
