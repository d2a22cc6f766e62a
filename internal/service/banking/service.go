// Package banking aggregates bank transactions into the dashboard summary.
package banking

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// Repository exposes the records the bank summary reads.
type Repository interface {
	ListBankAccounts(ctx context.Context) ([]models.BankAccount, error)
	ListBankTransactions(ctx context.Context) ([]models.BankTransaction, error)
	ListCashAdjustments(ctx context.Context) ([]models.CashAdjustment, error)
}

// Service serves bank summaries.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new banking service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Summary loads accounts, transactions and cash adjustments and summarizes them.
func (s *Service) Summary(ctx context.Context) (models.BankSummary, error) {
	accounts, err := s.repo.ListBankAccounts(ctx)
	if err != nil {
		return models.BankSummary{}, fmt.Errorf("load bank accounts: %w", err)
	}
	txns, err := s.repo.ListBankTransactions(ctx)
	if err != nil {
		return models.BankSummary{}, fmt.Errorf("load bank transactions: %w", err)
	}
	adjustments, err := s.repo.ListCashAdjustments(ctx)
	if err != nil {
		return models.BankSummary{}, fmt.Errorf("load cash adjustments: %w", err)
	}

	summary := Summarize(accounts, txns, adjustments)
	s.logger.Debug("bank summary computed",
		zap.Int("accounts", len(accounts)),
		zap.Int("transactions", len(txns)),
	)
	return summary, nil
}
