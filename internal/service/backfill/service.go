// Package backfill assigns categories to legacy bank transactions and cash
// adjustments stored before categories were recorded explicitly.
package backfill

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// Repository exposes the records the backfill reads and rewrites.
type Repository interface {
	ListBankTransactions(ctx context.Context) ([]models.BankTransaction, error)
	SetBankTransactionCategory(ctx context.Context, id string, category models.BankCategory) error
	ListCashAdjustments(ctx context.Context) ([]models.CashAdjustment, error)
	SetCashAdjustmentCategory(ctx context.Context, id string, category models.AdjustmentCategory) error
}

// Result counts what a run changed, or would change on a dry run.
type Result struct {
	BankTransactions int
	CashAdjustments  int
}

// Service runs the category backfill.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new backfill service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Run infers categories for transactions whose category is missing, unknown
// or OTHER, and for adjustments without a category. Dry runs only log.
func (s *Service) Run(ctx context.Context, dryRun bool) (Result, error) {
	var res Result

	txns, err := s.repo.ListBankTransactions(ctx)
	if err != nil {
		return res, fmt.Errorf("list bank transactions: %w", err)
	}
	for _, t := range txns {
		if t.Category.Valid() && t.Category != models.BankOther {
			continue
		}
		inferred := models.InferBankCategory(t)
		if inferred == t.Category {
			continue
		}
		s.logger.Info("bank transaction category",
			zap.String("id", t.ID),
			zap.String("from", string(t.Category)),
			zap.String("to", string(inferred)),
			zap.Bool("dry_run", dryRun))
		if !dryRun {
			if err := s.repo.SetBankTransactionCategory(ctx, t.ID, inferred); err != nil {
				return res, fmt.Errorf("update bank transaction %s: %w", t.ID, err)
			}
		}
		res.BankTransactions++
	}

	adjustments, err := s.repo.ListCashAdjustments(ctx)
	if err != nil {
		return res, fmt.Errorf("list cash adjustments: %w", err)
	}
	for _, a := range adjustments {
		if a.Category == models.AdjustmentOpening || a.Category == models.AdjustmentOther {
			continue
		}
		inferred := models.InferAdjustmentCategory(a)
		s.logger.Info("cash adjustment category",
			zap.String("id", a.ID),
			zap.String("from", string(a.Category)),
			zap.String("to", string(inferred)),
			zap.Bool("dry_run", dryRun))
		if !dryRun {
			if err := s.repo.SetCashAdjustmentCategory(ctx, a.ID, inferred); err != nil {
				return res, fmt.Errorf("update cash adjustment %s: %w", a.ID, err)
			}
		}
		res.CashAdjustments++
	}

	return res, nil
}
