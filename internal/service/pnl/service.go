// Package pnl computes the shop's profit and loss over a day range: revenue,
// cost of goods sold, operating expenses and the value of stock written off.
package pnl

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// SnapshotLoader fetches every record the report reads.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) (models.Snapshot, error)
}

// Service computes profit and loss reports on top of persisted records.
type Service struct {
	repo   SnapshotLoader
	logger *zap.Logger
}

// NewService wires a new profit and loss service instance.
func NewService(repo SnapshotLoader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// ProfitAndLoss loads the current records and computes the report for [start, end].
func (s *Service) ProfitAndLoss(ctx context.Context, start, end time.Time) (models.ProfitAndLoss, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return models.ProfitAndLoss{}, fmt.Errorf("load snapshot: %w", err)
	}

	report, err := Compute(snap, start, end)
	if err != nil {
		return models.ProfitAndLoss{}, err
	}

	for _, q := range report.Quarantined {
		s.logger.Warn("record skipped, unusable date",
			zap.String("kind", q.Kind),
			zap.String("id", q.ID),
			zap.String("date", q.Date))
	}
	s.logger.Debug("profit and loss computed",
		zap.String("start", report.Start),
		zap.String("end", report.End),
		zap.String("net_profit", report.NetProfit.String()))
	return report, nil
}
