// Package daybook computes the shop's cash book: opening balance, the
// deduplicated entries of a day range and the running balance.
package daybook

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// SnapshotLoader fetches every record the daybook reads.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) (models.Snapshot, error)
}

// Service computes daybooks on top of persisted records.
type Service struct {
	repo   SnapshotLoader
	logger *zap.Logger
}

// NewService wires a new daybook service instance.
func NewService(repo SnapshotLoader, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Daybook loads the current records and computes the daybook for [start, end].
func (s *Service) Daybook(ctx context.Context, start, end time.Time) (models.Daybook, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return models.Daybook{}, fmt.Errorf("load snapshot: %w", err)
	}

	book, err := Compute(snap, start, end)
	if err != nil {
		return models.Daybook{}, err
	}

	for _, q := range book.Quarantined {
		s.logger.Warn("record skipped, unusable date",
			zap.String("kind", q.Kind),
			zap.String("id", q.ID),
			zap.String("date", q.Date),
			zap.String("reason", q.Reason),
		)
	}

	s.logger.Debug("daybook computed",
		zap.String("start", book.Start),
		zap.String("end", book.End),
		zap.Int("entries", len(book.Entries)),
	)
	return book, nil
}
