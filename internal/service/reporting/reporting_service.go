package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/models"
	repo "github.com/mamadbah2/floraledger/internal/repository/sheets"
	"github.com/mamadbah2/floraledger/internal/service/whatsapp"
)

// DaybookSource computes the daybook of a day range.
type DaybookSource interface {
	Daybook(ctx context.Context, start, end time.Time) (models.Daybook, error)
}

// ClosingStore persists daily closings.
type ClosingStore interface {
	SaveDailyClosing(ctx context.Context, closing models.DailyClosing) error
}

// Service produces the end-of-day closing: it stores a snapshot of the
// day's daybook, exports it to Google Sheets and sends the owner a summary.
// Sheets and notifier are optional.
type Service struct {
	daybook  DaybookSource
	store    ClosingStore
	sheets   repo.Repository
	notifier whatsapp.Notifier
	now      func() time.Time
	logger   *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(daybook DaybookSource, store ClosingStore, sheets repo.Repository, notifier whatsapp.Notifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		daybook:  daybook,
		store:    store,
		sheets:   sheets,
		notifier: notifier,
		now:      time.Now,
		logger:   logger,
	}
}

// BuildClosing condenses a one-day daybook.
func BuildClosing(book models.Daybook, createdAt time.Time) models.DailyClosing {
	sales := 0
	for _, e := range book.Entries {
		if e.Category == models.EntrySale {
			sales++
		}
	}
	return models.DailyClosing{
		Date:           book.Start,
		OpeningBalance: book.OpeningBalance.Round(2).InexactFloat64(),
		ClosingBalance: book.ClosingBalance.Round(2).InexactFloat64(),
		TotalCredit:    book.TotalCredit.Round(2).InexactFloat64(),
		TotalDebit:     book.TotalDebit.Round(2).InexactFloat64(),
		SalesCount:     sales,
		EntryCount:     len(book.Entries),
		CreatedAt:      createdAt.UTC(),
	}
}

// FormatClosing renders the WhatsApp summary of a closing.
func FormatClosing(closing models.DailyClosing, book models.Daybook) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Daily closing %s\n", closing.Date)
	fmt.Fprintf(&b, "Opening: %.2f\n", closing.OpeningBalance)
	fmt.Fprintf(&b, "In: %.2f (%d sales)\n", closing.TotalCredit, closing.SalesCount)
	fmt.Fprintf(&b, "Out: %.2f\n", closing.TotalDebit)
	fmt.Fprintf(&b, "Closing: %.2f", closing.ClosingBalance)

	purchases := 0
	for _, e := range book.Entries {
		if e.Category == models.EntryPurchase {
			purchases++
		}
	}
	if purchases > 0 {
		fmt.Fprintf(&b, "\nPurchases recorded: %d", purchases)
	}
	if n := len(book.Quarantined); n > 0 {
		fmt.Fprintf(&b, "\nWarning: %d record(s) skipped for unreadable dates", n)
	}
	return b.String()
}

// RunDailyClosing closes the given day. Export and notification failures are
// logged and do not undo the stored closing.
func (s *Service) RunDailyClosing(ctx context.Context, day time.Time) (models.DailyClosing, error) {
	book, err := s.daybook.Daybook(ctx, day, day)
	if err != nil {
		return models.DailyClosing{}, fmt.Errorf("compute daybook: %w", err)
	}

	closing := BuildClosing(book, s.now())
	if err := s.store.SaveDailyClosing(ctx, closing); err != nil {
		return models.DailyClosing{}, fmt.Errorf("save closing: %w", err)
	}
	s.logger.Info("daily closing saved",
		zap.String("date", closing.Date),
		zap.Float64("closing_balance", closing.ClosingBalance),
		zap.Int("entries", closing.EntryCount),
	)

	if s.sheets != nil {
		if err := s.export(ctx, closing, book); err != nil {
			s.logger.Error("failed to export closing to sheets", zap.String("date", closing.Date), zap.Error(err))
		}
	}

	if s.notifier != nil {
		err := s.notifier.NotifyOwner(ctx, FormatClosing(closing, book))
		switch {
		case errors.Is(err, whatsapp.ErrDisabled):
			s.logger.Debug("closing summary not sent", zap.Error(err))
		case err != nil:
			s.logger.Error("failed to send closing summary", zap.String("date", closing.Date), zap.Error(err))
		}
	}

	return closing, nil
}

// export appends the day's entries and closing row unless the day was
// already exported by an earlier run.
func (s *Service) export(ctx context.Context, closing models.DailyClosing, book models.Daybook) error {
	done, err := repo.ClosingExported(ctx, s.sheets, closing.Date)
	if err != nil {
		return err
	}
	if done {
		s.logger.Debug("closing already exported", zap.String("date", closing.Date))
		return nil
	}
	if err := s.sheets.AppendRows(ctx, repo.DaybookRange, repo.DaybookRows(book)); err != nil {
		return err
	}
	return s.sheets.AppendRows(ctx, repo.ClosingsRange, [][]interface{}{repo.ClosingRow(closing)})
}
