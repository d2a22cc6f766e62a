// Package balances derives customer, supplier and bank balances from history
// and reconciles them with the counters stored on each record.
package balances

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/domain/apperror"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// Repository exposes what reconciliation reads and repairs.
type Repository interface {
	LoadSnapshot(ctx context.Context) (models.Snapshot, error)
	SetCustomerBalance(ctx context.Context, id string, balance float64) error
	SetSupplierBalance(ctx context.Context, id string, balance float64) error
	SetBankBalance(ctx context.Context, id string, balance float64) error
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service replays and reconciles running balances.
type Service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService wires a new balances service instance.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

type storedParty struct {
	kind   models.PartyKind
	id     string
	name   string
	stored decimal.Decimal
}

func storedParties(snap models.Snapshot) []storedParty {
	parties := make([]storedParty, 0, len(snap.Customers)+len(snap.Suppliers)+len(snap.BankAccounts))
	for _, c := range snap.Customers {
		parties = append(parties, storedParty{models.PartyCustomer, c.ID, c.Name, decimal.NewFromFloat(c.OutstandingBalance)})
	}
	for _, s := range snap.Suppliers {
		parties = append(parties, storedParty{models.PartySupplier, s.ID, s.Name, decimal.NewFromFloat(s.OutstandingBalance)})
	}
	for _, a := range snap.BankAccounts {
		parties = append(parties, storedParty{models.PartyBank, a.ID, a.Name, decimal.NewFromFloat(a.Balance)})
	}
	return parties
}

// FindDrifts compares every stored counter with the replay of its history.
// Differences below one cent are ignored.
func FindDrifts(snap models.Snapshot) (int, []models.Drift) {
	ledger := Replay(snap, time.Time{})
	parties := storedParties(snap)

	drifts := make([]models.Drift, 0)
	for _, p := range parties {
		replayed, _ := ledger.Get(p.kind, p.id)
		diff := p.stored.Sub(replayed)
		if diff.Round(2).IsZero() {
			continue
		}
		drifts = append(drifts, models.Drift{
			Kind:     p.kind,
			ID:       p.id,
			Name:     p.name,
			Stored:   p.stored,
			Replayed: replayed,
			Diff:     diff,
		})
	}
	return len(parties), drifts
}

// Reconcile reports drifting counters and, when repair is set, overwrites
// them with their replayed values in one transaction.
func (s *Service) Reconcile(ctx context.Context, repair bool) (models.ReconcileReport, error) {
	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return models.ReconcileReport{}, fmt.Errorf("load snapshot: %w", err)
	}

	checked, drifts := FindDrifts(snap)
	report := models.ReconcileReport{Checked: checked, Drifts: drifts}

	for _, d := range drifts {
		s.logger.Warn("balance drift",
			zap.String("kind", string(d.Kind)),
			zap.String("id", d.ID),
			zap.String("stored", d.Stored.StringFixed(2)),
			zap.String("replayed", d.Replayed.StringFixed(2)),
		)
	}

	if !repair || len(drifts) == 0 {
		return report, nil
	}

	err = s.repo.WithTransaction(ctx, func(ctx context.Context) error {
		for _, d := range drifts {
			value := d.Replayed.Round(2).InexactFloat64()
			var err error
			switch d.Kind {
			case models.PartyCustomer:
				err = s.repo.SetCustomerBalance(ctx, d.ID, value)
			case models.PartySupplier:
				err = s.repo.SetSupplierBalance(ctx, d.ID, value)
			case models.PartyBank:
				err = s.repo.SetBankBalance(ctx, d.ID, value)
			}
			if err != nil {
				return fmt.Errorf("repair %s %s: %w", d.Kind, d.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return report, err
	}

	report.Repaired = true
	s.logger.Info("balances repaired", zap.Int("drifts", len(drifts)))
	return report, nil
}

// Balance returns one party's balance as of the end of the given day, next
// to its stored counter. A zero asOf replays the whole history.
func (s *Service) Balance(ctx context.Context, kind models.PartyKind, id string, asOf time.Time) (models.PartyBalance, error) {
	if !kind.Valid() {
		return models.PartyBalance{}, apperror.NewValidation("kind must be customer, supplier or bank").
			WithDetail("kind", string(kind))
	}

	snap, err := s.repo.LoadSnapshot(ctx)
	if err != nil {
		return models.PartyBalance{}, fmt.Errorf("load snapshot: %w", err)
	}

	var party *storedParty
	for _, p := range storedParties(snap) {
		if p.kind == kind && p.id == id {
			party = &p
			break
		}
	}
	if party == nil {
		return models.PartyBalance{}, apperror.NewNotFound(string(kind), id)
	}

	balance, _ := Replay(snap, asOf).Get(kind, id)
	out := models.PartyBalance{
		Kind:    kind,
		ID:      id,
		Balance: balance,
		Stored:  party.stored,
	}
	if !asOf.IsZero() {
		out.AsOf = models.FormatDay(asOf)
	}
	return out, nil
}
