package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/config"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

// ClosingRunner produces the end-of-day closing.
type ClosingRunner interface {
	RunDailyClosing(ctx context.Context, day time.Time) (models.DailyClosing, error)
}

// Reconciler compares stored balances with their replayed history.
type Reconciler interface {
	Reconcile(ctx context.Context, repair bool) (models.ReconcileReport, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	closing    ClosingRunner
	reconciler Reconciler
	cfg        config.Config
	loc        *time.Location
	now        func() time.Time
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler instance. Jobs fire in the shop's
// timezone.
func NewScheduler(cfg config.Config, closing ClosingRunner, reconciler Reconciler, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc := cfg.Location()

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		closing:    closing,
		reconciler: reconciler,
		cfg:        cfg,
		loc:        loc,
		now:        time.Now,
		logger:     logger,
	}
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler",
		zap.String("closing_schedule", s.cfg.Reporting.CronSchedule),
		zap.String("reconcile_schedule", s.cfg.Reconcile.CronSchedule),
	)

	if _, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.runDailyClosing); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(s.cfg.Reconcile.CronSchedule, s.runReconcile); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runDailyClosing() {
	s.logger.Info("running daily closing")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	closing, err := s.closing.RunDailyClosing(ctx, s.now().In(s.loc))
	if err != nil {
		s.logger.Error("failed to run daily closing", zap.Error(err))
		return
	}
	s.logger.Info("daily closing completed", zap.String("date", closing.Date))
}

func (s *Scheduler) runReconcile() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	report, err := s.reconciler.Reconcile(ctx, s.cfg.Reconcile.Repair)
	if err != nil {
		s.logger.Error("failed to reconcile balances", zap.Error(err))
		return
	}

	if len(report.Drifts) == 0 {
		s.logger.Info("balances reconciled", zap.Int("checked", report.Checked))
		return
	}
	for _, d := range report.Drifts {
		s.logger.Warn("balance drift",
			zap.String("kind", string(d.Kind)),
			zap.String("id", d.ID),
			zap.String("stored", d.Stored.StringFixed(2)),
			zap.String("replayed", d.Replayed.StringFixed(2)),
		)
	}
	s.logger.Warn("balance drifts found",
		zap.Int("checked", report.Checked),
		zap.Int("drifts", len(report.Drifts)),
		zap.Bool("repaired", report.Repaired),
	)
}
