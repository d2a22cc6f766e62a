package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/floraledger/internal/config"
	"github.com/mamadbah2/floraledger/internal/domain/models"
)

type fakeClosing struct {
	days []time.Time
	err  error
}

func (f *fakeClosing) RunDailyClosing(_ context.Context, day time.Time) (models.DailyClosing, error) {
	f.days = append(f.days, day)
	return models.DailyClosing{Date: models.FormatDay(day)}, f.err
}

type fakeReconciler struct {
	repair []bool
	report models.ReconcileReport
	err    error
}

func (f *fakeReconciler) Reconcile(_ context.Context, repair bool) (models.ReconcileReport, error) {
	f.repair = append(f.repair, repair)
	return f.report, f.err
}

func testConfig() config.Config {
	return config.Config{
		Reporting: config.ReportingConfig{CronSchedule: "0 21 * * *", Timezone: "Asia/Kolkata"},
		Reconcile: config.ReconcileConfig{CronSchedule: "30 2 * * *", Repair: true},
	}
}

func TestRunDailyClosingUsesShopTimezone(t *testing.T) {
	closing := &fakeClosing{}
	s := NewScheduler(testConfig(), closing, &fakeReconciler{}, nil)
	// 20:00 UTC is already the next day in India.
	s.now = func() time.Time { return time.Date(2024, 3, 9, 20, 0, 0, 0, time.UTC) }

	s.runDailyClosing()

	require.Len(t, closing.days, 1)
	assert.Equal(t, "2024-03-10", models.FormatDay(closing.days[0]))
}

func TestRunDailyClosingLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewScheduler(testConfig(), &fakeClosing{err: errors.New("mongo down")}, &fakeReconciler{}, zap.New(core))

	s.runDailyClosing()

	assert.Equal(t, 1, logs.FilterMessage("failed to run daily closing").Len())
}

func TestRunReconcile(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	reconciler := &fakeReconciler{report: models.ReconcileReport{
		Checked: 3,
		Drifts: []models.Drift{{
			Kind: models.PartyCustomer, ID: "c1",
			Stored: decimal.NewFromInt(10), Replayed: decimal.NewFromInt(12), Diff: decimal.NewFromInt(-2),
		}},
		Repaired: true,
	}}
	s := NewScheduler(testConfig(), &fakeClosing{}, reconciler, zap.New(core))

	s.runReconcile()

	assert.Equal(t, []bool{true}, reconciler.repair)
	assert.Equal(t, 1, logs.FilterMessage("balance drift").Len())
	assert.Equal(t, 1, logs.FilterMessage("balance drifts found").Len())
}

func TestStartRejectsBadSchedule(t *testing.T) {
	cfg := testConfig()
	cfg.Reconcile.CronSchedule = "not a schedule"
	s := NewScheduler(cfg, &fakeClosing{}, &fakeReconciler{}, nil)

	assert.Error(t, s.Start())
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(testConfig(), &fakeClosing{}, &fakeReconciler{}, nil)

	require.NoError(t, s.Start())
	assert.Len(t, s.cron.Entries(), 2)
	s.Stop()
}
