// Command migrate backfills categories on legacy bank transactions and cash
// adjustments. Run it once with -dry-run to review the changes.
package main

import (
	"context"
	"flag"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/config"
	"github.com/mamadbah2/floraledger/internal/repository/mongodb"
	"github.com/mamadbah2/floraledger/internal/service/backfill"
	"github.com/mamadbah2/floraledger/pkg/logger"
)

func main() {
	envFile := flag.String("env", "", "optional .env file")
	dryRun := flag.Bool("dry-run", false, "log the changes without writing them")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(logger.Options{Level: cfg.Log.Level, Development: cfg.Log.Development}))
	defer func() { _ = baseLogger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	repo, err := mongodb.NewMongoDBRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.MongoDB.Transactions, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := repo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	res, err := backfill.NewService(repo, baseLogger.Named("svc.backfill")).Run(ctx, *dryRun)
	if err != nil {
		baseLogger.Error("backfill failed", zap.Error(err))
		return
	}

	baseLogger.Info("backfill finished",
		zap.Int("bank_transactions", res.BankTransactions),
		zap.Int("cash_adjustments", res.CashAdjustments),
		zap.Bool("dry_run", *dryRun))
}
