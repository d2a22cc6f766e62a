package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/floraledger/internal/config"
	"github.com/mamadbah2/floraledger/internal/repository/mongodb"
	"github.com/mamadbah2/floraledger/internal/repository/sheets"
	"github.com/mamadbah2/floraledger/internal/scheduler"
	"github.com/mamadbah2/floraledger/internal/server/handlers"
	"github.com/mamadbah2/floraledger/internal/server/router"
	balancesvc "github.com/mamadbah2/floraledger/internal/service/balances"
	bankingsvc "github.com/mamadbah2/floraledger/internal/service/banking"
	daybooksvc "github.com/mamadbah2/floraledger/internal/service/daybook"
	pnlsvc "github.com/mamadbah2/floraledger/internal/service/pnl"
	possvc "github.com/mamadbah2/floraledger/internal/service/pos"
	reportingsvc "github.com/mamadbah2/floraledger/internal/service/reporting"
	whatsappsvc "github.com/mamadbah2/floraledger/internal/service/whatsapp"
	whatsappclient "github.com/mamadbah2/floraledger/pkg/clients/whatsapp"
	"github.com/mamadbah2/floraledger/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(logger.Options{Level: cfg.Log.Level, Development: cfg.Log.Development}))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	// Amounts go out as JSON numbers, as the dashboard expects.
	decimal.MarshalJSONWithoutQuotes = true

	loc := cfg.Location()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	mongoRepo, err := mongodb.NewMongoDBRepository(startupCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName, cfg.MongoDB.Transactions, baseLogger.Named("repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := mongoRepo.EnsureIndexes(startupCtx); err != nil {
		baseLogger.Fatal("failed to ensure mongodb indexes", zap.Error(err))
	}

	var sheetsRepo sheets.Repository
	if cfg.Sheets.Enabled() {
		repo, err := sheets.NewGoogleSheetRepository(startupCtx, cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}
		sheetsRepo = repo
		baseLogger.Info("google sheets export enabled")
	} else {
		baseLogger.Warn("google sheets not configured, daybook export disabled")
	}

	var whatsClient whatsappclient.Client
	if cfg.WhatsApp.Enabled() {
		whatsClient = whatsappclient.NewClient(whatsappclient.Options{
			BaseURL:       cfg.WhatsApp.BaseURL,
			APIVersion:    cfg.WhatsApp.APIVersion,
			AccessToken:   cfg.WhatsApp.AccessToken,
			PhoneNumberID: cfg.WhatsApp.PhoneNumberID,
			RetryCount:    2,
		})
		baseLogger.Info("whatsapp closing summaries enabled")
	} else {
		baseLogger.Warn("whatsapp token missing, closing summaries disabled")
	}
	notifier := whatsappsvc.NewOwnerNotifier(whatsClient, cfg.WhatsApp.OwnerNumber, baseLogger.Named("svc.whatsapp"))

	daybookSvc := daybooksvc.NewService(mongoRepo, baseLogger.Named("svc.daybook"))
	bankingSvc := bankingsvc.NewService(mongoRepo, baseLogger.Named("svc.banking"))
	balanceSvc := balancesvc.NewService(mongoRepo, baseLogger.Named("svc.balances"))
	pnlSvc := pnlsvc.NewService(mongoRepo, baseLogger.Named("svc.pnl"))
	posSvc := possvc.NewService(mongoRepo, loc, baseLogger.Named("svc.pos"))
	reportingSvc := reportingsvc.NewService(daybookSvc, mongoRepo, sheetsRepo, notifier, baseLogger.Named("svc.reporting"))

	ledgerHandler := handlers.NewLedgerHandler(daybookSvc, bankingSvc, balanceSvc, pnlSvc, loc, baseLogger.Named("handlers.ledger"))
	recordHandler := handlers.NewRecordHandler(posSvc, mongoRepo, baseLogger.Named("handlers.records"))
	engine := router.New(ledgerHandler, recordHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, reportingSvc, balanceSvc, baseLogger.Named("scheduler"))
	if err := sched.Start(); err != nil {
		baseLogger.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
