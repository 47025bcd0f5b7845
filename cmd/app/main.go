package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/farmvale/cryptofarm/internal/config"
	"github.com/farmvale/cryptofarm/internal/database"
	"github.com/farmvale/cryptofarm/internal/database/postgres"
	"github.com/farmvale/cryptofarm/internal/farm"
	"github.com/farmvale/cryptofarm/internal/inventory"
	"github.com/farmvale/cryptofarm/internal/ledger"
	"github.com/farmvale/cryptofarm/internal/logger"
	"github.com/farmvale/cryptofarm/internal/market"
	"github.com/farmvale/cryptofarm/internal/pricing"
	"github.com/farmvale/cryptofarm/internal/scheduler"
	"github.com/farmvale/cryptofarm/internal/server"
	"github.com/farmvale/cryptofarm/internal/shop"
	"github.com/farmvale/cryptofarm/internal/worker"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)

	pool, err := database.NewPool(cfg.GetDBConnString(), 10, 5*time.Minute, 30*time.Minute)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(pool); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store := postgres.NewStore(pool)

	oracle := pricing.NewHTTPOracle(cfg.OracleBaseURL, cfg.ReferenceFiat, cfg.OracleTimeout)
	pricingSvc := pricing.NewService(oracle, cfg.QuoteTTL, cfg.QuoteStaleMax)

	ledgerSvc := ledger.NewService(store)
	inventorySvc := inventory.NewService(store, store)
	farmSvc := farm.NewService(store, store, pricingSvc)
	marketSvc := market.NewService(store, store, pricingSvc)
	shopSvc := shop.NewService(store, store, pricingSvc)

	// Background quote refresh keeps conversions off the oracle's latency
	workerPool := worker.NewPool(1, 4)
	workerPool.Start()
	sched := scheduler.New(workerPool)
	sched.Schedule(cfg.QuoteRefresh, worker.NewQuoteRefreshJob(pricingSvc, store))

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool,
		store, ledgerSvc, inventorySvc, farmSvc, marketSvc, shopSvc)

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		slog.Error("Server failed", "error", err)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}
	sched.Stop()
	workerPool.Stop()

	slog.Info("Shutdown complete")
}
