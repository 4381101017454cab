package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"fueleu/internal/banking"
	bankinghandler "fueleu/internal/banking/handler"
	"fueleu/internal/compliance"
	compliancehandler "fueleu/internal/compliance/handler"
	"fueleu/internal/platform/config"
	"fueleu/internal/platform/httpserver"
	"fueleu/internal/platform/logger"
	"fueleu/internal/platform/metrics"
	"fueleu/internal/platform/postgres"
	platformredis "fueleu/internal/platform/redis"
	"fueleu/internal/pooling"
	poolinghandler "fueleu/internal/pooling/handler"
	httptransport "fueleu/internal/transport/http"
	"fueleu/internal/voyage"
	voyagehandler "fueleu/internal/voyage/handler"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in the internal
// vertical packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	var (
		voyageStore   voyage.Store
		ledgerStore   banking.Store
		poolStore     pooling.Store
		snapshotStore compliance.SnapshotStore
	)

	if cfg.PostgresURL != "" {
		db, err := postgres.Open(cfg.PostgresURL)
		if err != nil {
			log.Error("postgres unavailable", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		voyageStore = voyage.NewPostgres(db)
		ledgerStore = banking.NewPostgres(db)
		poolStore = pooling.NewPostgres(db)
		snapshotStore = compliance.NewPostgresSnapshotStore(db)
	} else {
		voyageStore = voyage.NewInMemoryStore()
		ledgerStore = banking.NewInMemoryStore()
		poolStore = pooling.NewInMemoryStore()
		snapshotStore = compliance.NewInMemorySnapshotStore()

		if err := voyage.Seed(context.Background(), voyageStore); err != nil {
			log.Error("seed failed", "error", err.Error())
			os.Exit(1)
		}
		log.Info("running with in-memory stores and seed fleet")
	}

	if cfg.RedisURL != "" {
		redisClient, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			log.Error("redis unavailable", "error", err.Error())
			os.Exit(1)
		}
		if redisClient != nil {
			defer redisClient.Close()
			// Redis replaces the primary snapshot store as the shared
			// latest-balance cache across instances.
			snapshotStore = compliance.NewRedisSnapshotStore(redisClient.Client)
		}
	}

	voyageSvc, err := voyage.New(voyageStore, voyage.WithLogger(log))
	if err != nil {
		fatal(log, "voyage service", err)
	}

	complianceSvc, err := compliance.New(voyageStore, cfg.TargetIntensity,
		compliance.WithLogger(log),
		compliance.WithMetrics(m),
		compliance.WithSnapshots(snapshotStore, cfg.SnapshotPolicy),
	)
	if err != nil {
		fatal(log, "compliance service", err)
	}

	bankingSvc, err := banking.New(ledgerStore, complianceSvc,
		banking.WithLogger(log),
		banking.WithMetrics(m),
	)
	if err != nil {
		fatal(log, "banking service", err)
	}

	complianceSvc.AttachLedger(bankingSvc)

	poolingSvc, err := pooling.New(poolStore,
		pooling.WithLogger(log),
		pooling.WithMetrics(m),
	)
	if err != nil {
		fatal(log, "pooling service", err)
	}

	router := httptransport.NewRouter(httptransport.Handlers{
		Voyage:     voyagehandler.New(voyageSvc, log),
		Compliance: compliancehandler.New(complianceSvc, log),
		Banking:    bankinghandler.New(bankingSvc, complianceSvc, log),
		Pooling:    poolinghandler.New(poolingSvc, log),
	}, log, m)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting fueleu compliance service", "addr", cfg.Addr,
		"target_intensity", cfg.TargetIntensity, "snapshot_policy", string(cfg.SnapshotPolicy))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fatal(log, "server error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		fatal(log, "graceful shutdown failed", err)
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err.Error())
	os.Exit(1)
}
