package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"shielded-stats-backend/config"
	"shielded-stats-backend/internal/logger"
	"shielded-stats-backend/internal/registry"
	"shielded-stats-backend/internal/server"
	"shielded-stats-backend/internal/stats"
	"shielded-stats-backend/internal/store"
	"shielded-stats-backend/internal/ws"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML configuration file")
	flag.Parse()

	// Missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.L().WithError(err).Fatal("failed to load configuration")
	}
	if err := logger.Configure(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		logger.L().WithError(err).Fatal("failed to configure logging")
	}
	log := logger.WithComponent("main")

	// The registry is all-or-nothing: a malformed dataset stops the
	// process here rather than surfacing per request.
	reg, err := registry.Default()
	if err != nil {
		log.WithError(err).Fatal("failed to load asset registry")
	}
	log.WithField("assets", reg.Len()).Info("asset registry loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := store.Open(ctx, store.Config{
		URL:                   cfg.Database.URL,
		ApproximateDepositors: cfg.Depositors.Approximate,
		MaxOpenConns:          cfg.Database.MaxOpenConns,
		MaxIdleConns:          cfg.Database.MaxIdleConns,
		ConnMaxLifetime:       cfg.Database.ConnMaxLifetime.Std(),
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	builder := stats.NewBuilder(db)
	hub := ws.NewHub()

	srv, err := server.New(builder, reg, hub)
	if err != nil {
		log.WithError(err).Fatal("failed to create server")
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := srv.Start(ctx, cfg.Server.Addr); err != nil {
			log.WithError(err).Error("http server failed")
			cancel()
		}
	}()

	if cfg.Broadcast.Enabled {
		broadcaster := stats.NewBroadcaster(builder, reg, hub, cfg.Broadcast.Interval.Std())
		wg.Add(1)
		go func() {
			defer wg.Done()
			broadcaster.Run(ctx)
		}()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("shutdown signal received")
	case <-ctx.Done():
	}
	cancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		log.Info("shutdown complete")
	case <-time.After(10 * time.Second):
		log.Warn("shutdown timeout reached")
	}
}
