package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/cqrs/handlers"
	"github.com/danghamo/zoo/internal/eventbus"
	"github.com/danghamo/zoo/internal/simulation"
	"github.com/danghamo/zoo/pkg/config"
	"github.com/danghamo/zoo/pkg/logger"
	"github.com/danghamo/zoo/pkg/redisx"
)

const drainTimeout = 5 * time.Second

func main() {
	// Initialize configuration and logger
	cfg, log, err := config.Initialize()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	// Ensure logger is flushed on exit
	defer func() {
		_ = log.Sync()
	}()

	if err := run(cfg, log); err != nil {
		log.Error("Simulation failed", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	log.Info("Starting zoo simulation",
		zap.String("zoo", cfg.Zoo.Name),
		zap.String("events_backend", cfg.Events.Backend),
	)

	scenario, err := simulation.ConfigFrom(cfg)
	if err != nil {
		return err
	}

	var redisClient *redisx.Client
	if cfg.Events.UsesRedis() {
		redisClient, err = redisx.NewClient(cfg.Redis.URL, log)
		if err != nil {
			return fmt.Errorf("failed to initialize Redis client: %w", err)
		}
		defer redisClient.Close()
	}

	bus, err := eventbus.New(cfg.Events, redisClient, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := bus.Close(); err != nil {
			log.Warn("Event bus closed with errors", zap.Error(err))
		}
	}()

	audit := handlers.NewAuditEventHandler(log)
	if err := bus.AddHandlers(audit.EventHandlers()...); err != nil {
		return err
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-quit:
			log.Info("Shutting down simulation...")
			cancel()
		case <-ctx.Done():
		}
	}()

	routerDone := make(chan error, 1)
	go func() {
		routerDone <- bus.Run(ctx)
	}()

	readyCtx, readyCancel := context.WithTimeout(ctx, 10*time.Second)
	defer readyCancel()
	if err := bus.WaitReady(readyCtx); err != nil {
		return fmt.Errorf("event router did not start: %w", err)
	}

	if _, err := simulation.Run(ctx, scenario, bus, log, os.Stdout); err != nil {
		return err
	}

	drain(ctx, log, bus, audit)

	cancel()
	if err := <-routerDone; err != nil {
		log.Warn("Event router stopped with error", zap.Error(err))
	}

	log.Info("Simulation gracefully stopped", zap.Int("audited_events", audit.Len()))
	return nil
}

// drain waits for the audit journal to catch up with what was published
func drain(ctx context.Context, log *logger.Logger, bus *eventbus.Bus, audit *handlers.AuditEventHandler) {
	deadline := time.NewTimer(drainTimeout)
	defer deadline.Stop()
	tick := time.NewTicker(20 * time.Millisecond)
	defer tick.Stop()

	for int64(audit.Len()) < bus.Published() {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			log.Warn("Audit journal incomplete",
				zap.Int64("published", bus.Published()),
				zap.Int("audited", audit.Len()))
			return
		case <-tick.C:
		}
	}
}
