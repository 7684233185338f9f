package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/danghamo/zoo/internal/api"
	"github.com/danghamo/zoo/internal/api/middleware"
	"github.com/danghamo/zoo/internal/app/handler"
	"github.com/danghamo/zoo/internal/app/service"
	"github.com/danghamo/zoo/internal/cqrs/handlers"
	"github.com/danghamo/zoo/internal/domain/auth"
	"github.com/danghamo/zoo/internal/domain/zoo"
	"github.com/danghamo/zoo/internal/eventbus"
	"github.com/danghamo/zoo/internal/simulation"
	"github.com/danghamo/zoo/pkg/config"
	"github.com/danghamo/zoo/pkg/logger"
	"github.com/danghamo/zoo/pkg/redisx"
	"github.com/danghamo/zoo/pkg/sse"
)

func main() {
	// zoo-server hash-key <key> prints the value for auth.staff_key_hash
	if len(os.Args) == 3 && os.Args[1] == "hash-key" {
		hash, err := auth.HashStaffKey(os.Args[2])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to hash staff key: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(hash)
		return
	}

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
		log.Error("Server error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}

	log.Info("Server gracefully stopped")
}

func run(cfg *config.Config, log *logger.Logger) error {
	if err := cfg.Auth.Validate(); err != nil {
		return err
	}

	log.Info("Starting zoo server",
		zap.String("zoo", cfg.Zoo.Name),
		zap.String("environment", cfg.Log.Environment),
		zap.String("events_backend", cfg.Events.Backend),
	)

	// Redis backs the redis event backend and the census cache
	var redisClient *redisx.Client
	if cfg.Events.UsesRedis() {
		var err error
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

	broadcaster := sse.NewBroadcaster(log, sse.WithHeartbeat(cfg.Stream.HeartbeatInterval))

	audit := handlers.NewAuditEventHandler(log)
	stream := handlers.NewStreamEventHandler(broadcaster, log)
	if err := bus.AddHandlers(append(audit.EventHandlers(), stream.EventHandlers()...)...); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-quit:
			log.Info("Shutting down server...")
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

	svc, err := newZooService(ctx, cfg, bus, log)
	if err != nil {
		return err
	}

	var censusOpts []service.CensusOption
	if redisClient != nil {
		censusOpts = append(censusOpts, service.WithCensusCache(redisClient))
	}
	census := service.NewCensusBroadcaster(log, svc, bus, cfg.Stream.CensusInterval, censusOpts...)
	census.Start(ctx)
	defer census.Stop()

	deps := api.Dependencies{
		Service:     svc,
		Census:      census,
		Broadcaster: broadcaster,
		Tokens:      auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL),
		StaffKey:    auth.NewStaffKey(cfg.Auth.StaffKeyHash),
		Redis:       redisClient,
	}
	if cfg.RateLimit.Enabled {
		deps.Limiter = middleware.NewLimiter(log, cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		go deps.Limiter.RunCleanup(ctx)
	}

	apiServer, err := api.NewServer(cfg.Server, log, deps)
	if err != nil {
		return err
	}

	serveErr := apiServer.Start(ctx)

	cancel()
	if err := <-routerDone; err != nil {
		log.Warn("Event router stopped with error", zap.Error(err))
	}

	log.Info("Events handled", zap.Int64("published", bus.Published()), zap.Int("audited", audit.Len()))
	return serveErr
}

// newZooService builds the running zoo, stocked with the scripted day when server.seed is set
func newZooService(ctx context.Context, cfg *config.Config, bus *eventbus.Bus, log *logger.Logger) (*service.ZooService, error) {
	scenario, err := simulation.ConfigFrom(cfg)
	if err != nil {
		return nil, err
	}

	if !cfg.Server.Seed {
		return service.NewZooService(
			zoo.New(scenario.ZooName, scenario.Location), bus, log,
			handler.WithDefaultCapacityPolicy(scenario.Policy),
		), nil
	}

	res, err := simulation.Run(ctx, scenario, bus, log, io.Discard)
	if err != nil {
		return nil, fmt.Errorf("failed to seed zoo: %w", err)
	}
	log.Info("Zoo seeded",
		zap.Int("enclosures", len(res.Enclosures)),
		zap.String("capacity_policy", string(scenario.Policy)))
	return res.Service, nil
}
