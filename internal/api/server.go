package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "github.com/danghamo/zoo/docs"
	"github.com/danghamo/zoo/internal/api/handlers"
	"github.com/danghamo/zoo/internal/api/jsonrpcx"
	"github.com/danghamo/zoo/internal/api/middleware"
	"github.com/danghamo/zoo/internal/app/service"
	"github.com/danghamo/zoo/internal/domain/auth"
	"github.com/danghamo/zoo/pkg/autorouter"
	"github.com/danghamo/zoo/pkg/config"
	"github.com/danghamo/zoo/pkg/logger"
	"github.com/danghamo/zoo/pkg/redisx"
	"github.com/danghamo/zoo/pkg/sse"
)

const shutdownTimeout = 5 * time.Second

// Dependencies are the collaborators the server routes requests to
type Dependencies struct {
	Service     *service.ZooService
	Census      handlers.Census
	Broadcaster *sse.Broadcaster
	Tokens      *auth.TokenService
	StaffKey    *auth.StaffKey
	Limiter     *middleware.Limiter // nil disables rate limiting
	Redis       *redisx.Client      // nil skips the redis health check
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
	mux        *http.ServeMux
	deps       Dependencies
	auth       *middleware.AuthMiddleware
	routes     []autorouter.Route
}

// NewServer creates a new HTTP server
func NewServer(cfg config.ServerConfig, log *logger.Logger, deps Dependencies) (*Server, error) {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	apiLogger := log.WithComponent("api")
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      mux,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: apiLogger,
		mux:    mux,
		deps:   deps,
		auth:   middleware.NewAuthMiddleware(deps.Tokens, apiLogger),
	}

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}
	s.setupMiddleware()

	return s, nil
}

// setupRoutes configures the server routes
func (s *Server) setupRoutes() error {
	s.mux.HandleFunc("/health", s.healthCheckHandler)
	s.mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)
	s.mux.HandleFunc("/api/v1/ping", s.handlePing)
	s.mux.HandleFunc("/api/v1/stream/events", s.deps.Broadcaster.HandleSSE)

	svc := s.deps.Service
	public := []struct {
		prefix  string
		handler interface{}
	}{
		{"zoo.", handlers.NewZooHandler(s.logger, svc, s.deps.Census)},
		{"enclosure.", handlers.NewEnclosureHandler(s.logger, svc)},
		{"staff.", handlers.NewStaffHandler(s.logger, svc)},
		{"auth.", handlers.NewAuthHandler(s.logger, svc, s.deps.Tokens, s.deps.StaffKey)},
	}
	for _, p := range public {
		if err := s.register(p.prefix, p.handler, nil); err != nil {
			return err
		}
	}

	return s.register("care.", handlers.NewCareHandler(s.logger, svc), s.auth.RequireStaff)
}

func (s *Server) register(methodPrefix string, handler interface{}, guard autorouter.Middleware) error {
	router := autorouter.NewAutoRouter(s.mux, autorouter.RegistrationOptions{
		Prefix:       "/api/v1/",
		MethodPrefix: methodPrefix,
		Logger:       s.logger,
	})

	var err error
	if guard != nil {
		err = router.RegisterHandlersWithAuth(handler, guard)
	} else {
		err = router.RegisterHandlers(handler)
	}
	if err != nil {
		return err
	}

	s.routes = append(s.routes, router.Routes()...)
	return nil
}

// setupMiddleware applies middleware to all routes
func (s *Server) setupMiddleware() {
	chain := []middleware.Middleware{
		middleware.Recovery(s.logger),
		middleware.ErrorAdapter(s.logger),
		middleware.CORS(),
		middleware.Logging(s.logger),
	}
	if s.deps.Limiter != nil {
		chain = append(chain, s.deps.Limiter.Middleware())
	}

	s.httpServer.Handler = middleware.Chain(chain...)(s.mux)
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Routes returns the auto-registered JSON-RPC endpoints
func (s *Server) Routes() []autorouter.Route {
	return s.routes
}

// Start serves until ctx is cancelled, then shuts down
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.httpServer.Addr),
		zap.Int("routes", len(s.routes)))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
	case err, ok := <-errCh:
		if ok {
			s.logger.Error("HTTP server error", zap.Error(err))
			return err
		}
	}

	return s.Shutdown()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	s.logger.Info("Shutting down HTTP server")

	// Close event streams first so Shutdown does not wait on them
	if s.deps.Broadcaster != nil {
		s.deps.Broadcaster.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Server shutdown error", zap.Error(err))
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// GetAddr returns the server address
func (s *Server) GetAddr() string {
	return s.httpServer.Addr
}

type healthCheck struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// healthCheckHandler handles health check requests
func (s *Server) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	checks := map[string]healthCheck{
		"stream": {Status: "up"},
	}

	if s.deps.Redis != nil {
		if err := s.deps.Redis.HealthCheck(r.Context()); err != nil {
			checks["redis"] = healthCheck{Status: "down", Error: err.Error()}
			status = http.StatusServiceUnavailable
		} else {
			checks["redis"] = healthCheck{Status: "up"}
		}
	}

	overall := "healthy"
	if status != http.StatusOK {
		overall = "unhealthy"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  overall,
		"clients": s.deps.Broadcaster.ClientCount(),
		"checks":  checks,
	})
}

// handlePing handles ping requests
func (s *Server) handlePing(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		jsonrpcx.WithError(r, nil, jsonrpcx.MethodNotFound, "Method not allowed")
		return
	}

	req, err := jsonrpcx.ParseRequest(r)
	if err != nil {
		jsonrpcx.WithError(r, nil, jsonrpcx.ParseError, "Invalid JSON-RPC request")
		return
	}

	jsonrpcx.Success(w, req.ID, map[string]string{"message": "pong"})
}
