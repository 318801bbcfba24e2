// Package api implements app.Runner for the platform API server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihandlers "github.com/ampnet/tokenizer-middleware/pkg/api"
	apphttp "github.com/ampnet/tokenizer-middleware/pkg/app/http"
	"github.com/ampnet/tokenizer-middleware/pkg/config"
	"github.com/ampnet/tokenizer-middleware/pkg/ethereum"
	"github.com/ampnet/tokenizer-middleware/pkg/platform"
)

const defaultRequestTimeout = 60 * time.Second

// Server holds cfg to init the api server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new api server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

// Run connects to the chain, wires the platform service and serves the HTTP
// API until an OS shutdown signal arrives or the server fails.
func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("api server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting platform API server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	client, err := ethereum.NewClient(&cfg.Chain, logger)
	if err != nil {
		return fmt.Errorf("connect chain: %w", err)
	}
	defer client.Close()

	logger.Info("Connected to chain",
		zap.String("rpc_url", cfg.Chain.RPCURL),
		zap.Int64("chain_id", cfg.Chain.ChainID),
	)

	service := platform.NewService(cfg, client, logger)
	router := s.setupRouter(service, logger)

	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

func (s *Server) setupRouter(service *platform.Service, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultRequestTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	apihandlers.RegisterRoutes(r, service, service.Discovery(), logger)

	if s.cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
		logger.Info("Metrics enabled", zap.String("path", "/metrics"))
	}

	return r
}
