// Package server serves expression filtering and calculation over HTTP.
//
// Routes:
//   - POST /v1/filter evaluates a logic expression against each of a list of
//     texts, where a value matches if it appears in the text ignoring case.
//   - POST /v1/calc evaluates an arithmetic expression.
//   - GET /healthz reports liveness.
//   - GET on the configured metrics path serves Prometheus metrics.
//
// Parsed expressions are cached and shared between requests. Reload swaps in
// a new configuration atomically and discards the caches.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/zephyrtronium/gvalop"
	"github.com/zephyrtronium/gvalop/internal/config"
	"github.com/zephyrtronium/gvalop/internal/metrics"
)

// Modes label metrics by the kind of expression.
const (
	ModeLogic = "logic"
	ModeArith = "arith"
)

// Server is the HTTP API.
type Server struct {
	logger  *slog.Logger
	metrics *metrics.Collector
	state   atomic.Pointer[state]
}

// state is everything derived from one configuration.
type state struct {
	cfg   *config.Config
	logic *gvalop.Registry[bool]
	arith *gvalop.Registry[*big.Float]
	opts  []gvalop.ParseOption

	logicCache *cache[bool]
	arithCache *cache[*big.Float]
}

func newState(cfg *config.Config) (*state, error) {
	logic, err := cfg.LogicRegistry()
	if err != nil {
		return nil, fmt.Errorf("logic operators: %w", err)
	}
	arith, err := cfg.ArithRegistry()
	if err != nil {
		return nil, fmt.Errorf("arithmetic operators: %w", err)
	}
	return &state{
		cfg:        cfg,
		logic:      logic,
		arith:      arith,
		opts:       cfg.ParseOptions(),
		logicCache: newCache[bool](cfg.Server.CacheSize),
		arithCache: newCache[*big.Float](cfg.Server.CacheSize),
	}, nil
}

// New creates a server. A nil logger uses slog.Default, and a nil collector
// records to a private registry.
func New(cfg *config.Config, logger *slog.Logger, m *metrics.Collector) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if m == nil {
		m = metrics.NewCollector(nil)
	}
	s := &Server{logger: logger, metrics: m}
	if err := s.Reload(cfg); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload replaces the server's configuration. Requests in flight finish with
// the configuration they started with. On error, the old configuration stays.
func (s *Server) Reload(cfg *config.Config) error {
	st, err := newState(cfg)
	s.metrics.RecordReload(err)
	if err != nil {
		return err
	}
	s.state.Store(st)
	s.metrics.SetCacheEntries(ModeLogic, 0)
	s.metrics.SetCacheEntries(ModeArith, 0)
	return nil
}

// Handler returns the server's routes wrapped in its middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/filter", s.handleFilter)
	mux.HandleFunc("POST /v1/calc", s.handleCalc)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET "+s.state.Load().cfg.Server.MetricsPath, s.metrics.Handler())

	var h http.Handler = mux
	h = s.observe(h)
	h = requestID(h)
	h = s.recoverer(h)
	return h
}

// Run listens on the configured address and serves until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	cfg := s.state.Load().cfg.Server
	ln, err := net.Listen("tcp", cfg.ListenAddress)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	cfg := s.state.Load().cfg.Server
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
	}
	errc := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "address", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("server error: %w", err)
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	s.logger.Info("initiating graceful shutdown", "timeout", cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	s.logger.Info("server stopped")
	return <-errc
}
