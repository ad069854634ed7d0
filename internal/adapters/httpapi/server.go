// Package httpapi implements the HTTP transport for the analysis service.
// It is thin plumbing: decoding, error mapping and middleware around the
// orchestrator in internal/app.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/rs/cors"
	"go.trai.ch/flowd/internal/core/domain"
	"go.trai.ch/flowd/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Orchestrator is the entry point the transport calls into.
type Orchestrator interface {
	// Analyze validates and analyzes a raw pipeline, consulting the result cache.
	Analyze(ctx context.Context, nodes []domain.Node, edges []domain.Edge) (domain.AnalysisReport, error)
	// CacheStats exposes the result-cache counters for the metrics endpoint.
	CacheStats() domain.CacheStats
}

// Server serves the HTTP API.
type Server struct {
	cfg    *domain.Config
	orch   Orchestrator
	logger ports.Logger
	http   *http.Server
}

// NewServer builds the route table and middleware chain for the given config.
func NewServer(cfg *domain.Config, orch Orchestrator, logger ports.Logger) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		orch:   orch,
		logger: logger,
	}

	handler, err := s.buildHandler()
	if err != nil {
		return nil, err
	}

	s.http = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped handler. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Serve listens until ctx is cancelled, then drains in-flight requests for at
// most the configured grace period.
func (s *Server) Serve(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info(fmt.Sprintf("listening on %s", s.http.Addr))
		if err := s.http.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return zerr.Wrap(err, "http server failed")
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownGrace)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// buildHandler assembles routes and the middleware chain. Per-route rate
// limits sit inside the chain; request ID, logging, recovery, CORS and gzip
// wrap every route.
func (s *Server) buildHandler() (http.Handler, error) {
	parseLimit := NewClientLimiter(s.cfg.RateLimitParse)
	anonLimit := NewClientLimiter(s.cfg.RateLimitAnonymous)
	metricsLimit := NewClientLimiter(s.cfg.RateLimitMetrics)

	mux := http.NewServeMux()
	mux.Handle("GET /{$}", s.withRateLimit(anonLimit, http.HandlerFunc(s.handleRoot)))
	mux.Handle("GET /health", s.withRateLimit(anonLimit, http.HandlerFunc(s.handleHealth)))
	mux.Handle("GET /metrics", s.withRateLimit(metricsLimit, http.HandlerFunc(s.handleMetrics)))
	mux.Handle("POST /pipelines/parse", s.withRateLimit(parseLimit, http.HandlerFunc(s.handleParse)))

	gzipWrap, err := gzhttp.NewWrapper(gzhttp.MinSize(500))
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build gzip middleware")
	}

	corsWrap := cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           3600,
	})

	var handler http.Handler = mux
	handler = gzipWrap(handler)
	handler = corsWrap.Handler(handler)
	handler = s.withRecovery(handler)
	handler = s.withLogging(handler)
	handler = s.withRequestID(handler)
	return handler, nil
}
