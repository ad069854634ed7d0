// Package app implements the application layer for flowd: the analysis
// orchestrator and the serve lifecycle.
package app

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/flowd/internal/adapters/cache"
	"go.trai.ch/flowd/internal/adapters/httpapi"
	"go.trai.ch/flowd/internal/adapters/telemetry"
	"go.trai.ch/flowd/internal/build"
	"go.trai.ch/flowd/internal/core/domain"
	"go.trai.ch/flowd/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ httpapi.Orchestrator = (*App)(nil)

// App is the analysis orchestrator. It owns the one shared mutable resource
// of the service, the result cache, and is the sole translation point from
// internal error kinds to caller-visible outcomes.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	analyzer     ports.Analyzer

	cfg    *domain.Config
	cache  ports.ResultCache
	tracer ports.Tracer
}

// New creates a new App instance. Runtime pieces (config, cache, tracer) are
// attached by Serve, or by WithRuntime in tests.
func New(loader ports.ConfigLoader, log ports.Logger, analyzer ports.Analyzer) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		analyzer:     analyzer,
		tracer:       telemetry.NewNoOpTracer(),
	}
}

// WithRuntime injects the resolved config, result cache and tracer. Must be
// called before Analyze; Serve does it as part of startup.
func (a *App) WithRuntime(cfg *domain.Config, c ports.ResultCache, tracer ports.Tracer) *App {
	a.cfg = cfg
	a.cache = c
	if tracer != nil {
		a.tracer = tracer
	}
	return a
}

// ServeOptions configuration for the Serve method.
type ServeOptions struct {
	ConfigPath string
	ListenAddr string
	TextLogs   bool
}

// Serve loads configuration, wires the runtime components and runs the HTTP
// server until ctx is cancelled.
func (a *App) Serve(ctx context.Context, opts ServeOptions) error {
	if opts.TextLogs {
		a.logger.SetJSON(false)
	}

	cfg, err := a.configLoader.Load(opts.ConfigPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if opts.ListenAddr != "" {
		cfg.ListenAddr = opts.ListenAddr
	}

	// Route spans through the global provider so completed spans land in the
	// service log.
	setupOTel(telemetry.NewLogBridge(a.logger))
	tracer := telemetry.NewOTelTracer("flowd")
	defer func() {
		_ = tracer.Shutdown(ctx)
	}()

	results := cache.New[domain.AnalysisResult](cfg.CacheTTL, cfg.CacheCapacity, cfg.CacheEvictBatch)
	a.WithRuntime(cfg, results, tracer)

	a.logger.Info(fmt.Sprintf("flowd %s starting", build.Version))
	a.logger.Info(fmt.Sprintf("limits | max_nodes=%d max_edges=%d max_id_length=%d",
		cfg.MaxNodes, cfg.MaxEdges, cfg.MaxIDLength))
	a.logger.Info(fmt.Sprintf("cache | enabled=%t ttl=%s capacity=%d",
		cfg.CacheEnabled, cfg.CacheTTL, cfg.CacheCapacity))

	srv, err := httpapi.NewServer(cfg, a, a.logger)
	if err != nil {
		return zerr.Wrap(err, "failed to build http server")
	}

	err = srv.Serve(ctx)

	a.cache.Clear()
	a.logger.Info("flowd shutting down")
	return err
}

// Analyze implements httpapi.Orchestrator. It validates the raw pipeline,
// consults the cache by fingerprint, and falls through to the analyzer on a
// miss. Two concurrent requests for the same uncached pipeline may both
// compute and store; the computation is idempotent so last write wins.
//
// Any panic below this frame is reported as the opaque internal fault; the
// cause is logged, never surfaced.
func (a *App) Analyze(ctx context.Context, nodes []domain.Node, edges []domain.Edge) (report domain.AnalysisReport, err error) {
	start := time.Now()

	defer func() {
		if v := recover(); v != nil {
			a.logger.Error(fmt.Errorf("analysis panic: %v", v))
			report = domain.AnalysisReport{}
			err = domain.ErrInternal
		}
	}()

	_, span := a.tracer.Start(ctx, "pipeline.analyze")
	defer span.End()
	span.SetAttribute("num_nodes", len(nodes))
	span.SetAttribute("num_edges", len(edges))

	p, err := domain.NewPipeline(nodes, edges, a.cfg.Limits())
	if err != nil {
		span.RecordError(err)
		return domain.AnalysisReport{}, err
	}

	var key string
	if a.cfg.CacheEnabled {
		key = domain.Fingerprint(p)
		if cached, ok := a.cache.Get(key); ok {
			span.SetAttribute("cache_hit", true)
			return domain.AnalysisReport{
				AnalysisResult: cached,
				CacheHit:       true,
				Elapsed:        time.Since(start),
			}, nil
		}
	}

	a.logger.Info(fmt.Sprintf("analyzing pipeline | nodes=%d edges=%d", len(p.Nodes), len(p.Edges)))

	result, err := a.analyzer.Analyze(p)
	if err != nil {
		span.RecordError(err)
		return domain.AnalysisReport{}, err
	}

	if a.cfg.CacheEnabled {
		a.cache.Set(key, result)
	}

	return domain.AnalysisReport{
		AnalysisResult: result,
		Elapsed:        time.Since(start),
	}, nil
}

// CacheStats implements httpapi.Orchestrator.
func (a *App) CacheStats() domain.CacheStats {
	if a.cache == nil {
		return domain.CacheStats{}
	}
	return a.cache.Stats()
}

// setupOTel configures the OpenTelemetry SDK with the log bridge.
func setupOTel(bridge *telemetry.LogBridge) {
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(bridge),
	)
	otel.SetTracerProvider(tp)
}
