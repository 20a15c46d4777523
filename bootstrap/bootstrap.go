// Package bootstrap wires configuration, storage, hydration and the HTTP
// server into a runnable application.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	apihttp "github.com/chunkinator/astroneer/adapters/http"
	"github.com/chunkinator/astroneer/adapters/http/catalog"
	"github.com/chunkinator/astroneer/adapters/idgen"
	"github.com/chunkinator/astroneer/adapters/memory"
	"github.com/chunkinator/astroneer/adapters/metrics"
	"github.com/chunkinator/astroneer/adapters/seed"
	seeds3 "github.com/chunkinator/astroneer/adapters/seed/s3"
	"github.com/chunkinator/astroneer/config"
	"github.com/chunkinator/astroneer/docs/swagger"
	"github.com/chunkinator/astroneer/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// ErrNotReady is reported by the readiness probe until hydration completes.
var ErrNotReady = errors.New("catalog not hydrated")

// App represents the running application.
type App struct {
	Logger     zerolog.Logger
	Config     *config.Holder
	Store      *memory.CatalogStore
	Metrics    *metrics.Collector
	HTTPServer *http.Server

	hotReload bool
	ready     atomic.Bool
}

// Options configures application initialization.
type Options struct {
	// ConfigPath is the YAML or TOML file; defaults apply when it is absent.
	ConfigPath string

	// HotReload watches the config file and listens for SIGHUP.
	HotReload bool

	Version string

	// LogOutput defaults to stdout.
	LogOutput io.Writer

	// Registerer defaults to the global prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// New creates and initializes the application. It does not hydrate or serve.
func New(opts Options) (*App, error) {
	cfg, err := config.LoadWithFallback(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	out := opts.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logger := NewLogger(cfg.Logging, out)

	holder, err := config.NewHolderWith(cfg, opts.ConfigPath, logger)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("version", opts.Version).
		Bool("debug", cfg.Debug).
		Msg("initializing astroneer")

	a := &App{
		Logger:    logger,
		Config:    holder,
		Store:     memory.NewCatalogStore(),
		hotReload: opts.HotReload,
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		reg := opts.Registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		a.Metrics = metrics.NewWithRegistry(reg)
		if opts.Gatherer != nil {
			metricsHandler = promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})
		}
		holder.SetObserver(a.Metrics)
		logger.Info().Msg("prometheus metrics enabled")
	}

	// Documented paths live under the configured base path.
	swagger.SwaggerInfo.BasePath = cfg.Server.BasePath
	if opts.Version != "" {
		swagger.SwaggerInfo.Version = opts.Version
	}

	catalogHandler := catalog.NewHandler(catalog.Deps{
		Store:   a.Store,
		Logger:  logger,
		Metrics: a.Metrics,
		Debug:   cfg.Debug,
	})

	holder.OnChange(func(c *config.Config) {
		applyLogLevel(c.Logging.Level)
		catalogHandler.SetDebug(c.Debug)
	})

	router := apihttp.NewRouter(
		catalogHandler.Router(),
		cfg.Server.BasePath,
		apihttp.NewHealthHandler(a),
		logger,
		apihttp.RouterConfig{
			Metrics:        a.Metrics,
			MetricsHandler: metricsHandler,
			MetricsPath:    cfg.Metrics.Path,
			EnableOpenAPI:  cfg.OpenAPI.Enabled,
			IDGenerator:    idgen.UUID{},
			Version:        opts.Version,
			Debug:          cfg.Debug,
		},
	)

	a.HTTPServer = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	return a, nil
}

// HealthCheck implements the readiness probe.
func (a *App) HealthCheck(ctx context.Context) error {
	if !a.ready.Load() {
		return ErrNotReady
	}
	return nil
}

// Hydrate loads the configured CSV dataset into the store and marks the app
// ready. With hydration disabled it only marks the app ready.
func (a *App) Hydrate(ctx context.Context) (seed.Stats, error) {
	cfg := a.Config.Get()
	if !cfg.Hydration.IsEnabled() {
		a.Logger.Info().Msg("hydration disabled")
		a.ready.Store(true)
		return seed.Stats{}, nil
	}

	src, err := NewSeedSource(ctx, cfg.Hydration)
	if err != nil {
		return seed.Stats{}, err
	}

	stats, err := NewLoader(cfg.Hydration, src, a.Store, a.Logger, a.Metrics).Load(ctx)
	if err != nil {
		return stats, err
	}

	a.ready.Store(true)
	return stats, nil
}

// NewLoader builds a hydration loader from configuration.
func NewLoader(h config.HydrationConfig, src ports.SeedSource, store ports.CatalogStore, logger zerolog.Logger, m *metrics.Collector) *seed.Loader {
	modules := make([]seed.ModuleFile, len(h.Modules))
	for i, mf := range h.Modules {
		modules[i] = seed.ModuleFile{File: mf.File, Printer: mf.Printer}
	}

	return seed.NewLoader(seed.Deps{
		Source:        src,
		Store:         store,
		Logger:        logger,
		Metrics:       m,
		Modules:       modules,
		ResourcesFile: h.ResourcesFile,
		Strict:        h.Strict,
		Optional:      h.Optional,
	})
}

// NewSeedSource returns the file or S3 source named by the configuration.
func NewSeedSource(ctx context.Context, h config.HydrationConfig) (ports.SeedSource, error) {
	switch h.Source {
	case "s3":
		src, err := seeds3.New(ctx, seeds3.Config{
			Bucket:          h.S3.Bucket,
			Region:          h.S3.Region,
			Endpoint:        h.S3.Endpoint,
			Prefix:          h.S3.Prefix,
			PathStyle:       h.S3.PathStyle,
			AccessKeyID:     h.S3.AccessKeyID,
			SecretAccessKey: h.S3.SecretAccessKey,
		})
		if err != nil {
			return nil, fmt.Errorf("s3 seed source: %w", err)
		}
		return src, nil
	case "file", "":
		return seed.NewFileSource(h.Dir), nil
	default:
		return nil, fmt.Errorf("unknown hydration source %q", h.Source)
	}
}

// Run hydrates the catalog, then serves until SIGINT or SIGTERM.
func (a *App) Run() error {
	ctx := context.Background()

	if _, err := a.Hydrate(ctx); err != nil {
		return fmt.Errorf("hydrate: %w", err)
	}

	if a.hotReload {
		if a.Config.Path() == "" {
			a.Logger.Warn().Msg("hot reload requested without a config file")
		} else if err := a.Config.WatchFile(); err != nil {
			a.Logger.Warn().Err(err).Msg("config file watch disabled")
		}
		a.Config.WatchSignals()
	}

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		a.Logger.Info().
			Str("addr", a.HTTPServer.Addr).
			Str("base_path", a.Config.Get().Server.BasePath).
			Msg("starting http server")
		if err := a.HTTPServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// Wait for interrupt or error
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		a.Logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application.
func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	a.Config.Stop()

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Shutdown(ctx); err != nil {
			a.Logger.Error().Err(err).Msg("http server shutdown error")
			return err
		}
	}

	a.Logger.Info().Msg("shutdown complete")
	return nil
}

// NewLogger builds the process logger from the logging config.
func NewLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	applyLogLevel(cfg.Level)

	if cfg.Format == "console" {
		output := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		return zerolog.New(output).With().Timestamp().Logger()
	}

	return zerolog.New(out).With().Timestamp().Logger()
}

func applyLogLevel(levelStr string) {
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil || levelStr == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
}
