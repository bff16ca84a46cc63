package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/sync/errgroup"

	"github.com/vietddude/sniffer/internal/core/config"
	"github.com/vietddude/sniffer/internal/emitter"
	"github.com/vietddude/sniffer/internal/infra/kafka"
	redisclient "github.com/vietddude/sniffer/internal/infra/redis"
	"github.com/vietddude/sniffer/internal/infra/telemetry"
	"github.com/vietddude/sniffer/internal/server"
)

// Config holds the application configuration.
type Config struct {
	Server        config.ServerConfig
	Redis         redisclient.Config
	Kafka         kafka.Config
	Tracing       telemetry.Config
	Analysis      config.AnalysisConfig
	WorkerEnabled bool // CLI flag
}

// ConfigFrom maps the loaded file configuration.
func ConfigFrom(cfg *config.AppConfig) Config {
	return Config{
		Server:   cfg.Server,
		Redis:    cfg.Redis,
		Kafka:    cfg.Kafka,
		Tracing:  cfg.Tracing,
		Analysis: cfg.Analysis,
	}
}

// App wires the service to its sinks, the HTTP API and the job worker.
type App struct {
	cfg            Config
	service        *Service
	server         *server.Server
	worker         *Worker
	shutdownTracer func(context.Context) error
	log            *slog.Logger
	cancel         context.CancelFunc
	group          *errgroup.Group
}

// NewApp builds the service and connects the configured sinks.
// Unreachable optional sinks are logged and skipped.
func NewApp(ctx context.Context, cfg Config) (*App, error) {
	log := slog.Default()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to init tracer: %w", err)
	}

	sinks := NewEmitters(cfg)
	var redisClient *redisclient.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			log.Warn("Failed to connect to Redis, pub/sub and worker disabled", "error", err)
		} else {
			sinks.Add("redis", redisclient.NewPublisher(redisClient))
		}
	}

	service := NewService(cfg.Analysis, sinks)

	var worker *Worker
	if cfg.WorkerEnabled {
		if redisClient == nil {
			log.Warn("Job worker requested without a Redis connection")
		} else {
			worker = NewWorker(DefaultWorkerConfig(), redisClient, service)
		}
	}

	log.Info("Alert sinks configured", "count", sinks.Len())

	return &App{
		cfg:            cfg,
		service:        service,
		server:         server.New(service, cfg.Server),
		worker:         worker,
		shutdownTracer: shutdownTracer,
		log:            log,
	}, nil
}

// NewEmitters builds the log and Kafka sinks. Redis is added once connected.
func NewEmitters(cfg Config) *emitter.Multi {
	sinks := emitter.NewMulti()
	sinks.Add("log", emitter.NewLogEmitter(slog.Default()))
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			slog.Warn("Failed to create Kafka producer", "error", err)
		} else {
			sinks.Add("kafka", producer)
		}
	}
	return sinks
}

// Service returns the analysis service.
func (a *App) Service() *Service {
	return a.service
}

// Start starts the HTTP server and, when enabled, the job worker.
func (a *App) Start(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)
	a.group, ctx = errgroup.WithContext(ctx)

	a.group.Go(func() error {
		a.log.Info("Starting HTTP server", "port", a.cfg.Server.Port)
		if err := a.server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if a.worker != nil {
		a.group.Go(func() error {
			return a.worker.Run(ctx)
		})
	}
	return nil
}

// Wait blocks until the server or worker exits.
func (a *App) Wait() error {
	if a.group == nil {
		return nil
	}
	return a.group.Wait()
}

// Stop shuts the server down, stops the worker and flushes the sinks.
func (a *App) Stop(ctx context.Context) error {
	a.log.Info("Stopping sniffer...")

	var errs []error
	if err := a.server.Stop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server: %w", err))
	}
	if a.cancel != nil {
		a.cancel()
	}
	if err := a.Wait(); err != nil {
		errs = append(errs, err)
	}

	// Closing the sinks also closes the Redis client behind the publisher.
	if err := a.service.Close(); err != nil {
		a.log.Warn("Failed to close alert sinks", "error", err)
	}
	if err := a.shutdownTracer(ctx); err != nil {
		a.log.Warn("Failed to flush traces", "error", err)
	}
	return errors.Join(errs...)
}
