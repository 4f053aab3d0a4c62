package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/Rajat-oss/Skillspring-AI-2/internal/aggregator"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/api"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/cache"
	memorycache "github.com/Rajat-oss/Skillspring-AI-2/internal/cache/memory"
	rediscache "github.com/Rajat-oss/Skillspring-AI-2/internal/cache/redis"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/config"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/events"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/history"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/scheduler"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/source"
	"github.com/Rajat-oss/Skillspring-AI-2/internal/telemetry"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newSources(logger *zap.Logger, cfg *config.Config) ([]source.Source, error) {
	return source.Build(logger, cfg)
}

func newAggregator(sources []source.Source, logger *zap.Logger, cfg *config.Config) *aggregator.Aggregator {
	return aggregator.New(sources, source.NewFixture(logger), logger, cfg)
}

func newSnapshotCache(cfg *config.Config) (cache.SnapshotCache, error) {
	opts := cache.Options{
		TTL:           cfg.CacheTTL,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	}

	switch cfg.CacheBackend {
	case "memory":
		return memorycache.New(opts), nil
	case "redis":
		return rediscache.New(opts), nil
	default:
		return nil, fmt.Errorf("unknown CACHE_BACKEND: %s (use 'memory' or 'redis')", cfg.CacheBackend)
	}
}

func newRecorder(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (history.Recorder, error) {
	if !cfg.HistoryEnabled {
		return history.NoopRecorder{}, nil
	}

	recorder, err := history.New(context.Background(), cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return recorder.Close()
		},
	})
	return recorder, nil
}

func newScheduler(agg *aggregator.Aggregator, snapCache cache.SnapshotCache, sink events.Sink, recorder history.Recorder, logger *zap.Logger, cfg *config.Config) *scheduler.Scheduler {
	return scheduler.New(agg, snapCache, sink, recorder, logger, cfg.RefreshInterval)
}

func registerTracing(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) {
	if !cfg.TracingEnabled {
		return
	}

	var shutdown func()
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			shutdown, err = telemetry.InitTracer(ctx, "opportunities-service", cfg.OTLPEndpoint)
			return err
		},
		OnStop: func(ctx context.Context) error {
			if shutdown != nil {
				shutdown()
			}
			return nil
		},
	})
}

func registerServer(lc fx.Lifecycle, server *api.Server, cfg *config.Config, logger *zap.Logger) {
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Handler(),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
				if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return httpServer.Shutdown(ctx)
		},
	})
}

func registerScheduler(lc fx.Lifecycle, sched *scheduler.Scheduler, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := sched.Start(context.Background()); err != nil {
					logger.Error("refresh scheduler stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			sched.Stop()
			return nil
		},
	})
}

func registerCleanup(lc fx.Lifecycle, snapCache cache.SnapshotCache, sink events.Sink) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sink.Close()
			return snapCache.Close()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newSources,
			newAggregator,
			newSnapshotCache,
			events.NewSink,
			newRecorder,
			newScheduler,
			api.NewServer,
		),
		fx.Invoke(
			registerTracing,
			registerServer,
			registerScheduler,
			registerCleanup,
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
