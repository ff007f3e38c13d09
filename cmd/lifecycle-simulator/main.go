// cmd/lifecycle-simulator/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/config"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/common/logger"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/lifecycle"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/models"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/notifier"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/scenarios"
	"github.com/vaibhavProductCode/loan-progress-hub/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting lifecycle simulator...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	ctx := context.Background()

	mirror, err := openStore(ctx, cfg, zapLog)
	if err != nil {
		zapLog.Fatal("store initialization failed", zap.Error(err))
	}
	if mirror != nil {
		defer mirror.Close()
	}

	opts := []lifecycle.Option{
		lifecycle.WithConfig(lifecycle.ConfigFromApp(cfg.Lifecycle)),
		lifecycle.WithLogger(log),
	}
	if mirror != nil {
		opts = append(opts, lifecycle.WithStore(mirror))
	}

	if cfg.Notifier.Email.Enabled || cfg.Notifier.SMS.Enabled {
		outbound, err := notifier.New(ctx, cfg.Notifier, log)
		if err != nil {
			zapLog.Fatal("notifier initialization failed", zap.Error(err))
		}
		zapLog.Info("outbound notifier enabled",
			zap.Bool("email", cfg.Notifier.Email.Enabled),
			zap.Bool("sms", cfg.Notifier.SMS.Enabled),
		)
		opts = append(opts, lifecycle.WithNotificationSink(func(n models.Notification) {
			if err := outbound.Deliver(ctx, n); err != nil {
				zapLog.Error("notification delivery failed",
					zap.String("notificationId", n.ID),
					zap.Error(err),
				)
			}
		}))
	}

	engine := lifecycle.New(opts...)

	if mirror != nil {
		snap, err := lifecycle.LoadSnapshot(ctx, mirror)
		if err != nil {
			zapLog.Warn("snapshot load failed, starting empty", zap.Error(err))
		} else if err := engine.Hydrate(snap); err != nil {
			zapLog.Warn("snapshot hydration failed, starting empty", zap.Error(err))
		} else {
			zapLog.Info("engine hydrated from store",
				zap.Int("applications", len(snap.Applications)),
				zap.Int("notifications", len(snap.Notifications)),
			)
		}
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		go func() {
			http.Handle("/metrics", promhttp.Handler())
			zapLog.Info("metrics listening", zap.String("address", cfg.Metrics.Address))
			if err := http.ListenAndServe(cfg.Metrics.Address, nil); err != nil {
				zapLog.Error("metrics server stopped", zap.Error(err))
			}
		}()
	}

	// Walk every scenario once so the engine has something to show.
	runner := scenarios.NewRunner(engine, log)
	ids, err := runner.RunAll()
	if err != nil {
		zapLog.Fatal("scenario run failed", zap.Error(err))
	}
	zapLog.Info("scenarios completed", zap.Int("applications", len(ids)))

	c := engine.Classify()
	zapLog.Info("classification",
		zap.Int("active", len(c.Active)),
		zap.Int("completed", len(c.Completed)),
		zap.Int("unreadNotifications", engine.UnreadCount()),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	zapLog.Info("Shutting down...")
}

// openStore builds the configured persistence mirror, nil for "none".
func openStore(ctx context.Context, cfg *config.Config, zapLog *zap.Logger) (store.Store, error) {
	switch cfg.Store.Backend {
	case "none":
		return nil, nil

	case "redis":
		var rs *store.RedisStore
		err := retryWithBackoff(func() error {
			var err error
			rs, err = store.NewRedis(cfg.Store.Redis)
			if err != nil {
				return err
			}
			return rs.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			return nil, err
		}
		zapLog.Info("Redis connected successfully")
		return rs, nil

	case "postgres":
		var ps *store.PostgresStore
		err := retryWithBackoff(func() error {
			var err error
			ps, err = store.NewPostgres(cfg.Store.Postgres)
			if err != nil {
				return err
			}
			return ps.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			return nil, err
		}
		if err := ps.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		zapLog.Info("PostgreSQL connected successfully")
		return ps, nil
	}

	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}
