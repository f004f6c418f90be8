package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Skotchmaster/cloudmart/internal/backend"
	"github.com/Skotchmaster/cloudmart/internal/events"
	"github.com/Skotchmaster/cloudmart/internal/httpserver"
	"github.com/Skotchmaster/cloudmart/internal/lock"
	"github.com/Skotchmaster/cloudmart/internal/service"
	"github.com/Skotchmaster/cloudmart/pkg/config"
	"github.com/Skotchmaster/cloudmart/pkg/logging"
	"github.com/Skotchmaster/cloudmart/pkg/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("server_failed", "error", err)
		os.Exit(1)
	}
}

// run serves until ctx is cancelled. Everything it opens is closed before it
// returns, on the error paths too.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	store, err := backend.Open(initCtx, cfg, logger)
	cancel()
	if err != nil {
		return fmt.Errorf("open backend: %w", err)
	}
	defer store.Close()

	locker, err := newLocker(ctx, cfg, logger)
	if err != nil {
		return err
	}
	if c, ok := locker.(io.Closer); ok {
		defer c.Close()
	}

	publisher, err := newPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	e := httpserver.New(logger, metrics.NewServerMetrics(cfg.ServiceName), &httpserver.Deps{
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{Store: store.Catalog}},
		CartHandler: &httpserver.CartHTTP{Svc: &service.CartService{
			Store:     store.Cart,
			Locker:    locker,
			Publisher: publisher,
		}},
		OrderHandler: &httpserver.OrderHTTP{Svc: &service.OrderService{
			Store:     store.Orders,
			Locker:    locker,
			Publisher: publisher,
		}},
		HealthHandler: &httpserver.HealthHTTP{
			DB:       store,
			Mode:     string(store.Mode),
			Degraded: store.Mode == backend.ModeDegraded,
		},
		DefaultUser: cfg.DefaultUser,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server_starting", "addr", srv.Addr, "mode", store.Mode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	logger.Info("server_stopping")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("server_stopped")
	return nil
}

func newLocker(ctx context.Context, cfg config.Config, logger *slog.Logger) (lock.Locker, error) {
	if cfg.RedisAddr == "" {
		return lock.NewLocal(), nil
	}

	rdb := lock.NewRedisClient(cfg.RedisAddr)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	rl := lock.NewRedis(rdb, cfg.LockTTL)
	if err := rl.Ping(pingCtx); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis %s unreachable: %w", cfg.RedisAddr, err)
	}
	logger.Info("lock_redis", "addr", cfg.RedisAddr, "ttl", cfg.LockTTL)
	return rl, nil
}

func newPublisher(cfg config.Config, logger *slog.Logger) (events.Publisher, error) {
	if len(cfg.KafkaBrokers) == 0 {
		return events.Nop{}, nil
	}

	p, err := events.NewProducer(cfg.KafkaBrokers)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	logger.Info("events_kafka", "brokers", cfg.KafkaBrokers)
	return p, nil
}
