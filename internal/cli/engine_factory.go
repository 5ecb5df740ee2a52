package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/puffin"
	"github.com/aretw0/puffin/internal/adapters/memory"
	"github.com/aretw0/puffin/internal/adapters/redis"
	"github.com/aretw0/puffin/internal/config"
	"github.com/aretw0/puffin/pkg/observability"
	"github.com/aretw0/puffin/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// createEngine initializes a puffin engine with standard CLI conventions.
func createEngine(cfg *config.Config, debug bool, logger *slog.Logger, metrics *observability.Metrics, extra ...puffin.Option) (*puffin.Engine, error) {
	engineOpts := []puffin.Option{
		puffin.WithConfig(cfg),
		puffin.WithLogger(logger),
	}

	// 1. Hooks
	if debug {
		engineOpts = append(engineOpts, puffin.WithLifecycleHooks(createDebugHooks(logger)))
	}
	if metrics != nil {
		engineOpts = append(engineOpts, puffin.WithLifecycleHooks(metrics.Hooks()))
	}

	// 2. Caller specific wiring (input, renderer)
	engineOpts = append(engineOpts, extra...)

	engine, err := puffin.New("", engineOpts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// createMetrics registers the engine collectors on a fresh registry.
func createMetrics() (*observability.Metrics, *prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m, err := observability.NewMetrics(reg)
	if err != nil {
		return nil, nil, err
	}
	return m, reg, nil
}

// openStore builds the configured snapshot store. A nil store means
// snapshots are not published. The returned close function is never nil.
func openStore(ctx context.Context, cfg config.SnapshotConfig, logger *slog.Logger) (ports.SnapshotStore, func() error, error) {
	nop := func() error { return nil }

	switch cfg.Backend {
	case "", config.BackendNone:
		return nil, nop, nil
	case config.BackendMemory:
		return memory.New(), nop, nil
	case config.BackendRedis:
		var opts []redis.Option
		if cfg.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.TTL))
		}
		if cfg.Prefix != "" {
			opts = append(opts, redis.WithPrefix(cfg.Prefix))
		}
		store := redis.New(cfg.RedisAddr, cfg.Password, cfg.DB, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nop, fmt.Errorf("redis %s: %w", cfg.RedisAddr, err)
		}
		logger.Debug("snapshot store ready", "backend", cfg.Backend, "addr", cfg.RedisAddr)
		return store, store.Close, nil
	}
	return nil, nop, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
}
