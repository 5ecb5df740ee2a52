package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/puffin"
	inspect "github.com/aretw0/puffin/internal/adapters/http"
	"github.com/aretw0/puffin/internal/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// ServeOptions configures the standalone introspection server.
type ServeOptions struct {
	ConfigPath string
	Debug      bool
	Addr       string
}

// DefaultServeAddr is used when neither the flag nor the config set an address.
const DefaultServeAddr = ":8080"

// Serve exposes the snapshots published by other puffin processes. It is
// only useful with a shared backend such as redis.
func Serve(ctx context.Context, opts ServeOptions, errOut io.Writer) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	logger := createLogger(errOut, cfg.Level(), opts.Debug)

	if cfg.Snapshot.Backend != config.BackendRedis {
		logger.Warn("snapshot backend is not shared, only this process can publish", "backend", cfg.Snapshot.Backend)
	}

	store, closeStore, err := openStore(ctx, cfg.Snapshot, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	if store == nil {
		return fmt.Errorf("serve needs a snapshot backend, got %q", cfg.Snapshot.Backend)
	}

	reg, err := cfg.Registry()
	if err != nil {
		return err
	}

	gatherer := prometheus.NewRegistry()
	gatherer.MustRegister(collectors.NewGoCollector())

	addr := opts.Addr
	if addr == "" {
		addr = cfg.Introspection.Addr
	}
	if addr == "" {
		addr = DefaultServeAddr
	}

	handler := inspect.NewHandler(store, reg,
		inspect.WithGatherer(gatherer),
		inspect.WithDefaultRun(cfg.Snapshot.RunID),
		inspect.WithVersion(puffin.Version),
		inspect.WithLogger(logger),
	)
	stop, err := startHTTP(ctx, addr, handler, logger)
	if err != nil {
		return err
	}
	defer stop()

	<-ctx.Done()
	logger.Info("Stopping server")
	return nil
}
