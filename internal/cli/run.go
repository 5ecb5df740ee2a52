package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/puffin"
	inspect "github.com/aretw0/puffin/internal/adapters/http"
	"github.com/aretw0/puffin/internal/adapters/terminal"
	"github.com/aretw0/puffin/internal/config"
	"github.com/aretw0/puffin/internal/presentation/tui"
	"github.com/aretw0/puffin/pkg/runner"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/term"
)

// RunOptions contains all the configuration for the Run command.
type RunOptions struct {
	ConfigPath string
	Debug      bool
	Headless   bool
	Watch      bool
	MaxTicks   uint64
	RunID      string
}

// Execute handles the 'run' command logic, dispatching to Session or Watch mode.
func Execute(ctx context.Context, opts RunOptions) error {
	if opts.Watch {
		if opts.Headless {
			return fmt.Errorf("--watch and --headless cannot be used together")
		}
		return RunWatch(ctx, opts)
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	return handleExecutionError(runSession(ctx, cfg, opts, nil))
}

// runSession plays one game until quit or ctx is done.
// A nil keyboard is opened on stdin unless the run is headless.
func runSession(ctx context.Context, cfg *config.Config, opts RunOptions, keyboard *terminal.Keyboard) error {
	if opts.RunID != "" {
		cfg.Snapshot.RunID = opts.RunID
	}

	// Logs go to stderr so they do not tear the frame drawn on stdout.
	logger := createLogger(os.Stderr, cfg.Level(), opts.Debug)

	store, closeStore, err := openStore(ctx, cfg.Snapshot, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics, gatherer, err := createMetrics()
	if err != nil {
		return err
	}

	// Terminal wiring
	var extra []puffin.Option
	var screen *terminal.Renderer
	if !opts.Headless {
		if keyboard == nil {
			keyboard, err = terminal.NewKeyboard(os.Stdin, logger)
			if err != nil {
				return fmt.Errorf("keyboard: %w", err)
			}
			defer keyboard.Close()
		}

		screen = terminal.NewRenderer(os.Stdout, terminalSize(os.Stdout)...)
		screen.Enter()
		defer screen.Leave()

		extra = append(extra, puffin.WithInput(keyboard), puffin.WithRenderer(screen))
	}

	engine, err := createEngine(cfg, opts.Debug, logger, metrics, extra...)
	if err != nil {
		return err
	}

	// Observers
	if addr := cfg.Introspection.Addr; addr != "" && store != nil {
		handler := inspect.NewHandler(store, engine.Registry(),
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
	}
	if addr := cfg.Metrics.Addr; addr != "" && addr != cfg.Introspection.Addr {
		stop, err := startHTTP(ctx, addr, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}), logger)
		if err != nil {
			return err
		}
		defer stop()
	}

	runOpts := []runner.Option{
		runner.WithMaxTicks(opts.MaxTicks),
		runner.WithRunID(cfg.Snapshot.RunID),
	}
	if store != nil {
		runOpts = append(runOpts, runner.WithStore(store))
	}

	logger.Info("game started", "state", engine.State().CurrState.String(), "run_id", cfg.Snapshot.RunID)
	runErr := engine.Run(ctx, runOpts...)
	logCompletion(os.Stderr, engine, runErr, screen != nil, logger)
	return runErr
}

func terminalSize(f *os.File) []terminal.RendererOption {
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return nil
	}
	return []terminal.RendererOption{terminal.WithSize(w, h)}
}

func logCompletion(w io.Writer, engine *puffin.Engine, err error, interactive bool, logger *slog.Logger) {
	state := engine.State().CurrState
	switch {
	case err == nil && engine.Done():
		logger.Info("game quit", "state", state.String())
	case err == nil:
		logger.Info("tick budget spent", "state", state.String())
	case isInterrupted(err):
		logger.Info("game interrupted", "state", state.String())
	default:
		logger.Error("game failed", "state", state.String(), "err", err)
	}
	if interactive {
		return
	}
	if err == nil || isInterrupted(err) {
		printSystemMessage(w, "Finished at '%s' state.", state)
	}
}

// Banner prints the puffin banner unless the output is not a terminal.
func Banner(w io.Writer) {
	if f, ok := w.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return
	}
	tui.PrintBanner(w)
}
