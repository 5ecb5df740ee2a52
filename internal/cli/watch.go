package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/puffin/internal/adapters/terminal"
	"github.com/aretw0/puffin/internal/config"
	"github.com/aretw0/puffin/pkg/runner"
	"github.com/fsnotify/fsnotify"
)

// settleDelay lets editors finish writing before the config is reloaded.
const settleDelay = 100 * time.Millisecond

// RunWatch plays the game in development mode, restarting it from the
// configured initial state whenever the configuration file changes.
// Quitting the game ends the watch.
func RunWatch(ctx context.Context, opts RunOptions) error {
	sm := runner.NewSignalManager(ctx)
	defer sm.Stop()
	ctx = sm.Context()

	logger := createLogger(os.Stderr, slog.LevelInfo, opts.Debug)

	path, err := filepath.Abs(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("invalid config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(path), err)
	}

	// Reuse one keyboard across restarts so stdin has a single reader.
	keyboard, err := terminal.NewKeyboard(os.Stdin, logger)
	if err != nil {
		return fmt.Errorf("keyboard: %w", err)
	}
	defer keyboard.Close()

	logInterrupt := func() {
		if sig := sm.Signal(); sig != nil {
			logger.Info("Watcher interrupted", "signal", sig.String())
		}
	}

	logger.Info("Starting Watcher", "path", path)
	for {
		cfg, err := config.Load(path)
		if err != nil {
			logger.Error("Config invalid, waiting for changes", "err", err)
			if !waitForChange(ctx, watcher, path, logger) {
				logInterrupt()
				return nil
			}
			continue
		}

		restart, err := runWatchIteration(ctx, cfg, opts, keyboard, watcher, path, logger)
		if !restart {
			logInterrupt()
			return handleExecutionError(err)
		}
		logger.Info("Watcher restarting")
	}
}

// runWatchIteration runs one session. It reports true when the session was
// stopped by a config change and should be restarted.
func runWatchIteration(ctx context.Context, cfg *config.Config, opts RunOptions, keyboard *terminal.Keyboard, watcher *fsnotify.Watcher, path string, logger *slog.Logger) (bool, error) {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	doneCh := make(chan error, 1)
	go func() {
		doneCh <- runSession(runCtx, cfg, opts, keyboard)
	}()

	changed := make(chan struct{})
	go func() {
		if waitForChange(runCtx, watcher, path, logger) {
			close(changed)
		}
	}()

	select {
	case <-changed:
		cancel()
		<-doneCh
		return true, nil
	case err := <-doneCh:
		return false, err
	}
}

// waitForChange blocks until path is written, created or renamed. It returns
// false when ctx is done or the watcher closed.
func waitForChange(ctx context.Context, watcher *fsnotify.Watcher, path string, logger *slog.Logger) bool {
	for {
		select {
		case <-ctx.Done():
			return false
		case err, ok := <-watcher.Errors:
			if !ok {
				return false
			}
			logger.Warn("watcher error", "err", err)
		case event, ok := <-watcher.Events:
			if !ok {
				return false
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Info("Change detected, triggering reload", "event", event.Op.String())
			select {
			case <-ctx.Done():
				return false
			case <-time.After(settleDelay):
			}
			return true
		}
	}
}
