package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/puffin/internal/logging"
	"github.com/aretw0/puffin/pkg/domain"
)

const shutdownTimeout = 5 * time.Second

// createLogger configures the application logger.
// In debug mode every level is written to stderr; otherwise the configured level applies.
func createLogger(w io.Writer, level slog.Level, debug bool) *slog.Logger {
	if debug {
		level = slog.LevelDebug
	}
	return logging.NewTo(w, level)
}

// printSystemMessage prints a standardized system message.
func printSystemMessage(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, ">>> %s\n", fmt.Sprintf(format, args...))
}

func createDebugHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEvent: func(_ context.Context, e *domain.DispatchInfo) {
			logger.Debug("Event", "tick", e.Tick.Index, "source", e.Source.String(), "event", e.Event.String())
		},
		OnTransitionBegin: func(_ context.Context, e *domain.TransitionInfo) {
			logger.Debug("Transition Begin", "tick", e.Tick.Index, "from", e.Transition.OldState.String(), "to", e.Transition.NewState.String())
		},
		OnTransitionEnd: func(_ context.Context, e *domain.TransitionInfo) {
			logger.Debug("Transition End", "tick", e.Tick.Index, "state", e.Transition.NewState.String())
		},
		OnTransitionIgnored: func(_ context.Context, e *domain.TransitionInfo) {
			logger.Debug("Transition Ignored", "tick", e.Tick.Index, "err", e.Err)
		},
		OnDeviceChange: func(_ context.Context, e *domain.DispatchInfo) {
			logger.Debug("Device Change", "tick", e.Tick.Index, "event", e.Event.String())
		},
	}
}

func isInterrupted(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

func handleExecutionError(err error) error {
	if err == nil || isInterrupted(err) {
		return nil // Exit 0 for interruptions
	}
	return err
}

// startHTTP serves handler on addr until ctx is done. The returned function
// shuts the server down and waits for it.
func startHTTP(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: 5 * time.Second}

	done := make(chan struct{})
	go func() {
		defer close(done)
		logger.Info("http server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "err", err)
		}
	}()

	stop := func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http server shutdown", "err", err)
		}
		<-done
	}
	return stop, nil
}
