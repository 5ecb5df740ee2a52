package runner

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// SignalManager turns SIGINT and SIGTERM into context cancellation for the run loop.
// The cancellation cause names the signal; ctx.Err() stays context.Canceled.
type SignalManager struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	ch     chan os.Signal
	done   chan struct{}

	mu  sync.Mutex
	got os.Signal

	stopOnce sync.Once
}

// NewSignalManager creates a new manager and immediately starts listening for signals.
func NewSignalManager(parent context.Context) *SignalManager {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancelCause(parent)
	sm := &SignalManager{
		ctx:    ctx,
		cancel: cancel,
		ch:     make(chan os.Signal, 1),
		done:   make(chan struct{}),
	}
	signal.Notify(sm.ch, os.Interrupt, syscall.SIGTERM)
	go sm.listen()
	return sm
}

func (sm *SignalManager) listen() {
	defer close(sm.done)
	select {
	case <-sm.ctx.Done():
	case sig := <-sm.ch:
		sm.mu.Lock()
		sm.got = sig
		sm.mu.Unlock()
		sm.cancel(fmt.Errorf("received %v: %w", sig, context.Canceled))
	}
}

// Context returns the signal context.
func (sm *SignalManager) Context() context.Context {
	return sm.ctx
}

// Signal returns the signal that cancelled the context, or nil.
func (sm *SignalManager) Signal() os.Signal {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.got
}

// Stop stops listening and cancels the context. It waits for the listener to exit.
func (sm *SignalManager) Stop() {
	sm.stopOnce.Do(func() {
		signal.Stop(sm.ch)
		sm.cancel(context.Canceled)
		<-sm.done
	})
}
