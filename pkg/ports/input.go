package ports

import (
	"context"

	"github.com/aretw0/puffin/pkg/domain"
)

// InputSample is what the input source observed for one tick.
type InputSample struct {
	// Pressed lists controls held during this tick.
	Pressed []domain.Control

	// Devices lists gamepad connectivity changes since the previous sample.
	Devices []domain.DeviceChange
}

// InputSource samples physical input once per tick.
// Poll must not block waiting for input.
type InputSource interface {
	Poll(ctx context.Context) (InputSample, error)
}

// Input answers control queries for the current tick. Scenes read it during Update.
type Input interface {
	IsDown(c domain.Control) bool
	IsTriggered(c domain.Control) bool
}
