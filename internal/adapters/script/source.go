// Package script provides a deterministic InputSource that replays control
// presses and gamepad changes at fixed tick indices. It drives headless
// simulations and end-to-end tests.
package script

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/puffin/pkg/domain"
	"github.com/aretw0/puffin/pkg/ports"
)

// Press holds a control down for exactly one tick.
type Press struct {
	Tick    uint64
	Control domain.Control
}

// Device reports a gamepad change on the given tick.
type Device struct {
	Tick   uint64
	Change domain.DeviceChange
}

// Source replays a script. The first Poll is tick 1.
type Source struct {
	mu      sync.Mutex
	polls   uint64
	presses map[uint64][]domain.Control
	devices map[uint64][]domain.DeviceChange
}

// New builds a source from presses and device changes.
func New(presses []Press, devices []Device) *Source {
	s := &Source{
		presses: make(map[uint64][]domain.Control),
		devices: make(map[uint64][]domain.DeviceChange),
	}
	for _, p := range presses {
		s.presses[p.Tick] = append(s.presses[p.Tick], p.Control)
	}
	for _, d := range devices {
		s.devices[d.Tick] = append(s.devices[d.Tick], d.Change)
	}
	return s
}

// Parse builds a source from the textual forms accepted by ParsePress and ParseDevice.
func Parse(presses, devices []string) (*Source, error) {
	ps := make([]Press, 0, len(presses))
	for _, raw := range presses {
		p, err := ParsePress(raw)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	ds := make([]Device, 0, len(devices))
	for _, raw := range devices {
		d, err := ParseDevice(raw)
		if err != nil {
			return nil, err
		}
		ds = append(ds, d)
	}
	return New(ps, ds), nil
}

// Poll implements ports.InputSource.
func (s *Source) Poll(ctx context.Context) (ports.InputSample, error) {
	if err := ctx.Err(); err != nil {
		return ports.InputSample{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.polls++
	return ports.InputSample{
		Pressed: s.presses[s.polls],
		Devices: s.devices[s.polls],
	}, nil
}

// Polls returns how many samples were taken.
func (s *Source) Polls() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.polls
}

// ParsePress parses "tick:control", e.g. "12:confirm".
func ParsePress(raw string) (Press, error) {
	tickPart, name, ok := strings.Cut(strings.TrimSpace(raw), ":")
	if !ok {
		return Press{}, fmt.Errorf("press %q: want tick:control", raw)
	}
	tick, err := parseTick(tickPart)
	if err != nil {
		return Press{}, fmt.Errorf("press %q: %w", raw, err)
	}
	c, err := domain.ParseControl(name)
	if err != nil {
		return Press{}, fmt.Errorf("press %q: %w", raw, err)
	}
	return Press{Tick: tick, Control: c}, nil
}

// ParseDevice parses "tick:connect:index" or "tick:disconnect:index".
func ParseDevice(raw string) (Device, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return Device{}, fmt.Errorf("device %q: want tick:connect|disconnect:index", raw)
	}
	tick, err := parseTick(parts[0])
	if err != nil {
		return Device{}, fmt.Errorf("device %q: %w", raw, err)
	}

	var connected bool
	switch parts[1] {
	case "connect":
		connected = true
	case "disconnect":
	default:
		return Device{}, fmt.Errorf("device %q: unknown action %q", raw, parts[1])
	}

	index, err := strconv.Atoi(parts[2])
	if err != nil || index < 0 {
		return Device{}, fmt.Errorf("device %q: invalid gamepad index %q", raw, parts[2])
	}
	return Device{Tick: tick, Change: domain.DeviceChange{Index: index, Connected: connected}}, nil
}

func parseTick(s string) (uint64, error) {
	tick, err := strconv.ParseUint(s, 10, 64)
	if err != nil || tick == 0 {
		return 0, fmt.Errorf("invalid tick %q", s)
	}
	return tick, nil
}
