// Package input tracks which controls are held and which were newly
// pressed, from one sample per tick.
package input

import (
	"github.com/aretw0/puffin/pkg/domain"
)

// State keeps the previous and current control samples.
// It is written once per tick by the orchestrator and read by scenes.
type State struct {
	prev map[domain.Control]bool
	curr map[domain.Control]bool
}

// NewState creates an empty input state.
func NewState() *State {
	return &State{
		prev: make(map[domain.Control]bool),
		curr: make(map[domain.Control]bool),
	}
}

// Sample rotates the current sample into the previous one and records pressed.
func (s *State) Sample(pressed []domain.Control) {
	s.prev, s.curr = s.curr, s.prev
	clear(s.curr)
	for _, c := range pressed {
		s.curr[c] = true
	}
}

// IsDown reports whether the control is held this tick.
func (s *State) IsDown(c domain.Control) bool {
	return s.curr[c]
}

// IsTriggered reports whether the control went down this tick.
func (s *State) IsTriggered(c domain.Control) bool {
	return s.curr[c] && !s.prev[c]
}
