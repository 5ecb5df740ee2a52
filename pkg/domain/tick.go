package domain

import "time"

// Tick is one fixed time-step of the run loop.
type Tick struct {
	// Index starts at 1 for the first tick.
	Index uint64 `json:"index"`

	// Elapsed is the time since the previous tick.
	Elapsed time.Duration `json:"elapsed"`

	// Total is the monotonic time since the run loop started.
	Total time.Duration `json:"total"`
}
