package rangetree

import "github.com/rs/zerolog"

type Options struct {
	// InitialCapacity is the number of node records allocated up front.
	InitialCapacity int `json:"initial_capacity"`

	// CheckInvariants verifies the whole tree after every mutation and panics on the
	// first violation. It turns O(log n) mutations into O(n) ones; use it in tests and
	// debugging only.
	CheckInvariants bool `json:"check_invariants"`

	// Logger receives trace-level rebalancing events. Defaults to a no-op logger.
	Logger *zerolog.Logger `json:"-"`

	// Metrics, if set, is updated on every mutation.
	Metrics *Metrics `json:"-"`
}

// GetInitialCapacity returns the arena pre-allocation with default
func (o Options) GetInitialCapacity() int {
	if o.InitialCapacity <= 0 {
		return 64
	}
	return o.InitialCapacity
}

// GetLogger returns the configured logger or a disabled one
func (o Options) GetLogger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}
