package viewer

import "time"

// DefaultInterval is the autoplay period between two steps.
const DefaultInterval = 2 * time.Second

// Timer is a cancellable handle for the autoplay tick. Only a tick carrying
// the current generation may act; issuing a new handle invalidates every
// tick scheduled under an older one.
type Timer struct {
	gen uint64
}

// Gen returns the generation ticks must carry to be honoured.
func (t Timer) Gen() uint64 {
	return t.gen
}

// Reissue cancels any pending tick by moving to a new generation.
func (t Timer) Reissue() Timer {
	return Timer{gen: t.gen + 1}
}

// Valid reports whether a tick issued for gen is still current.
func (t Timer) Valid(gen uint64) bool {
	return gen == t.gen
}

// Effect is a side effect requested by Reduce. The zero value requests
// nothing.
type Effect struct {
	// Schedule asks the host to deliver Tick{Gen} after the given delay.
	Schedule bool
	Gen      uint64
	After    time.Duration
}
