package search

import "sync/atomic"

// Stop is a shared cancellation flag: the root driver's time manager
// sets it when a deadline expires, and every search node (including
// YBWC helper goroutines racing on sibling split points) checks it
// before doing further work. A plain atomic flag rather than a
// context.Context: search nodes check it millions of times per second
// on the hot path, and context's Done() channel read is measurably
// slower than an atomic load at that rate.
type Stop struct {
	flag atomic.Bool
}

// NewStop returns a fresh, unset Stop.
func NewStop() *Stop { return &Stop{} }

// Set requests that every search sharing this Stop abort as soon as
// possible.
func (s *Stop) Set() { s.flag.Store(true) }

// Requested reports whether Set has been called.
func (s *Stop) Requested() bool { return s.flag.Load() }
