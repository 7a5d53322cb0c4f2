package config

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by Validate when a field falls outside the
// range the search and hashtable packages can safely operate with.
var ErrOutOfRange = errors.New("config: value out of range")

// HashConfig is the tunable set spec.md §6 exposes externally: the
// log2 bucket counts of the three transposition tables, and the worker
// count YBWC's semaphore is capped at.
type HashConfig struct {
	Log2SizeMain    int
	Log2SizePV      int
	Log2SizeShallow int
	NWorkers        int
}

// DefaultHashConfig mirrors a single-threaded, modestly sized engine
// instance suitable for running without any explicit configuration.
func DefaultHashConfig() HashConfig {
	return HashConfig{
		Log2SizeMain:    22,
		Log2SizePV:      18,
		Log2SizeShallow: 18,
		NWorkers:        1,
	}
}

// Validate enforces the bounds the rest of the engine assumes: bucket
// counts non-degenerate but bounded (hashtable.New itself clamps to
// [1,28], this catches the mistake earlier with a named error) and at
// least one worker.
func (c HashConfig) Validate() error {
	for _, f := range []struct {
		name string
		v    int
	}{
		{"Log2SizeMain", c.Log2SizeMain},
		{"Log2SizePV", c.Log2SizePV},
		{"Log2SizeShallow", c.Log2SizeShallow},
	} {
		if f.v < 1 || f.v > 28 {
			return fmt.Errorf("%s=%d: %w", f.name, f.v, ErrOutOfRange)
		}
	}
	if c.NWorkers < 1 {
		return fmt.Errorf("NWorkers=%d: %w", c.NWorkers, ErrOutOfRange)
	}
	return nil
}
