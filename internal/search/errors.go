package search

import (
	"errors"

	"github.com/hailam/edaxgo/internal/board"
	"github.com/hailam/edaxgo/internal/config"
	"github.com/hailam/edaxgo/internal/eval"
)

// The four sentinel errors spec.md §7 names. ErrBadBoard and
// ErrBadWeights are defined where the condition is actually detected
// (internal/board, internal/eval) and re-exported here so callers only
// need to import internal/search to check for any of the four, the
// same single-entry-point convention the teacher's engine package uses
// for its own error values.
var (
	ErrBadBoard         = board.ErrBadBoard
	ErrBadWeights       = eval.ErrBadWeights
	ErrConfigOutOfRange = config.ErrOutOfRange
	ErrIllegalMove      = errors.New("search: illegal move")
)
