package search

import (
	"github.com/hailam/edaxgo/internal/board"
	"github.com/hailam/edaxgo/internal/config"
	"github.com/hailam/edaxgo/internal/eval"
)

// Ponder runs one exact root search in the background against the position the engine
// expects the opponent to reach, supplementing spec.md's external
// interface the way Edax's own "ponder" mode does: search continues
// speculatively on idle time and its hash-table writes are simply
// reused if the guess turns out right, with no special-cased plumbing
// beyond a dedicated Stop so a real move request can cancel it
// independently of any other search in flight.
type Ponder struct {
	stop *Stop
	done chan Result
}

// StartPonder launches a background, unbounded-depth search on
// guessed, returning a handle whose Result channel receives the final
// (or aborted) search once Stop is called.
func StartPonder(guessed board.Board, blackToMove bool, weights *eval.Weights, tables *Tables, sched *Scheduler) *Ponder {
	p := &Ponder{stop: NewStop(), done: make(chan Result, 1)}
	go func() {
		s := NewState(guessed, blackToMove, weights, tables)
		s.Scheduler = sched
		s.Stop = p.stop

		depth := guessed.EmptyCount()
		score, move := searchRootOnce(s, scoreMin, scoreMax, depth, config.NoSelectivity)
		p.done <- Result{Score: score, Move: move, Depth: depth, Nodes: s.Nodes}
	}()
	return p
}

// Stop requests the pondering search abort as soon as possible. The
// result (complete or partial) is still delivered on Done.
func (p *Ponder) Stop() { p.stop.Set() }

// Done receives the pondering search's result exactly once.
func (p *Ponder) Done() <-chan Result { return p.done }
