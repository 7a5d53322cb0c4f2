package eval

import "github.com/hailam/edaxgo/internal/bitboard"

// Accumulator tracks the current base-3 configuration index of every
// pattern incrementally, with a stack of prior snapshots so a search
// node can undo a move (restore) without recomputing every pattern
// from scratch, per spec.md §4.F's "incremental update... restore undoes
// the update."
//
// Indices are kept in absolute disc color (black/white), not
// player/opponent: since board.Board only tracks side-to-move, a
// pattern index built from player/opponent would have to be rebuilt on
// every ply as the labels swap. Absolute color lets a move's delta
// touch only the squares that actually changed.
type Accumulator struct {
	black, white uint64
	index        []int32
	stack        []frame
	patches      []patch
}

// frame records enough to undo one Push: the absolute bitboards before
// the move, and the range of patches (in the shared patches buffer)
// that move applied.
type frame struct {
	black, white uint64
	patchStart   int
}

// patch is one pattern-index adjustment applied by a Push, kept around
// so the matching Pop can subtract it back out instead of restoring a
// saved copy of the whole index vector. patches is a single growable
// buffer shared across every frame on the stack (the same bump-arena
// shape as board.MoveList's backing array): Push only ever appends to
// its tail and Pop only ever truncates it, so once a search has warmed
// up to its deepest line, neither call allocates again.
type patch struct {
	pattern int32
	delta   int32
}

// NewAccumulator returns an accumulator with a zero position; call
// SetPosition before using it.
func NewAccumulator() *Accumulator {
	return &Accumulator{index: make([]int32, len(Patterns))}
}

// SetPosition recomputes every pattern index from scratch. Call this
// once per search root, not on interior nodes — Push/Pop handle those.
func (a *Accumulator) SetPosition(black, white uint64) {
	a.black, a.white = black, white
	for i, p := range Patterns {
		a.index[i] = p.computeIndex(black, white)
	}
}

// Push applies a move incrementally. moverIsBlack identifies which
// absolute color just played; square is where it played; flips is the
// set of discs that flipped, in board.GenerateFlips's convention (a
// subset of the pre-move opponent mask). The prior absolute bitboards
// and the index patches this move applies are saved so a matching Pop
// restores the previous state exactly.
func (a *Accumulator) Push(moverIsBlack bool, square int, flips uint64) {
	a.stack = append(a.stack, frame{
		black:      a.black,
		white:      a.white,
		patchStart: len(a.patches),
	})

	changed := flips | (uint64(1) << uint(square))
	prevBlack, prevWhite := a.black, a.white
	if moverIsBlack {
		a.black |= changed
		a.white &^= changed
	} else {
		a.white |= changed
		a.black &^= changed
	}

	rem := changed
	for rem != 0 {
		sq := bitboard.PopLSB(&rem)
		old := trit(prevBlack, prevWhite, sq)
		neu := trit(a.black, a.white, sq)
		if old == neu {
			continue
		}
		d := neu - old
		for _, ref := range squarePatterns[sq] {
			delta := d * ref.weight
			a.index[ref.pattern] += delta
			a.patches = append(a.patches, patch{pattern: int32(ref.pattern), delta: delta})
		}
	}
}

// Pop undoes the most recent Push by replaying its patches in reverse,
// rather than restoring a saved copy of the index vector.
func (a *Accumulator) Pop() {
	n := len(a.stack)
	f := a.stack[n-1]
	a.stack = a.stack[:n-1]

	for i := len(a.patches) - 1; i >= f.patchStart; i-- {
		p := a.patches[i]
		a.index[p.pattern] -= p.delta
	}
	a.patches = a.patches[:f.patchStart]

	a.black, a.white = f.black, f.white
}

// Depth reports how many unpopped Push calls are pending, mainly useful
// for tests asserting a search path balances its pushes and pops.
func (a *Accumulator) Depth() int { return len(a.stack) }
