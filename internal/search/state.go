// Package search implements the midgame PVS/NWS framework, the
// specialized endgame solvers, YBWC parallelism, and the iterative
// root driver described in spec.md §4.H-§4.L.
package search

import (
	"github.com/hailam/edaxgo/internal/bitboard"
	"github.com/hailam/edaxgo/internal/board"
	"github.com/hailam/edaxgo/internal/eval"
	"github.com/hailam/edaxgo/internal/hashtable"
)

// Tables bundles the three cooperating transposition tables a State
// shares with every node of a search tree.
type Tables struct {
	Main    *hashtable.Table
	PV      *hashtable.Table
	Shallow *hashtable.Table
}

// State is the per-task search state spec.md §3 calls SearchState: the
// current board, the incremental evaluator, and shared references to
// the hash tables. A State is cheap to fork (Fork)
// because Board is a value type and the evaluator's accumulator stack
// is pushed/popped rather than copied.
type State struct {
	Board       board.Board
	BlackToMove bool
	Eval        *eval.State
	Weights     *eval.Weights
	Tables      *Tables
	Nodes       uint64
	Stop        *Stop
	Scheduler   *Scheduler
}

// NewState builds a root search state from a position, weight set and
// shared tables.
func NewState(b board.Board, blackToMove bool, weights *eval.Weights, tables *Tables) *State {
	s := &State{Board: b, BlackToMove: blackToMove, Weights: weights, Tables: tables, Stop: NewStop()}
	s.Eval = eval.NewState(weights)
	s.resetEval()
	return s
}

func (s *State) resetEval() {
	black, white := s.Board.Player, s.Board.Opponent
	if !s.BlackToMove {
		black, white = white, black
	}
	s.Eval.SetPosition(black, white)
}

// Fork returns an independent State at the same position and ply,
// sharing the hash tables and stop flag but with its own evaluator
// accumulator and node counter — the unit YBWC hands to a helper
// goroutine so sibling subtrees don't race on one accumulator stack.
func (s *State) Fork() *State {
	f := &State{Board: s.Board, BlackToMove: s.BlackToMove, Weights: s.Weights, Tables: s.Tables, Stop: s.Stop, Scheduler: s.Scheduler}
	f.Eval = eval.NewState(s.Weights)
	f.resetEval()
	return f
}

// Apply plays square, updating both the board and the incremental
// evaluator, and returns the flipped mask so the caller's later Undo
// (via Unapply) stays O(1).
func (s *State) Apply(square int) (before board.Board, flips uint64) {
	before = s.Board
	flips = board.GenerateFlips(s.Board.Player, s.Board.Opponent, square)
	s.Eval.Push(s.BlackToMove, square, flips)
	s.Board = s.Board.Apply(square)
	s.BlackToMove = !s.BlackToMove
	return before, flips
}

// Unapply restores the state produced by the matching Apply.
func (s *State) Unapply(before board.Board) {
	s.Board = before
	s.BlackToMove = !s.BlackToMove
	s.Eval.Pop()
}

// ApplyPass swaps sides without playing a move or touching the
// evaluator (no disc changes color), per spec.md §4.I's pass handling.
func (s *State) ApplyPass() {
	s.Board = s.Board.Passed()
	s.BlackToMove = !s.BlackToMove
}

// EmptyCount is how many squares remain empty.
func (s *State) EmptyCount() int { return s.Board.EmptyCount() }

// StabilityUpperBound is the maximum score the side to move can
// possibly achieve given the opponent's stable discs: those discs can
// never be captured, so the mover's final tally is bounded above by
// 64 minus twice their count. Used for the stability cutoff in
// spec.md §4.I step 1.
func (s *State) StabilityUpperBound() int {
	stableOpponent := board.StableDiscs(s.Board.Opponent, s.Board.Player)
	return 64 - 2*bitboard.PopCount(stableOpponent)
}
