package search

import (
	"github.com/hailam/edaxgo/internal/board"
	"github.com/hailam/edaxgo/internal/config"
	"github.com/hailam/edaxgo/internal/hashtable"
)

const (
	scoreMin = hashtable.ScoreMin
	scoreMax = hashtable.ScoreMax
)

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// PVS is the principal-variation search from spec.md §4.I: it returns a
// score in the usual fail-soft convention (it may lie outside
// [alpha,beta]) — <=alpha is an upper bound, >=beta is a lower bound,
// otherwise exact within selectivity tolerance.
func PVS(s *State, alpha, beta, depth, selectivity int) int {
	return search(s, alpha, beta, depth, selectivity, true)
}

// NWS is the null-window variant PVS(state, alpha, alpha+1, depth) with
// relaxed (non-PV) move ordering, used for every move but the first at
// an interior node and by ProbCut. The endgame solvers (endgame.go) do
// not call it.
func NWS(s *State, alpha, depth, selectivity int) int {
	return search(s, alpha, alpha+1, depth, selectivity, false)
}

func search(s *State, alpha, beta, depth, selectivity int, isPV bool) int {
	if s.Stop.Requested() {
		return alpha
	}
	s.Nodes++

	empties := s.EmptyCount()
	if depth <= 0 || empties == 0 {
		return int(s.Eval.Evaluate(empties, s.BlackToMove))
	}
	// Hand off to the endgame solvers once the remaining depth covers
	// the rest of the game: the specialized 1-4-empty solvers, and the
	// full-width recursive solver for 5-12 empties, per spec.md §4.J.
	// A search that still has fewer plies of depth than empties (e.g.
	// a shallow ProbCut helper search) stays in the midgame machinery
	// instead, since it isn't trying to solve the position exactly.
	if empties <= 12 && depth >= empties {
		return EndgameSolve(s, alpha, beta)
	}

	// 1. Stability cutoff.
	if ub := s.StabilityUpperBound(); alpha >= ub {
		return ub
	}

	// 2. Transposition probe.
	if e, ok := s.Tables.Main.ProbeBoard(s.Board, empties); ok {
		if int(e.Depth) >= depth && int(e.Selectivity) >= selectivity {
			if int(e.Lower) >= beta {
				return int(e.Lower)
			}
			if int(e.Upper) <= alpha {
				return int(e.Upper)
			}
			alpha = clamp(alpha, int(e.Lower), alpha)
			beta = clamp(beta, beta, int(e.Upper))
		}
	}

	// 3. ProbCut: a shallow search estimates the deep score; if it lies
	// confidently outside the window, trust it and cut.
	if selectivity < config.NoSelectivity && depth >= 6 {
		if cut, ok := probcut(s, alpha, beta, depth, selectivity); ok {
			return cut
		}
	}

	var ml board.MoveList
	ml.Generate(s.Board)

	if ml.Empty() {
		if !s.Board.CanMove() && !s.Board.Passed().CanMove() {
			return int(s.Eval.Evaluate(empties, s.BlackToMove)) // terminal, handled by caller normally
		}
		s.ApplyPass()
		score := -search(s, -beta, -alpha, depth, selectivity, isPV)
		s.ApplyPass()
		return score
	}

	// 4. Enhanced transposition cutoff: probe every child before
	// searching any of them.
	if cut, ok := etc(s, &ml, alpha, beta, depth, selectivity); ok {
		return cut
	}

	hashMove, secondMove := hashtable.NoMove, hashtable.NoMove
	if e, ok := s.Tables.Main.ProbeBoard(s.Board, empties); ok {
		hashMove = int(e.Move[0])
		secondMove = int(e.Move[1])
	}
	orderMoves(s, &ml, hashMove, secondMove, depth)

	origAlpha, origBeta := alpha, beta

	var best, bestMove int
	if isPV && s.Scheduler != nil && depth >= parallelMinDepth {
		best, bestMove = searchYoungBrothers(s, &ml, alpha, beta, depth, selectivity, s.Scheduler)
	} else {
		first := true
		best = scoreMin
		bestMove = hashtable.NoMove
		for {
			m, ok := ml.PopBest()
			if !ok {
				break
			}
			before, _ := s.Apply(m.Square)

			var score int
			if first {
				score = -search(s, -beta, -alpha, depth-1, selectivity, true)
			} else {
				score = -NWS(s, -alpha-1, depth-1, selectivity)
				if score > alpha && score < beta {
					score = -search(s, -beta, -alpha, depth-1, selectivity, true)
				}
			}

			s.Unapply(before)

			if score > best {
				best = score
				bestMove = m.Square
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
			first = false
			if s.Stop.Requested() {
				break
			}
		}
	}

	best = clamp(best, scoreMin, scoreMax)

	cost := uint8(clamp(depth, 0, 255))
	s.Tables.Main.StoreBoard(s.Board, empties, depth, selectivity, cost, origAlpha, origBeta, best, bestMove)
	if best > origAlpha && best < origBeta {
		s.Tables.PV.StoreBoard(s.Board, empties, depth, selectivity, cost, origAlpha, origBeta, best, bestMove)
	}

	return best
}

// probcut runs a reduced-depth search and, if the result lands far
// enough outside [alpha,beta] given the selectivity level's sigma
// coefficient, returns a trustworthy bound instead of searching to full
// depth. Returns ok=false when the shallow result is inconclusive.
func probcut(s *State, alpha, beta, depth, selectivity int) (int, bool) {
	reduced := depth - 2
	if reduced < 1 {
		return 0, false
	}
	margin := int(10 + 4*config.Selectivity(selectivity).Sigma)

	hi := NWS(s, beta+margin, reduced, selectivity)
	if hi >= beta+margin {
		return beta, true
	}
	lo := NWS(s, alpha-margin, reduced, selectivity)
	if lo < alpha-margin+1 {
		return alpha, true
	}
	return 0, false
}

// etc probes the main table for every legal child; if any child's
// stored upper bound, negated, already proves that move's value is >= beta from
// the mover's perspective, the parent fails high immediately without
// searching any child, per spec.md §4.I step 4. A single move's value
// only ever bounds the node from below (the node is the max over
// moves), so only a fail-high here is sound — a fail-low (one move
// <= alpha) says nothing about the other, unsearched moves.
func etc(s *State, ml *board.MoveList, alpha, beta, depth, selectivity int) (int, bool) {
	cut := false
	ml.ForEach(func(m *board.Move) {
		if cut {
			return
		}
		after := s.Board.Apply(m.Square)
		e, ok := s.Tables.Main.ProbeBoard(after, after.EmptyCount())
		if !ok {
			return
		}
		childLower := -int(e.Upper)
		if childLower >= beta {
			cut = true
		}
	})
	if cut {
		return beta, true
	}
	return 0, false
}
