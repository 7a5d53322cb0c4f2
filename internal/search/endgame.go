package search

import (
	"github.com/hailam/edaxgo/internal/bitboard"
	"github.com/hailam/edaxgo/internal/board"
	"github.com/hailam/edaxgo/internal/config"
)

// EndgameSolve dispatches to the specialized solvers for the last few
// empties (spec.md §4.J: "null-window endgame solvers specialized for
// 1-4 empty squares") and falls back to the shallow recursive solver
// for everything deeper, up to and including the full 5-12 empty range
// where a plain negamax with hash and stability support (no ETC) is
// still cheap enough to run exhaustively.
func EndgameSolve(s *State, alpha, beta int) int {
	switch s.EmptyCount() {
	case 0:
		return s.Board.FinalScore()
	case 1:
		return solve1(s, alpha, beta)
	case 2:
		return solve2(s, alpha, beta)
	case 3:
		return solve3(s, alpha, beta)
	case 4:
		return solve4(s, alpha, beta)
	default:
		return shallowEndgame(s, alpha, beta)
	}
}

// solve1 handles the single-empty-square leaf directly via
// board.LastFlipCount, per spec.md §4.J's "compute flips =
// last_flip_count(player, s)": at most one side can have a legal move
// into the last square, and whichever side plays it ends on a full
// board, so the final score is plain arithmetic on disc counts with no
// need to materialize the resulting board.
//
// If the mover plays sq, its final disc count is popcount(player)+1
// (the new disc) plus the flipped discs, so its score is
// 2*popcount(player) - 62 + last_flip_count(player, opponent, sq)
// (last_flip_count already carries the factor of 2). If only the
// opponent can play sq, the same identity computed from the
// opponent's side gives the opponent's final score, and the mover's
// score is its negation since the completed board is zero-sum.
func solve1(s *State, alpha, beta int) int {
	empties := s.Board.Empties()
	sq := bitboard.PopLSB(&empties)

	playerCount := bitboard.PopCount(s.Board.Player)

	if flips := board.LastFlipCount(s.Board.Player, s.Board.Opponent, sq); flips != 0 {
		return 2*playerCount - 62 + flips
	}
	if flips := board.LastFlipCount(s.Board.Opponent, s.Board.Player, sq); flips != 0 {
		return 2*playerCount - 64 - flips
	}

	// Neither side can play the last square: already game over.
	return s.Board.FinalScore()
}

// solve2, solve3 and solve4 share one shape: generate the (very short)
// move list directly off the bitboard rather than through board.MoveList
// (no ordering payoff at this depth), recurse with the caller's full
// (alpha,beta) window (not a null window), and fall back to a
// pass/terminal check when the side to move cannot move.
func solve2(s *State, alpha, beta int) int { return solveShallowFixed(s, alpha, beta) }
func solve3(s *State, alpha, beta int) int { return solveShallowFixed(s, alpha, beta) }
func solve4(s *State, alpha, beta int) int { return solveShallowFixed(s, alpha, beta) }

func solveShallowFixed(s *State, alpha, beta int) int {
	moves := s.Board.LegalMoves()
	if moves == 0 {
		if !s.Board.Passed().CanMove() {
			return s.Board.FinalScore()
		}
		s.ApplyPass()
		score := -solveShallowFixed(s, -beta, -alpha)
		s.ApplyPass()
		return score
	}

	best := scoreMin
	for rem := moves; rem != 0; {
		sq := bitboard.PopLSB(&rem)
		before, _ := s.Apply(sq)
		score := -EndgameSolve(s, -beta, -alpha)
		s.Unapply(before)

		if score > best {
			best = score
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}

// shallowEndgame is the recursive solver for 5 empties and up to the
// point PVS's midgame machinery takes over (spec.md §4.J: "shallow
// recursive solver for 5-12 empty squares"): full move ordering, the
// stability cutoff and main-table hash probes and stores, as in the
// midgame search but with no ETC and no ProbCut, so the solve is exact
// and its hash stores are tagged NoSelectivity.
func shallowEndgame(s *State, alpha, beta int) int {
	empties := s.EmptyCount()

	if ub := s.StabilityUpperBound(); alpha >= ub {
		return ub
	}

	if e, ok := s.Tables.Main.ProbeBoard(s.Board, empties); ok {
		if int(e.Lower) >= beta {
			return int(e.Lower)
		}
		if int(e.Upper) <= alpha {
			return int(e.Upper)
		}
	}

	var ml board.MoveList
	ml.Generate(s.Board)
	if ml.Empty() {
		if !s.Board.Passed().CanMove() {
			return s.Board.FinalScore()
		}
		s.ApplyPass()
		score := -shallowEndgame(s, -beta, -alpha)
		s.ApplyPass()
		return score
	}

	hashMove, secondMove := -1, -1
	if e, ok := s.Tables.Main.ProbeBoard(s.Board, empties); ok {
		hashMove = int(e.Move[0])
		secondMove = int(e.Move[1])
	}
	orderMoves(s, &ml, hashMove, secondMove, 0)

	best := scoreMin
	bestMove := -1
	origAlpha, origBeta := alpha, beta
	for {
		m, ok := ml.PopBest()
		if !ok {
			break
		}
		before, _ := s.Apply(m.Square)
		score := -EndgameSolve(s, -beta, -alpha)
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
	}

	best = clamp(best, scoreMin, scoreMax)
	s.Tables.Main.StoreBoard(s.Board, empties, empties, config.NoSelectivity, uint8(empties), origAlpha, origBeta, best, bestMove)
	return best
}
