package search

import (
	"github.com/hailam/edaxgo/internal/bitboard"
	"github.com/hailam/edaxgo/internal/board"
)

// squareWeight gives each square a rough positional value: corners are
// prized, the X-squares (diagonally adjacent to a corner) are penalized
// whether or not that corner is empty, everything else is neutral. It
// is one term of the move-ordering score, never added to the static
// evaluation.
var squareWeight [64]int32

func init() {
	for sq := 0; sq < 64; sq++ {
		squareWeight[sq] = 0
	}
	for _, c := range []int{board.A1, board.A8, board.H1, board.H8} {
		squareWeight[c] = 40
	}
	for _, x := range []int{board.B2, board.G2, board.B7, board.G7} {
		squareWeight[x] = -20
	}
}

// orderMoves scores every move in ml so MoveList.PopBest pulls the most
// promising candidate first, per spec.md §4.H: a hash-hinted move gets a
// dominant bonus, then corner/X-square weight, negated post-move
// mobility, potential mobility (opponent-adjacent empties the move
// exposes), and quadrant parity. hashMove is -1 when there is no hint.
// secondMove is the entry's second-best move hint (Entry.Move[1]) — the
// move that held the hash-move slot before hashMove displaced it — and
// gets a smaller bonus than hashMove but still ahead of the positional
// terms, since it was itself a former best move at this position.
func orderMoves(s *State, ml *board.MoveList, hashMove, secondMove int, remainingDepth int) {
	ml.ForEach(func(m *board.Move) {
		var score int32

		switch m.Square {
		case hashMove:
			score += 1_000_000
		case secondMove:
			score += 500_000
		}

		score += squareWeight[m.Square]

		after := s.Board.Apply(m.Square)
		mobility := bitboard.PopCount(after.LegalMoves())
		score -= int32(mobility) * 15

		score += int32(potentialMobility(after)) * -2

		if quadrantParity(s.Board, m.Square) {
			score += 5
		}

		if remainingDepth >= 8 {
			score += shallowHint(s, m.Square)
		}

		m.Score = score
	})
}

// potentialMobility counts empty squares adjacent to an opponent disc:
// squares the opponent could plausibly expand mobility into next, a
// cheap proxy for future mobility spec.md §4.H calls "potential
// mobility (edge-frontier discs the move exposes)".
func potentialMobility(b board.Board) int {
	empties := b.Empties()
	frontier := uint64(0)
	shifts := []func(uint64) uint64{
		func(x uint64) uint64 { return (x << 1) &^ bitboard.FileA },
		func(x uint64) uint64 { return (x >> 1) &^ bitboard.FileH },
		func(x uint64) uint64 { return x << 8 },
		func(x uint64) uint64 { return x >> 8 },
		func(x uint64) uint64 { return (x << 9) &^ bitboard.FileA },
		func(x uint64) uint64 { return (x << 7) &^ bitboard.FileH },
		func(x uint64) uint64 { return (x >> 7) &^ bitboard.FileA },
		func(x uint64) uint64 { return (x >> 9) &^ bitboard.FileH },
	}
	for _, shift := range shifts {
		frontier |= shift(b.Opponent) & empties
	}
	return bitboard.PopCount(frontier)
}

// quadrantParity reports whether square lies in a quadrant with an odd
// number of empties remaining before the move is played: parity affects
// who gets the last move in a region, so odd-parity quadrants are
// mildly preferred in move ordering.
func quadrantParity(b board.Board, square int) bool {
	file, rank := square%8, square/8
	qFile, qRank := file/4, rank/4
	var mask uint64
	for f := qFile * 4; f < qFile*4+4; f++ {
		for r := qRank * 4; r < qRank*4+4; r++ {
			mask |= uint64(1) << uint(r*8+f)
		}
	}
	return bitboard.PopCount(b.Empties()&mask)%2 == 1
}

// shallowHint consults the shallow table (populated by earlier,
// lower-depth searches) for a rough move-ordering signal when the
// remaining depth is large enough that a wrong first guess is costly.
func shallowHint(s *State, square int) int32 {
	if s.Tables == nil || s.Tables.Shallow == nil {
		return 0
	}
	after := s.Board.Apply(square)
	e, ok := s.Tables.Shallow.ProbeBoard(after, after.EmptyCount())
	if !ok {
		return 0
	}
	// A low score for the opponent after our move is good for us.
	return -int32(e.Lower) - int32(e.Upper)
}
