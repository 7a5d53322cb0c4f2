package board

import "github.com/hailam/edaxgo/internal/bitboard"

// directions enumerates the eight lines a disc can flip along, as a
// square-delta plus a boundary test that must hold at the *current* square
// before stepping by delta (otherwise the step would wrap around an edge).
type direction struct {
	delta int
	valid func(sq int) bool
}

func file(sq int) int { return sq & 7 }
func rank(sq int) int { return sq >> 3 }

var directions = [8]direction{
	{+1, func(sq int) bool { return file(sq) != 7 }},               // east
	{-1, func(sq int) bool { return file(sq) != 0 }},                // west
	{+8, func(sq int) bool { return rank(sq) != 7 }},                // north
	{-8, func(sq int) bool { return rank(sq) != 0 }},                // south
	{+9, func(sq int) bool { return file(sq) != 7 && rank(sq) != 7 }}, // north-east
	{-9, func(sq int) bool { return file(sq) != 0 && rank(sq) != 0 }}, // south-west
	{+7, func(sq int) bool { return file(sq) != 0 && rank(sq) != 7 }}, // north-west
	{-7, func(sq int) bool { return file(sq) != 7 && rank(sq) != 0 }}, // south-east
}

// GenerateFlips returns the mask of opponent discs that turn when player
// plays at square. It returns 0 if square is occupied or the move is
// illegal (no bracketed opponent run in any direction).
//
// This is the portable scalar implementation called for in the design
// notes: a run of opponent bits immediately following the played square,
// terminated by a player bit, yields a flip; terminated by an empty square
// or the edge of the board, it yields nothing.
func GenerateFlips(player, opponent uint64, square int) uint64 {
	occupied := player | opponent
	if occupied&(uint64(1)<<uint(square)) != 0 {
		return 0
	}

	var flips uint64
	for _, d := range directions {
		var run uint64
		sq := square
		for d.valid(sq) {
			sq += d.delta
			bit := uint64(1) << uint(sq)
			if opponent&bit != 0 {
				run |= bit
				continue
			}
			if player&bit != 0 {
				flips |= run
			}
			break
		}
	}
	return flips
}

// LegalMoves returns a bitmask with one bit set per empty square at which
// player has at least one legal move against opponent.
func LegalMoves(player, opponent uint64) uint64 {
	var moves uint64
	empties := ^(player | opponent)
	rem := empties
	for rem != 0 {
		sq := bitboard.PopLSB(&rem)
		if GenerateFlips(player, opponent, sq) != 0 {
			moves |= uint64(1) << uint(sq)
		}
	}
	return moves
}

// HasLegalMove reports whether player has at least one legal move, without
// building the full mobility mask.
func HasLegalMove(player, opponent uint64) bool {
	empties := ^(player | opponent)
	for empties != 0 {
		sq := bitboard.PopLSB(&empties)
		if GenerateFlips(player, opponent, sq) != 0 {
			return true
		}
	}
	return false
}
