package board

import "github.com/hailam/edaxgo/internal/bitboard"

// axisDirs pairs the eight walking directions into the four geometric axes
// (row, column, and the two diagonals) a disc can be flipped along.
var axisDirs = [4][2]direction{
	{directions[0], directions[1]}, // row (east/west)
	{directions[2], directions[3]}, // column (north/south)
	{directions[4], directions[5]}, // diagonal A1-H8
	{directions[6], directions[7]}, // diagonal A8-H1
}

// lineMaskOfSquare[axis][sq] is the full board line through sq along axis,
// sq included.
var lineMaskOfSquare [4][64]uint64

func init() {
	for axis := 0; axis < 4; axis++ {
		d1, d2 := axisDirs[axis][0], axisDirs[axis][1]
		for sq := 0; sq < 64; sq++ {
			mask := uint64(1) << uint(sq)
			for s, d := sq, d1; d.valid(s); {
				s += d.delta
				mask |= uint64(1) << uint(s)
			}
			for s, d := sq, d2; d.valid(s); {
				s += d.delta
				mask |= uint64(1) << uint(s)
			}
			lineMaskOfSquare[axis][sq] = mask
		}
	}
}

// FullLines returns, per axis (row, column, diagonal A1H8, diagonal A8H1),
// a bitmask of the squares lying on a line that is entirely occupied.
// Used both by stability analysis and by search's solid-disc hash-key
// canonicalization.
func FullLines(occupied uint64) [4]uint64 {
	var out [4]uint64
	for axis := 0; axis < 4; axis++ {
		var mask, done uint64
		for sq := 0; sq < 64; sq++ {
			bit := uint64(1) << uint(sq)
			if done&bit != 0 {
				continue
			}
			line := lineMaskOfSquare[axis][sq]
			done |= line
			if occupied&line == line {
				mask |= line
			}
		}
		out[axis] = mask
	}
	return out
}

// anchored reports whether, walking from sq along d until the edge, every
// square encountered belongs to stable (a closed wing); an immediate edge
// (no squares in that direction) is vacuously anchored.
func anchored(sq int, d direction, stable uint64) bool {
	s := sq
	for d.valid(s) {
		s += d.delta
		if stable&(uint64(1)<<uint(s)) == 0 {
			return false
		}
	}
	return true
}

// StableDiscs returns the subset of player that provably cannot be flipped
// for the remainder of the game: discs whose four lines are each either
// fully occupied or closed off by a contiguous run of already-stable
// same-color discs reaching the edge (iterative closure), per the design
// notes.
func StableDiscs(player, opponent uint64) uint64 {
	occupied := player | opponent
	full := FullLines(occupied)

	const corners = uint64(1)<<A1 | uint64(1)<<H1 | uint64(1)<<A8 | uint64(1)<<H8
	stable := corners & player

	for {
		rem := player &^ stable
		progressed := false
		for rem != 0 {
			sq := bitboard.PopLSB(&rem)
			bit := uint64(1) << uint(sq)
			ok := true
			for axis := 0; axis < 4 && ok; axis++ {
				if full[axis]&bit != 0 {
					continue
				}
				d1, d2 := axisDirs[axis][0], axisDirs[axis][1]
				if anchored(sq, d1, stable) || anchored(sq, d2, stable) {
					continue
				}
				ok = false
			}
			if ok {
				stable |= bit
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	return stable
}
