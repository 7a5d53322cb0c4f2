package board

import "github.com/hailam/edaxgo/internal/bitboard"

// LastFlipCount returns 2*n where n is the number of opponent discs that
// flip when player plays at square, on a board with exactly one empty
// square remaining (square itself).
//
// The doubling convention lets solve-1 compute
// score = 2*popcount(player) - 64 + 2 + flips
// as a plain integer, matching spec.md's "factor-of-2" scoring identity.
//
// Each of the four lines through square (row, column, and the two
// diagonals) contributes flips from at most two directions — the pair of
// opposite directions lying on that line. Walking all eight directions
// therefore visits exactly the same four lines as the specialized
// per-line decomposition described in the design notes; it is kept as one
// routine rather than four table lookups because the search never calls
// it on a hot path at full speed (only the solve-1 leaf, once per probe).
func LastFlipCount(player, opponent uint64, square int) int {
	flips := GenerateFlips(player, opponent, square)
	return 2 * bitboard.PopCount(flips)
}
