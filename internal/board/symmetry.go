package board

import "github.com/hailam/edaxgo/internal/bitboard"

// Symmetries lists the 8 transforms of the dihedral group of the square,
// built from the three involutions VerticalMirror, HorizontalMirror and
// Transpose (v, h commute and generate the Klein-four rotation/reflection
// subgroup {id, v, h, vh}; composing each with t covers the remaining
// coset, so all 8 elements of D4 are exactly this list).
var Symmetries = [8]func(Board) Board{
	symID,
	symV,
	symH,
	symVH,
	symT,
	symVT,
	symHT,
	symVHT,
}

func symID(b Board) Board { return b }

func symV(b Board) Board {
	return Board{bitboard.VerticalMirror(b.Player), bitboard.VerticalMirror(b.Opponent)}
}

func symH(b Board) Board {
	return Board{bitboard.HorizontalMirror(b.Player), bitboard.HorizontalMirror(b.Opponent)}
}

func symVH(b Board) Board { return symH(symV(b)) }

func symT(b Board) Board {
	return Board{bitboard.Transpose(b.Player), bitboard.Transpose(b.Opponent)}
}

func symVT(b Board) Board  { return symT(symV(b)) }
func symHT(b Board) Board  { return symT(symH(b)) }
func symVHT(b Board) Board { return symT(symVH(b)) }
