package eval

import (
	"github.com/hailam/edaxgo/internal/bitboard"
	"github.com/hailam/edaxgo/internal/board"
)

// Pattern is one configuration feature from spec.md §4.F: an ordered
// list of squares whose {empty,black,white} trits pack into a single
// base-3 index used to look up a weight. Squares[i] always contributes
// at weight 3^i to the index, fixed at build time by buildPatterns.
type Pattern struct {
	Name    string
	Squares []int
}

// Patterns is the full feature set Edax-Go's evaluator sums over. The
// base shapes — the two diagonal families down to length 4, the top
// edge plus its two adjacent X-squares, and the corner 3x3 block — are
// each replicated across all eight board symmetries so the evaluator
// sees every orientation a position can appear in, the same corner/edge/
// diagonal decomposition spec.md §4.F names.
//
// Each oriented copy of a pattern gets its own weight table rather than
// sharing one canonical table across symmetric orientations (real Edax
// folds a position to a canonical orientation before indexing so one
// learned vector serves all eight); this port indexes each orientation
// separately.
var Patterns = buildPatterns()

var squarePatterns [64][]patternRef

type patternRef struct {
	pattern int
	weight  int32
}

func buildPatterns() []Pattern {
	shapes := []Pattern{
		{Name: "diag8", Squares: []int{0, 9, 18, 27, 36, 45, 54, 63}},
		{Name: "diag7", Squares: []int{8, 17, 26, 35, 44, 53, 62}},
		{Name: "diag6", Squares: []int{16, 25, 34, 43, 52, 61}},
		{Name: "diag5", Squares: []int{24, 33, 42, 51, 60}},
		{Name: "diag4", Squares: []int{32, 41, 50, 59}},
		{Name: "edge", Squares: []int{0, 1, 2, 3, 4, 5, 6, 7, 9, 14}},
		{Name: "corner", Squares: []int{0, 1, 2, 8, 9, 10, 16, 17, 18}},
	}

	var all []Pattern
	for _, shape := range shapes {
		for _, squares := range symmetricSquareSets(shape.Squares) {
			all = append(all, Pattern{Name: shape.Name, Squares: squares})
		}
	}
	return all
}

// symmetricSquareSets maps squares through every element of
// board.Symmetries, deduplicating orientations a shape happens to be
// invariant under (e.g. the main diagonal under transpose).
func symmetricSquareSets(squares []int) [][]int {
	var mask uint64
	for _, sq := range squares {
		mask |= uint64(1) << uint(sq)
	}

	seen := make(map[uint64]bool, len(board.Symmetries))
	var out [][]int
	for _, sym := range board.Symmetries {
		sb := sym(board.Board{Player: mask})
		if seen[sb.Player] {
			continue
		}
		seen[sb.Player] = true

		var squares []int
		m := sb.Player
		for m != 0 {
			squares = append(squares, bitboard.PopLSB(&m))
		}
		out = append(out, squares)
	}
	return out
}

func init() {
	for pi, p := range Patterns {
		weight := int32(1)
		for _, sq := range p.Squares {
			squarePatterns[sq] = append(squarePatterns[sq], patternRef{pattern: pi, weight: weight})
			weight *= 3
		}
	}
}

func (p Pattern) computeIndex(black, white uint64) int32 {
	var idx, weight int32 = 0, 1
	for _, sq := range p.Squares {
		idx += trit(black, white, sq) * weight
		weight *= 3
	}
	return idx
}

func trit(black, white uint64, sq int) int32 {
	bit := uint64(1) << uint(sq)
	switch {
	case black&bit != 0:
		return 1
	case white&bit != 0:
		return 2
	default:
		return 0
	}
}

func pow3(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 3
	}
	return v
}
