// Package hashtable implements the three cooperating transposition tables
// (main, principal-variation, shallow) described in spec.md §4.G: fixed
// size, bucketed, lock-free probing via a per-bucket sequence counter, and
// an age/depth/selectivity/cost replacement policy.
package hashtable

// Score sentinels bounding the midgame evaluation scale (spec.md §3:
// "scaled to a wider range, e.g. ±SCORE_MAX ≈ 129, for midgame
// evaluation"). A bound pinned at these values means "no information in
// this direction" rather than a real score.
const (
	ScoreMin = -128
	ScoreMax = 128
)

// NoMove marks an absent move hint.
const NoMove = -1

// Entry is a packed transposition-table record: a bound [Lower,Upper] on
// the score of a board at (Depth,Selectivity), up to two best-move hints,
// and replacement-policy metadata (Cost, Date).
//
// Lower/Upper are int16 rather than the int8 the C original packs them
// into — the Go struct has no packing pressure forcing a one-byte score,
// and int8 cannot hold the ±129 midgame scale spec.md §3 calls for; see
// DESIGN.md for this one deliberate width change.
type Entry struct {
	Lock        uint32
	Lower       int16
	Upper       int16
	Depth       int8
	Selectivity int8
	Cost        uint8
	Date        uint8
	Move        [2]int8
}

func emptyEntry() Entry {
	return Entry{Lower: ScoreMin, Upper: ScoreMax, Move: [2]int8{NoMove, NoMove}}
}

// dominates reports whether (depth,selectivity,cost) as a triple is
// strictly more informative than e's, compared in that order — used to
// decide whether a same-key update should upgrade depth/selectivity/cost
// (eviction ranking is lessValuable's job).
func dominates(depth, selectivity int, cost uint8, e Entry) bool {
	if depth != int(e.Depth) {
		return depth > int(e.Depth)
	}
	if selectivity != int(e.Selectivity) {
		return selectivity > int(e.Selectivity)
	}
	return cost > e.Cost
}
