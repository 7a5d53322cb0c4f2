package search

// Result is the external interface spec.md §6 names:
// run(board, side_to_move, level, time_limits) -> Result. Every field is
// a value — no callbacks are required to read a finished search's
// outcome, only an optional progress Observer during the search itself.
type Result struct {
	Score       int
	Move        int
	PV          []int
	Depth       int
	Selectivity int
	Nodes       uint64
	TimeMs      int64

	// BoundsPerMove maps a root move to a score for it. Run does not
	// fill it in: it is nil in every Result that Run returns.
	BoundsPerMove map[int]int
}

// Observer receives progress updates during Run: one call per
// completed iterative-deepening step. Implementations must return
// quickly — Run calls it synchronously between iterations.
type Observer func(partial Result)
