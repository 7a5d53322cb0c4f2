package hashtable

import (
	"sync/atomic"

	"github.com/hailam/edaxgo/internal/board"
)

// Table is a fixed-size, power-of-two bucketed transposition table. The
// three instances spec.md §4.G calls for (main, PV, shallow) are plain
// Tables built with different sizes and a different Name for logging.
type Table struct {
	Name    string
	buckets []bucket
	mask    uint64
	date    atomic.Uint32
}

// New allocates a table with 2^log2Size buckets, each holding waySize
// entries. log2Size is clamped to [1,28] to keep a stray config value
// from allocating an unreasonable amount of memory.
func New(name string, log2Size int) *Table {
	if log2Size < 1 {
		log2Size = 1
	}
	if log2Size > 28 {
		log2Size = 28
	}
	n := uint64(1) << uint(log2Size)
	t := &Table{
		Name:    name,
		buckets: make([]bucket, n),
		mask:    n - 1,
	}
	for i := range t.buckets {
		t.buckets[i].init()
	}
	t.date.Store(1)
	return t
}

// NewMain, NewPV and NewShallow are the three named constructors
// cmd/edax uses to fill search.Tables.
func NewMain(log2Size int) *Table    { return New("main", log2Size) }
func NewPV(log2Size int) *Table      { return New("pv", log2Size) }
func NewShallow(log2Size int) *Table { return New("shallow", log2Size) }

// NewGame bumps the table's generation counter. Entries written before
// the bump become eviction-preferred the instant a fresh write contends
// for their slot, without needing to touch every bucket.
func (t *Table) NewGame() {
	// Wrap at 255 rather than the full uint32 range: Date is stored in a
	// single byte per Entry.
	next := (t.date.Load() % 255) + 1
	t.date.Store(next)
}

func (t *Table) currentDate() uint8 { return uint8(t.date.Load()) }

func (t *Table) index(hash uint64) uint64 { return hash & t.mask }

// Probe looks up hash (ProbeBoard is the canonicalizing wrapper). The
// returned bool is false if no written entry in the bucket matches the
// lock derived from hash; never-written slots carry Date 0, which no
// table generation uses.
func (t *Table) Probe(hash uint64) (Entry, bool) {
	lock := board.Lock(hash)
	bk := &t.buckets[t.index(hash)]
	snap := bk.load()
	for i := range snap {
		if snap[i].Lock == lock && snap[i].Date != 0 && snap[i].Lower <= snap[i].Upper {
			return snap[i], true
		}
	}
	return Entry{}, false
}

// Store records a search result for hash, merging into a matching entry
// if one exists, otherwise evicting the bucket's least valuable slot.
// alpha/beta/score follow the usual fail-soft convention: a fail-high
// (score>=beta) tightens only the lower bound, a fail-low (score<=alpha)
// tightens only the upper bound, and an exact score (alpha<score<beta)
// pins both.
func (t *Table) Store(hash uint64, depth, selectivity int, cost uint8, alpha, beta, score int, move int) {
	lock := board.Lock(hash)
	bk := &t.buckets[t.index(hash)]
	date := t.currentDate()

	bk.mutate(func(entries *[waySize]Entry) {
		for i := range entries {
			if entries[i].Lock == lock {
				mergeBounds(&entries[i], alpha, beta, score)
				if dominates(depth, selectivity, cost, entries[i]) {
					entries[i].Depth = int8(depth)
					entries[i].Selectivity = int8(selectivity)
					entries[i].Cost = cost
				}
				entries[i].Date = date
				setMoveHint(&entries[i], move)
				return
			}
		}

		worst := 0
		for i := 1; i < waySize; i++ {
			if lessValuable(entries[i], entries[worst], date) {
				worst = i
			}
		}
		e := emptyEntry()
		e.Lock = lock
		mergeBounds(&e, alpha, beta, score)
		e.Depth = int8(depth)
		e.Selectivity = int8(selectivity)
		e.Cost = cost
		e.Date = date
		setMoveHint(&e, move)
		entries[worst] = e
	})
}

func mergeBounds(e *Entry, alpha, beta, score int) {
	switch {
	case score >= beta:
		if int(e.Lower) < score {
			e.Lower = int16(score)
		}
	case score <= alpha:
		if int(e.Upper) > score {
			e.Upper = int16(score)
		}
	default:
		e.Lower = int16(score)
		e.Upper = int16(score)
	}
}

func setMoveHint(e *Entry, move int) {
	if move < 0 {
		return
	}
	if int(e.Move[0]) == move {
		return
	}
	e.Move[1] = e.Move[0]
	e.Move[0] = int8(move)
}

// lessValuable implements the replacement order from spec.md §4.G: a
// stale entry is always preferred for eviction over a current one;
// among entries of the same age, shallower, less selective, then
// cheaper-to-recompute entries go first.
func lessValuable(a, b Entry, currentDate uint8) bool {
	aStale := a.Date != currentDate
	bStale := b.Date != currentDate
	if aStale != bStale {
		return aStale
	}
	if a.Depth != b.Depth {
		return a.Depth < b.Depth
	}
	if a.Selectivity != b.Selectivity {
		return a.Selectivity < b.Selectivity
	}
	return a.Cost < b.Cost
}
