package search

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/hailam/edaxgo/internal/board"
)

// parallelMinDepth is the shallowest remaining depth at which splitting
// a node across goroutines is worth the scheduling overhead — the
// Young Brothers Wait Concept from spec.md §4.K only ever splits once
// the eldest (first) brother has returned, and only at nodes deep
// enough that the remaining siblings are themselves substantial.
const parallelMinDepth = 6

// Scheduler caps the number of concurrently running split-point helper
// goroutines, the idiomatic Go stand-in for the teacher's fixed
// Worker array (internal/engine/worker.go): instead of a pool of
// pre-allocated workers, every split spawns a goroutine but acquires a
// semaphore slot first, so at most NWorkers run at once.
type Scheduler struct {
	sem *semaphore.Weighted
}

// NewScheduler builds a Scheduler capped at nWorkers concurrent helpers.
func NewScheduler(nWorkers int) *Scheduler {
	if nWorkers < 1 {
		nWorkers = 1
	}
	return &Scheduler{sem: semaphore.NewWeighted(int64(nWorkers))}
}

// searchYoungBrothers runs the "first move serial, the rest in
// parallel" shape of spec.md §4.K: the eldest brother is always
// searched to establish alpha before any split, then every remaining
// move is handed to a goroutine bounded by the scheduler's semaphore.
// A beta cutoff from any branch does not set the shared s.Stop, which
// would also abort searches outside this split point; it sets a
// split-local flag instead, which stops further moves from being
// launched (helpers already running finish their subtrees).
func searchYoungBrothers(s *State, ml *board.MoveList, alpha, beta, depth, selectivity int, sched *Scheduler) (best int, bestMove int) {
	best = scoreMin
	bestMove = -1

	first, ok := ml.PopBest()
	if !ok {
		return best, bestMove
	}
	before, _ := s.Apply(first.Square)
	score := -search(s, -beta, -alpha, depth-1, selectivity, true)
	s.Unapply(before)

	best, bestMove = score, first.Square
	if best > alpha {
		alpha = best
	}
	if alpha >= beta || sched == nil || depth < parallelMinDepth {
		// Either already cut off, no scheduler configured, or too
		// shallow to be worth splitting: finish serially.
		remainingBest, remainingMove := searchSerialRest(s, ml, alpha, beta, depth, selectivity)
		if remainingBest > best {
			best, bestMove = remainingBest, remainingMove
		}
		return best, bestMove
	}

	type branchResult struct {
		square int
		score  int
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	var cutoff atomic.Bool
	sharedAlpha := alpha
	results := make([]branchResult, 0, ml.Len())

	for {
		m, ok := ml.PopBest()
		if !ok {
			break
		}
		if cutoff.Load() {
			break
		}
		square := m.Square

		ctx := context.Background()
		if err := sched.sem.Acquire(ctx, 1); err != nil {
			continue
		}
		wg.Add(1)
		go func(square int) {
			defer wg.Done()
			defer sched.sem.Release(1)

			worker := s.Fork()
			before, _ := worker.Apply(square)

			mu.Lock()
			a := sharedAlpha
			mu.Unlock()

			sc := -NWS(worker, -a-1, depth-1, selectivity)
			if sc > a && sc < beta {
				sc = -search(worker, -beta, -a, depth-1, selectivity, true)
			}
			worker.Unapply(before)

			mu.Lock()
			results = append(results, branchResult{square: square, score: sc})
			if sc > sharedAlpha {
				sharedAlpha = sc
			}
			if sharedAlpha >= beta {
				cutoff.Store(true)
			}
			atomic.AddUint64(&s.Nodes, worker.Nodes)
			mu.Unlock()
		}(square)
	}
	wg.Wait()

	for _, r := range results {
		if r.score > best {
			best, bestMove = r.score, r.square
		}
	}
	return best, bestMove
}

func searchSerialRest(s *State, ml *board.MoveList, alpha, beta, depth, selectivity int) (best int, bestMove int) {
	best = scoreMin
	bestMove = -1
	for {
		m, ok := ml.PopBest()
		if !ok {
			break
		}
		before, _ := s.Apply(m.Square)
		score := -NWS(s, -alpha-1, depth-1, selectivity)
		if score > alpha && score < beta {
			score = -search(s, -beta, -alpha, depth-1, selectivity, true)
		}
		s.Unapply(before)

		if score > best {
			best, bestMove = score, m.Square
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			break
		}
	}
	return best, bestMove
}
