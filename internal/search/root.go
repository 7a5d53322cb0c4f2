package search

import (
	"log"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/hailam/edaxgo/internal/board"
	"github.com/hailam/edaxgo/internal/config"
	"github.com/hailam/edaxgo/internal/eval"
	"github.com/hailam/edaxgo/internal/hashtable"
)

// TimeLimits bounds a Run call between iterations: once Soft (when
// positive) has elapsed or the Hard deadline (when positive) has
// passed, no new iteration starts and the last completed iteration's
// result is returned. An iteration already running is not interrupted,
// so a Run can end after Hard.
type TimeLimits struct {
	Soft time.Duration
	Hard time.Duration
}

// Run is the external search entry point: run(board, side_to_move,
// level, time_limits) -> Result from spec.md §6. b/blackToMove give the
// position, level selects the (depth,selectivity) ladder via
// internal/config, and observer (optional) receives one callback per
// completed iteration.
func Run(b board.Board, blackToMove bool, level int, weights *eval.Weights, tables *Tables, sched *Scheduler, limits TimeLimits, observer Observer) Result {
	targetDepth, targetSelectivity := config.Level(level)
	if remaining := b.EmptyCount(); targetDepth > remaining {
		targetDepth = remaining
	}

	s := NewState(b, blackToMove, weights, tables)
	s.Scheduler = sched

	start := time.Now()
	deadline := start.Add(limits.Hard)
	if limits.Hard <= 0 {
		deadline = time.Time{}
	}

	var result Result
	aspiration := 6
	prevScore := 0

	depth := 2
	if depth > targetDepth {
		depth = targetDepth
	}
	selectivity := targetSelectivity

	for {
		alpha, beta := prevScore-aspiration, prevScore+aspiration
		if depth <= 2 {
			alpha, beta = scoreMin, scoreMax
		}

		score, move := searchRootOnce(s, alpha, beta, depth, selectivity)
		if score <= alpha || score >= beta {
			// Aspiration window missed: re-search with a full window
			// rather than widening incrementally, keeping this simple.
			score, move = searchRootOnce(s, scoreMin, scoreMax, depth, selectivity)
		}

		prevScore = score
		result = Result{
			Score:       score,
			Move:        move,
			PV:          extractPV(s, move),
			Depth:       depth,
			Selectivity: selectivity,
			Nodes:       s.Nodes,
			TimeMs:      time.Since(start).Milliseconds(),
		}
		log.Printf("[Search] depth=%d selectivity=%d score=%d move=%s nodes=%s nps=%s",
			depth, selectivity, score, board.SquareName(move),
			humanize.Comma(int64(s.Nodes)), humanize.Comma(nps(s.Nodes, time.Since(start))))
		if observer != nil {
			observer(result)
		}

		if s.Stop.Requested() {
			break
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			break
		}
		if limits.Soft > 0 && time.Since(start) >= limits.Soft {
			break
		}

		if depth < targetDepth {
			depth += 2
			if depth > targetDepth {
				depth = targetDepth
			}
			continue
		}

		// Depth has reached the remaining empties: ladder selectivity
		// down to exact, per spec.md §4.I's depth-to-selectivity
		// schedule ("the run then iterates selectivity levels from the
		// most selective to exact").
		if selectivity > config.NoSelectivity {
			selectivity = config.NoSelectivity
		}
		if selectivity == config.NoSelectivity {
			break
		}
		selectivity++
	}

	return result
}

func nps(nodes uint64, elapsed time.Duration) int64 {
	secs := elapsed.Seconds()
	if secs <= 0 {
		return int64(nodes)
	}
	return int64(float64(nodes) / secs)
}

// searchRootOnce runs one full iteration over every legal move at the
// root, returning the best score and move. It mirrors the interior
// search loop in pvs.go rather than calling search() directly, since
// the root always searches every move (it stops early only on a Stop
// request) rather than taking an early stability/hash cutoff.
func searchRootOnce(s *State, alpha, beta, depth, selectivity int) (int, int) {
	var ml board.MoveList
	ml.Generate(s.Board)
	if ml.Empty() {
		return int(s.Eval.Evaluate(s.EmptyCount(), s.BlackToMove)), board.Pass
	}

	hashMove, secondMove := hashtable.NoMove, hashtable.NoMove
	if e, ok := s.Tables.PV.ProbeBoard(s.Board, s.EmptyCount()); ok {
		hashMove = int(e.Move[0])
		secondMove = int(e.Move[1])
	}
	orderMoves(s, &ml, hashMove, secondMove, depth)

	best := scoreMin
	bestMove := hashtable.NoMove
	first := true
	for {
		m, ok := ml.PopBest()
		if !ok {
			break
		}
		before, _ := s.Apply(m.Square)

		var score int
		if first {
			score = -search(s, -beta, -alpha, depth-1, selectivity, true)
		} else {
			score = -NWS(s, -alpha-1, depth-1, selectivity)
			if score > alpha && score < beta {
				score = -search(s, -beta, -alpha, depth-1, selectivity, true)
			}
		}

		s.Unapply(before)

		if score > best {
			best, bestMove = score, m.Square
		}
		if best > alpha {
			alpha = best
		}
		first = false
		if s.Stop.Requested() {
			break
		}
	}

	best = clamp(best, scoreMin, scoreMax)
	s.Tables.PV.StoreBoard(s.Board, s.EmptyCount(), depth, selectivity, 255, scoreMin, scoreMax, best, bestMove)
	return best, bestMove
}

// extractPV follows the chain of stored best moves through the PV
// table, falling back to the main table, per spec.md §4.L. It stops
// when neither table has an entry for the current node (a "PV break")
// rather than running the small guess-search spec.md allows — callers
// that need a move there should probe the shallow table themselves.
func extractPV(s *State, firstMove int) []int {
	if firstMove == board.Pass || firstMove == hashtable.NoMove {
		return nil
	}
	pv := []int{firstMove}

	cur := s.Board
	for i := 0; i < 60; i++ {
		cur = cur.Apply(pv[len(pv)-1])
		if cur.IsGameOver() {
			break
		}
		if !cur.CanMove() {
			cur = cur.Passed()
			if !cur.CanMove() {
				break
			}
		}

		e, ok := s.Tables.PV.ProbeBoard(cur, cur.EmptyCount())
		if !ok {
			e, ok = s.Tables.Main.ProbeBoard(cur, cur.EmptyCount())
		}
		if !ok || e.Move[0] < 0 {
			break
		}
		pv = append(pv, int(e.Move[0]))
	}
	return pv
}
