package board

import "github.com/hailam/edaxgo/internal/bitboard"

// maxMoves bounds the arena: 33 simultaneous legal moves (spec.md's
// "up to ~33") plus one slot of headroom.
const maxMoves = 34

// Move is one candidate ply: the square played, the mask of discs it
// flips, and a mutable ordering score/cost filled in by the search's move
// orderer.
type Move struct {
	Square  int
	Flipped uint64
	Score   int32
	Cost    uint8
	next    int
}

// MoveList is a small intrusive singly-linked list of legal moves, backed
// by a fixed array arena. Reordering happens by detaching/reattaching
// next links, never by reallocating or copying the backing array — the
// representation spec.md §3 calls for.
type MoveList struct {
	moves [maxMoves]Move
	head  int // index of first move, or -1 if empty
	n     int
}

// Generate fills the list with every legal move for b's side to move, in
// ascending square order.
func (ml *MoveList) Generate(b Board) {
	ml.n = 0
	ml.head = -1
	tail := -1
	rem := b.LegalMoves()
	for rem != 0 {
		sq := bitboard.PopLSB(&rem)
		idx := ml.n
		ml.moves[idx] = Move{
			Square:  sq,
			Flipped: GenerateFlips(b.Player, b.Opponent, sq),
			next:    -1,
		}
		if tail == -1 {
			ml.head = idx
		} else {
			ml.moves[tail].next = idx
		}
		tail = idx
		ml.n++
	}
}

// Len returns the number of moves remaining in the list.
func (ml *MoveList) Len() int { return ml.n }

// Empty reports whether the list has no moves left.
func (ml *MoveList) Empty() bool { return ml.n == 0 }

// ForEach visits every move in list order, allowing in-place mutation
// (used by the move orderer to fill in Score/Cost before selection).
func (ml *MoveList) ForEach(fn func(m *Move)) {
	for i := ml.head; i != -1; i = ml.moves[i].next {
		fn(&ml.moves[i])
	}
}

// PopBest detaches and returns the remaining move with the highest Score:
// a stable selection sort, one element per call, so a search loop that
// aborts early on a cutoff never pays for sorting moves it never visits.
func (ml *MoveList) PopBest() (Move, bool) {
	if ml.head == -1 {
		return Move{}, false
	}
	best := ml.head
	bestPrev := -1
	prev := ml.head
	cur := ml.moves[ml.head].next
	for cur != -1 {
		if ml.moves[cur].Score > ml.moves[best].Score {
			best = cur
			bestPrev = prev
		}
		prev = cur
		cur = ml.moves[cur].next
	}
	if bestPrev == -1 {
		ml.head = ml.moves[best].next
	} else {
		ml.moves[bestPrev].next = ml.moves[best].next
	}
	ml.n--
	return ml.moves[best], true
}

// Contains reports whether square is among the list's remaining moves,
// used to validate an externally supplied move (e.g. a ponder hint)
// against the current legal moves before acting on it.
func (ml *MoveList) Contains(square int) bool {
	found := false
	ml.ForEach(func(m *Move) {
		if m.Square == square {
			found = true
		}
	})
	return found
}
