package eval

import (
	"bytes"
	"testing"

	"github.com/hailam/edaxgo/internal/board"
)

func TestPushMatchesFromScratchRecompute(t *testing.T) {
	var b board.Board
	b.Init()
	// Black (D5,E4) is the initial player per spec.md's opening; white
	// (D4,E5) is the opponent.
	black, white := b.Player, b.Opponent

	acc := NewAccumulator()
	acc.SetPosition(black, white)

	sq := board.D3
	flips := board.GenerateFlips(b.Player, b.Opponent, sq)
	if flips == 0 {
		t.Fatalf("expected %s to be a legal opening move", board.SquareName(sq))
	}
	acc.Push(true, sq, flips)

	newBlack := black | flips | (uint64(1) << uint(sq))
	newWhite := white &^ flips

	fresh := NewAccumulator()
	fresh.SetPosition(newBlack, newWhite)

	for i := range acc.index {
		if acc.index[i] != fresh.index[i] {
			t.Fatalf("pattern %d (%s): incremental index %d != recomputed %d",
				i, Patterns[i].Name, acc.index[i], fresh.index[i])
		}
	}
}

func TestPushThenPopRestoresAccumulator(t *testing.T) {
	var b board.Board
	b.Init()
	acc := NewAccumulator()
	acc.SetPosition(b.Player, b.Opponent)
	before := append([]int32(nil), acc.index...)

	sq := board.D3
	flips := GenerateFlipsFor(b, sq)
	acc.Push(true, sq, flips)
	acc.Pop()

	if acc.Depth() != 0 {
		t.Errorf("Depth() = %d after balanced push/pop, want 0", acc.Depth())
	}
	for i := range acc.index {
		if acc.index[i] != before[i] {
			t.Errorf("pattern %d not restored: got %d, want %d", i, acc.index[i], before[i])
		}
	}
}

// GenerateFlipsFor is a tiny local wrapper kept in the test file only,
// avoiding a second import alias for board.GenerateFlips in both tests.
func GenerateFlipsFor(b board.Board, sq int) uint64 {
	return board.GenerateFlips(b.Player, b.Opponent, sq)
}

func TestWeightsRoundTripThroughSaveAndLoad(t *testing.T) {
	w := ZeroWeights()
	w.Tables[0][0] = 7
	w.Tables[len(w.Tables)-1][len(w.Tables[len(w.Tables)-1])-1] = -3

	path := t.TempDir() + "/weights.bin"
	if err := SaveWeights(path, w); err != nil {
		t.Fatalf("SaveWeights: %v", err)
	}
	got, err := LoadWeights(path)
	if err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}
	if got.Tables[0][0] != 7 {
		t.Errorf("Tables[0][0] = %d, want 7", got.Tables[0][0])
	}
	last := len(got.Tables) - 1
	if got.Tables[last][len(got.Tables[last])-1] != -3 {
		t.Errorf("last weight not round-tripped")
	}
}

func TestLoadWeightsRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.Write([]byte{0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}) // a full 20-byte header
	if _, err := LoadWeightsFromReader(&buf); err == nil {
		t.Fatalf("expected error for bad magic")
	}
}

func TestEvaluateNegatesForWhiteToMove(t *testing.T) {
	w := ZeroWeights()
	w.Tables[0][0] = 10 // every empty-square trit maps to index 0

	s := NewState(w)
	s.SetPosition(0, 0) // fully empty board: every pattern index is 0

	blackScore := s.Evaluate(60, true)
	s.SetPosition(0, 0)
	whiteScore := s.Evaluate(60, false)

	if blackScore != -whiteScore {
		t.Errorf("Evaluate(blackToMove=true)=%d, Evaluate(blackToMove=false)=%d, want negatives of each other", blackScore, whiteScore)
	}
}
