package hashtable

import (
	"testing"

	"github.com/hailam/edaxgo/internal/board"
)

func TestStoreBoardThenProbeBoardRoundTripsScore(t *testing.T) {
	var b board.Board
	b.Init()

	tb := New("test", 4)
	tb.StoreBoard(b, 60, 4, 0, 1, -64, 64, 8, 20)

	e, ok := tb.ProbeBoard(b, 60)
	if !ok {
		t.Fatalf("expected hit")
	}
	if e.Lower != 8 || e.Upper != 8 {
		t.Errorf("round-tripped score = [%d,%d], want [8,8]", e.Lower, e.Upper)
	}
}
