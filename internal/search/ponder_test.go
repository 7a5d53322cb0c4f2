package search

import (
	"testing"

	"github.com/hailam/edaxgo/internal/board"
	"github.com/hailam/edaxgo/internal/eval"
)

func TestPonderDoneDeliversAMoveAfterStop(t *testing.T) {
	var b board.Board
	b.Init()

	p := StartPonder(b, true, eval.ZeroWeights(), newTestTables(), nil)
	p.Stop()
	result := <-p.Done()

	if result.Move == board.NoMove {
		t.Error("expected Done's result to carry a move even when aborted")
	}
}
