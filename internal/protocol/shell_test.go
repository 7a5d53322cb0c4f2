package protocol

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/hailam/edaxgo/internal/board"
	"github.com/hailam/edaxgo/internal/book"
	"github.com/hailam/edaxgo/internal/eval"
	"github.com/hailam/edaxgo/internal/hashtable"
	"github.com/hailam/edaxgo/internal/search"
	"github.com/hailam/edaxgo/internal/store"
)

func newTestShell(t *testing.T, out *bytes.Buffer) *Shell {
	t.Helper()
	tables := &search.Tables{
		Main:    hashtable.NewMain(10),
		PV:      hashtable.NewPV(10),
		Shallow: hashtable.NewShallow(10),
	}
	return New(eval.ZeroWeights(), tables, nil, book.New(), nil, out)
}

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	dir, err := os.MkdirTemp("", "edaxgo-shell-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := store.OpenAt(dir)
	if err != nil {
		t.Fatalf("store.OpenAt: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInitReportsOk(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)
	sh.Run(strings.NewReader("init\n"))

	if got := out.String(); got != "ok\n" {
		t.Errorf("Run(init) output = %q, want %q", got, "ok\n")
	}
}

func TestSetBoardRejectsBadDiagram(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)
	sh.Run(strings.NewReader("setboard tooshort\n"))

	if !strings.Contains(out.String(), "error") {
		t.Errorf("expected an error for a malformed diagram, got %q", out.String())
	}
}

func TestLevelRejectsOutOfRange(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)
	sh.Run(strings.NewReader("level 999\n"))

	if !strings.Contains(out.String(), "error") {
		t.Errorf("expected an error for an out-of-range level, got %q", out.String())
	}
	if sh.level != 21 {
		t.Errorf("an invalid level command should not change sh.level, got %d", sh.level)
	}
}

func TestGoFromOpeningReportsAMove(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)
	sh.Run(strings.NewReader("level 2\ngo 100 200\n"))

	if !strings.Contains(out.String(), "move ") {
		t.Errorf("expected a move line in output, got %q", out.String())
	}
}

func TestBookReportsEmptyWhenNoEntriesMatch(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)
	sh.Run(strings.NewReader("book\n"))

	if !strings.Contains(out.String(), "book empty") {
		t.Errorf("expected 'book empty', got %q", out.String())
	}
}

func TestUnknownCommandReportsError(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)
	sh.Run(strings.NewReader("frobnicate\n"))

	if !strings.Contains(out.String(), "unknown command") {
		t.Errorf("expected an unknown-command error, got %q", out.String())
	}
}

func TestQuitStopsTheLoop(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)
	sh.Run(strings.NewReader("quit\ninit\n"))

	if out.Len() != 0 {
		t.Errorf("expected quit to stop before processing init, got %q", out.String())
	}
}

func TestPonderThenPonderStopReportsOk(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)
	sh.Run(strings.NewReader("ponder D3\nponderstop\n"))

	if got := out.String(); got != "ok\nok\n" {
		t.Errorf("Run(ponder, ponderstop) output = %q, want %q", got, "ok\nok\n")
	}
}

func TestPonderRejectsIllegalSquare(t *testing.T) {
	var out bytes.Buffer
	sh := newTestShell(t, &out)
	sh.Run(strings.NewReader("ponder A1\n"))

	if !strings.Contains(out.String(), "error") {
		t.Errorf("expected an error for an illegal ponder square, got %q", out.String())
	}
}

func TestGoRecordsStatsAndPVInTheStore(t *testing.T) {
	var out bytes.Buffer
	tables := &search.Tables{
		Main:    hashtable.NewMain(10),
		PV:      hashtable.NewPV(10),
		Shallow: hashtable.NewShallow(10),
	}
	st := openTestStore(t)
	sh := New(eval.ZeroWeights(), tables, nil, book.New(), st, &out)
	sh.Run(strings.NewReader("level 2\ngo 100 200\n"))

	if !strings.Contains(out.String(), "move ") {
		t.Fatalf("expected a move line in output, got %q", out.String())
	}

	stats, err := st.LoadStats()
	if err != nil {
		t.Fatalf("LoadStats: %v", err)
	}
	if stats.SearchesRun != 1 {
		t.Errorf("SearchesRun = %d, want 1", stats.SearchesRun)
	}

	// The opening has 60 empties, so its canonical key is the board itself.
	var opening board.Board
	opening.Init()
	if _, ok, err := st.LoadPV(opening.Hash()); err != nil || !ok {
		t.Errorf("LoadPV(opening) = (ok=%v, err=%v), want a saved PV entry", ok, err)
	}
}
