// Package protocol implements the minimal local invocation shell
// spec.md §1 allows as ambient plumbing around the CORE ("No network
// protocol engineering" only rules out a networked protocol; a local
// stdin/stdout command loop to drive search.Run is not one). It is
// deliberately narrow: set up a position, run a search, report the
// result — not a general game-record or multi-protocol front end like
// the teacher's UCI, GTP, NBoard etc. collaborators spec.md names as
// out of CORE scope.
package protocol

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/edaxgo/internal/board"
	"github.com/hailam/edaxgo/internal/book"
	"github.com/hailam/edaxgo/internal/config"
	"github.com/hailam/edaxgo/internal/eval"
	"github.com/hailam/edaxgo/internal/search"
	"github.com/hailam/edaxgo/internal/store"
)

// Shell holds the one position the command loop mutates and the
// engine resources every "go" reuses across commands.
type Shell struct {
	board       board.Board
	blackToMove bool

	level   int
	weights *eval.Weights
	tables  *search.Tables
	sched   *search.Scheduler
	book    *book.Book
	store   *store.Store

	ponder *search.Ponder

	out *log.Logger
}

// New builds a shell around an already-initialized engine. book and st
// may be nil (no book configured, no persistent store available).
func New(weights *eval.Weights, tables *search.Tables, sched *search.Scheduler, bk *book.Book, st *store.Store, out io.Writer) *Shell {
	sh := &Shell{
		level:   21,
		weights: weights,
		tables:  tables,
		sched:   sched,
		book:    bk,
		store:   st,
		out:     log.New(out, "", 0),
	}
	sh.board.Init()
	sh.blackToMove = true
	return sh
}

// Run reads commands from r until "quit" or EOF, writing replies
// through the Shell's output logger.
func (sh *Shell) Run(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "init":
			sh.board.Init()
			sh.blackToMove = true
			sh.out.Println("ok")
		case "setboard":
			sh.handleSetBoard(args)
		case "level":
			sh.handleLevel(args)
		case "go":
			sh.handleGo(args)
		case "ponder":
			sh.handlePonder(args)
		case "ponderstop":
			sh.handlePonderStop()
			sh.out.Println("ok")
		case "book":
			sh.handleBook()
		case "d":
			sh.out.Println(sh.board.String(sh.blackToMove))
		case "quit":
			sh.handlePonderStop()
			return
		default:
			sh.out.Printf("error: unknown command %q\n", cmd)
		}
	}
}

func (sh *Shell) handleSetBoard(args []string) {
	if len(args) != 1 {
		sh.out.Println("error: setboard requires one 65-character diagram argument")
		return
	}
	b, blackToMove, err := board.SetFromString(args[0])
	if err != nil {
		sh.out.Printf("error: %v\n", err)
		return
	}
	sh.board, sh.blackToMove = b, blackToMove
	sh.out.Println("ok")
}

func (sh *Shell) handleLevel(args []string) {
	if len(args) != 1 {
		sh.out.Println("error: level requires one integer argument")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 || n > config.MaxLevel {
		sh.out.Printf("error: level must be an integer in [0,%d]\n", config.MaxLevel)
		return
	}
	sh.level = n
	sh.out.Println("ok")
}

// handleGo runs a search, preferring a book move when one is
// available, per spec.md §6's "stop and ponder" external interface
// (book lookup happens before invoking the search proper).
func (sh *Shell) handleGo(args []string) {
	softMs, hardMs := 0, 5000
	if len(args) >= 1 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			softMs = v
		}
	}
	if len(args) >= 2 {
		if v, err := strconv.Atoi(args[1]); err == nil {
			hardMs = v
		}
	}

	sh.handlePonderStop()

	key, _ := board.CanonicalKey(sh.board, sh.board.EmptyCount())
	fingerprint := key.Hash()
	if move, ok := sh.book.Lookup(fingerprint); ok {
		sh.out.Printf("move %s score book depth 0 nodes 0\n", board.SquareName(int(move)))
		return
	}

	if sh.store != nil {
		if entry, ok, err := sh.store.LoadPV(fingerprint); err == nil && ok {
			sh.out.Printf("info pv-hint move %s score %d\n", board.SquareName(int(entry.Move)), entry.Score)
		}
	}

	start := time.Now()
	limits := search.TimeLimits{Soft: time.Duration(softMs) * time.Millisecond, Hard: time.Duration(hardMs) * time.Millisecond}
	result := search.Run(sh.board, sh.blackToMove, sh.level, sh.weights, sh.tables, sh.sched, limits, func(partial search.Result) {
		sh.out.Printf("info depth %d selectivity %d score %d nodes %d time %d\n",
			partial.Depth, partial.Selectivity, partial.Score, partial.Nodes, partial.TimeMs)
	})
	elapsed := time.Since(start)

	if sh.store != nil {
		if err := sh.store.RecordSearch(result.Nodes, elapsed, result.Depth); err != nil {
			sh.out.Printf("warning: could not record search stats: %v\n", err)
		}
		if result.Move != board.Pass {
			entry := store.PVEntry{Move: int8(result.Move), Score: result.Score}
			if err := sh.store.SavePV(fingerprint, entry); err != nil {
				sh.out.Printf("warning: could not save pv: %v\n", err)
			}
		}
	}

	moveStr := "pass"
	if result.Move != board.Pass {
		moveStr = board.SquareName(result.Move)
	}
	sh.out.Printf("move %s score %d depth %d nodes %d time %d pv %s\n",
		moveStr, result.Score, result.Depth, result.Nodes, result.TimeMs, formatPV(result.PV))
}

// handlePonder starts a background search on the position reached if
// the opponent plays the given square next, per spec.md §6's "stop and
// ponder" external interface: the guessed position's search runs on
// idle time and its hash-table writes are reused for free if the
// opponent's actual move matches.
func (sh *Shell) handlePonder(args []string) {
	if len(args) != 1 {
		sh.out.Println("error: ponder requires one square argument")
		return
	}
	sq, err := board.ParseSquare(args[0])
	if err != nil {
		sh.out.Printf("error: %v\n", err)
		return
	}
	var ml board.MoveList
	ml.Generate(sh.board)
	if !ml.Contains(sq) {
		sh.out.Println("error: not a legal move to ponder on")
		return
	}

	sh.handlePonderStop()
	guessed := sh.board.Apply(sq)
	sh.ponder = search.StartPonder(guessed, !sh.blackToMove, sh.weights, sh.tables, sh.sched)
	sh.out.Println("ok")
}

// handlePonderStop cancels any in-flight pondering search and drains
// its result so the background goroutine always exits cleanly.
func (sh *Shell) handlePonderStop() {
	if sh.ponder == nil {
		return
	}
	sh.ponder.Stop()
	<-sh.ponder.Done()
	sh.ponder = nil
}

func (sh *Shell) handleBook() {
	key, _ := board.CanonicalKey(sh.board, sh.board.EmptyCount())
	entries := sh.book.LookupAll(key.Hash())
	if len(entries) == 0 {
		sh.out.Println("book empty")
		return
	}
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s:%d", board.SquareName(int(e.Move)), e.Weight)
	}
	sh.out.Println(b.String())
}

func formatPV(pv []int) string {
	if len(pv) == 0 {
		return "-"
	}
	names := make([]string, len(pv))
	for i, sq := range pv {
		names[i] = board.SquareName(sq)
	}
	return strings.Join(names, " ")
}
