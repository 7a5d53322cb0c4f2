package board

import (
	"testing"

	"github.com/hailam/edaxgo/internal/bitboard"
)

func TestGenerateFlipsMatchesLegalMoves(t *testing.T) {
	var b Board
	b.Init()

	empties := b.Empties()
	for sq := 0; sq < 64; sq++ {
		if empties&(uint64(1)<<uint(sq)) == 0 {
			continue
		}
		flips := GenerateFlips(b.Player, b.Opponent, sq)
		isLegal := b.LegalMoves()&(uint64(1)<<uint(sq)) != 0
		if (flips != 0) != isLegal {
			t.Errorf("square %s: flips=%#x legal=%v mismatch", SquareName(sq), flips, isLegal)
		}
	}
}

func TestFlippedIsSubsetOfOpponentAndTargetIsEmpty(t *testing.T) {
	var b Board
	b.Init()
	rem := b.LegalMoves()
	for rem != 0 {
		sq := bitboard.PopLSB(&rem)
		flips := GenerateFlips(b.Player, b.Opponent, sq)
		if flips&^b.Opponent != 0 {
			t.Errorf("square %s flips %#x escape opponent mask %#x", SquareName(sq), flips, b.Opponent)
		}
		if (b.Player|b.Opponent)&(uint64(1)<<uint(sq)) != 0 {
			t.Errorf("square %s is not empty", SquareName(sq))
		}
	}
}

func TestLastFlipCountMatchesPopcountTimesTwo(t *testing.T) {
	// A 63-disc board with one empty square (A1), enough opponent discs
	// along the A-file and rank 1 to exercise a real flip.
	diagram :=
		"-OOOOOOO" +
			"XOOOOOOO" +
			"XOOOOOOO" +
			"XOOOOOOO" +
			"XOOOOOOO" +
			"XOOOOOOO" +
			"XOOOOOOO" +
			"XXXXXXXX" + "O"
	b, _, err := SetFromString(diagram)
	if err != nil {
		t.Fatalf("SetFromString: %v", err)
	}
	flips := GenerateFlips(b.Player, b.Opponent, A1)
	want := 2 * bitboard.PopCount(flips)
	got := LastFlipCount(b.Player, b.Opponent, A1)
	if got != want {
		t.Errorf("LastFlipCount = %d, want %d", got, want)
	}
}
