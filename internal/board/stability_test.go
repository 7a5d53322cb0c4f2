package board

import "testing"

func TestStableDiscsOnFullCorners(t *testing.T) {
	// All four corners plus their edge neighbors are black; everything
	// else is white. Each corner and its two adjacent edge squares should
	// be stable.
	diagram :=
		"OOXXXXOO" +
			"OXXXXXXO" +
			"XXXXXXXX" +
			"XXXXXXXX" +
			"XXXXXXXX" +
			"XXXXXXXX" +
			"OXXXXXXO" +
			"OOXXXXOO" + "O"
	b, _, err := SetFromString(diagram)
	if err != nil {
		t.Fatalf("SetFromString: %v", err)
	}

	stable := StableDiscs(b.Player, b.Opponent)
	for _, sq := range []int{A1, B1, A2, H1, G1, H2, A8, B8, A7, H8, G8, H7} {
		if stable&(uint64(1)<<uint(sq)) == 0 {
			t.Errorf("expected %s to be stable", SquareName(sq))
		}
	}
}

func TestStableDiscsIsSubsetOfPlayer(t *testing.T) {
	var b Board
	b.Init()
	stable := StableDiscs(b.Player, b.Opponent)
	if stable&^b.Player != 0 {
		t.Errorf("stable discs %#x not a subset of player %#x", stable, b.Player)
	}
}

func TestFullLinesIdentifiesFullRows(t *testing.T) {
	occ := uint64(0x00000000000000FF) // rank 1 fully occupied
	full := FullLines(occ)
	if full[0]&0xFF != 0xFF {
		t.Errorf("expected rank1 axis (row) to be marked full")
	}
}
