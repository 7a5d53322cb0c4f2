package board

import (
	"hash/crc32"

	"github.com/hailam/edaxgo/internal/bitboard"
)

// castagnoli is the CRC32C polynomial table, computed once. spec.md §4.E
// names CRC32c explicitly as the board fingerprint algorithm; substituting
// a third-party hash here would contradict the specified algorithm (see
// DESIGN.md), so this is the one place the engine reaches for the standard
// library hash/crc32 package instead of an ecosystem hashing library.
var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Hash returns a 64-bit fingerprint of the board, mixing the side-to-move
// convention (player is always the mover, so the pair alone already
// encodes it) with CRC32c over both bitboard halves.
func (b Board) Hash() uint64 {
	var buf [16]byte
	putUint64(buf[0:8], b.Player)
	putUint64(buf[8:16], b.Opponent)

	lo := crc32.Checksum(buf[:8], castagnoli)
	hi := crc32.Checksum(buf[8:], castagnoli)
	// Mix the halves together so swapping player/opponent (a pass) changes
	// every bit of the fingerprint rather than just swapping two halves.
	mixed := crc32.Checksum(buf[:], castagnoli)
	return uint64(lo)<<32 | uint64(hi) ^ uint64(mixed)<<16
}

// Lock returns the 32-bit half of hash stored per hash-table entry to
// disambiguate bucket collisions.
func Lock(hash uint64) uint32 {
	return uint32(hash >> 32)
}

func putUint64(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> uint(8*i))
	}
}

// SolidOpponent returns the subset of opponent discs whose four lines
// (row, column and both diagonals) are all fully occupied (spec.md's
// "solid disc" canonicalization): below a given
// empty-count threshold these discs are guaranteed stable for the rest of
// the search, so they can be XORed out of the hash key to let positions
// differing only by cosmetically stable discs share a hash entry.
func SolidOpponent(player, opponent uint64) uint64 {
	full := FullLines(player | opponent)
	return opponent & full[0] & full[1] & full[2] & full[3]
}

// CanonicalKey returns the board with solid opponent discs removed from
// Opponent, plus twice the count of discs removed (the score offset to add back
// to any bound retrieved under this key). emptyCount should be the
// board's actual empty-square count; canonicalization is only applied
// below maxEmptiesForCanonicalization (spec.md §9: "only below a depth
// threshold... where the assumption 'stable discs will remain stable' is
// cheap to verify").
func CanonicalKey(b Board, emptyCount int) (key Board, offset int) {
	const maxEmptiesForCanonicalization = 24
	if emptyCount > maxEmptiesForCanonicalization {
		return b, 0
	}
	solid := SolidOpponent(b.Player, b.Opponent)
	if solid == 0 {
		return b, 0
	}
	return Board{Player: b.Player, Opponent: b.Opponent ^ solid}, 2 * bitboard.PopCount(solid)
}
