package board

import "fmt"

// Square indices, little-endian rank-file mapping: A1=0 ... H8=63.
const (
	A1 = iota
	B1
	C1
	D1
	E1
	F1
	G1
	H1
	A2
	B2
	C2
	D2
	E2
	F2
	G2
	H2
	A3
	B3
	C3
	D3
	E3
	F3
	G3
	H3
	A4
	B4
	C4
	D4
	E4
	F4
	G4
	H4
	A5
	B5
	C5
	D5
	E5
	F5
	G5
	H5
	A6
	B6
	C6
	D6
	E6
	F6
	G6
	H6
	A7
	B7
	C7
	D7
	E7
	F7
	G7
	H7
	A8
	B8
	C8
	D8
	E8
	F8
	G8
	H8
)

// Pass is a non-square move code meaning "no legal move, side passes".
// NoMove marks an absent move (e.g. empty hash-entry move slots).
const (
	Pass   = 64
	NoMove = -1
)

var squareNames = [64]string{
	"A1", "B1", "C1", "D1", "E1", "F1", "G1", "H1",
	"A2", "B2", "C2", "D2", "E2", "F2", "G2", "H2",
	"A3", "B3", "C3", "D3", "E3", "F3", "G3", "H3",
	"A4", "B4", "C4", "D4", "E4", "F4", "G4", "H4",
	"A5", "B5", "C5", "D5", "E5", "F5", "G5", "H5",
	"A6", "B6", "C6", "D6", "E6", "F6", "G6", "H6",
	"A7", "B7", "C7", "D7", "E7", "F7", "G7", "H7",
	"A8", "B8", "C8", "D8", "E8", "F8", "G8", "H8",
}

// SquareName returns the algebraic name of a square, or "--" for Pass.
func SquareName(sq int) string {
	if sq == Pass {
		return "--"
	}
	if sq < 0 || sq > 63 {
		return fmt.Sprintf("?%d?", sq)
	}
	return squareNames[sq]
}

// ParseSquare parses an algebraic square name ("D3") into its index.
func ParseSquare(s string) (int, error) {
	if s == "--" || s == "PS" {
		return Pass, nil
	}
	if len(s) != 2 {
		return 0, fmt.Errorf("board: bad square %q", s)
	}
	file := s[0]
	rank := s[1]
	if file >= 'a' && file <= 'h' {
		file -= 'a' - 'A'
	}
	if file < 'A' || file > 'H' || rank < '1' || rank > '8' {
		return 0, fmt.Errorf("board: bad square %q", s)
	}
	return int(rank-'1')*8 + int(file-'A'), nil
}
