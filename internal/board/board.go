// Package board implements the Othello bitboard model: the (player,
// opponent) pair, move application, diagram serialization, stability, and
// the flip/mobility generators (spec.md §4.A-E).
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hailam/edaxgo/internal/bitboard"
)

// ErrBadBoard is returned when a serialized diagram has the wrong length or
// contains characters outside {O,X,-} plus a trailing side-to-move marker.
var ErrBadBoard = errors.New("board: malformed diagram")

// Board is the (player, opponent) bitboard pair. player is always the side
// to move; the two masks are disjoint.
type Board struct {
	Player   uint64
	Opponent uint64
}

// Init sets Board to the standard Othello opening position, black to move:
// D5/E4 black, D4/E5 white.
func (b *Board) Init() {
	b.Player = uint64(1)<<D5 | uint64(1)<<E4
	b.Opponent = uint64(1)<<D4 | uint64(1)<<E5
}

// Empties returns the bitmask of unoccupied squares.
func (b Board) Empties() uint64 {
	return ^(b.Player | b.Opponent)
}

// EmptyCount returns the number of unoccupied squares.
func (b Board) EmptyCount() int {
	return bitboard.PopCount(b.Empties())
}

// LegalMoves returns the mobility mask for the side to move.
func (b Board) LegalMoves() uint64 {
	return LegalMoves(b.Player, b.Opponent)
}

// CanMove reports whether the side to move has at least one legal move.
func (b Board) CanMove() bool {
	return HasLegalMove(b.Player, b.Opponent)
}

// IsGameOver reports whether neither side can move.
func (b Board) IsGameOver() bool {
	if b.CanMove() {
		return false
	}
	passed := b.Passed()
	return !passed.CanMove()
}

// Passed returns the board with sides swapped and no move applied — the
// pass semantics of spec.md §4.B.
func (b Board) Passed() Board {
	return Board{Player: b.Opponent, Opponent: b.Player}
}

// Apply plays move m (a square 0..63, or Pass) for the side to move and
// returns the resulting board. It does not validate legality beyond
// recomputing flips; playing an illegal square silently yields flipped==0.
// Search internals only ever call Apply with moves taken from LegalMoves,
// and the shell checks a ponder square against the legal move list first.
func (b Board) Apply(square int) Board {
	if square == Pass {
		return b.Passed()
	}
	flipped := GenerateFlips(b.Player, b.Opponent, square)
	return Board{
		Player:   b.Opponent ^ flipped,
		Opponent: b.Player ^ flipped ^ (uint64(1) << uint(square)),
	}
}

// FinalScore returns the final disc difference (player minus opponent)
// with all empty squares credited to whichever side holds more discs (a
// tie on a completed board credits neither).
func (b Board) FinalScore() int {
	p := bitboard.PopCount(b.Player)
	o := bitboard.PopCount(b.Opponent)
	empties := 64 - p - o
	switch {
	case p > o:
		return p - o + empties
	case p < o:
		return p - o - empties
	default:
		return 0
	}
}

// SetFromString parses the 65-character diagram format: 64 characters of
// {O,X,-} (O=black, X=white, -=empty) followed by a side-to-move marker
// {O,X}. Board.Player/Opponent carry no absolute color (only side to
// move), so the black/white identity needed to re-render the diagram is
// returned alongside it as blackToMove.
func SetFromString(diagram string) (b Board, blackToMove bool, err error) {
	if len(diagram) != 65 {
		return Board{}, false, fmt.Errorf("%w: want 65 chars, got %d", ErrBadBoard, len(diagram))
	}
	var black, white uint64
	for sq := 0; sq < 64; sq++ {
		switch diagram[sq] {
		case 'O', 'o', 'b', 'B':
			black |= uint64(1) << uint(sq)
		case 'X', 'x', 'w', 'W':
			white |= uint64(1) << uint(sq)
		case '-', '.':
			// empty
		default:
			return Board{}, false, fmt.Errorf("%w: bad square char %q", ErrBadBoard, diagram[sq])
		}
	}
	switch diagram[64] {
	case 'O', 'o', 'b', 'B':
		return Board{Player: black, Opponent: white}, true, nil
	case 'X', 'x', 'w', 'W':
		return Board{Player: white, Opponent: black}, false, nil
	default:
		return Board{}, false, fmt.Errorf("%w: bad side-to-move char %q", ErrBadBoard, diagram[64])
	}
}

// String renders the 65-character diagram format, the inverse of
// SetFromString. blackToMove says whether b.Player currently holds the
// black discs (true) or the white discs (false).
func (b Board) String(blackToMove bool) string {
	black, white := b.Player, b.Opponent
	if !blackToMove {
		black, white = white, black
	}
	var sb strings.Builder
	sb.Grow(65)
	for sq := 0; sq < 64; sq++ {
		bit := uint64(1) << uint(sq)
		switch {
		case black&bit != 0:
			sb.WriteByte('O')
		case white&bit != 0:
			sb.WriteByte('X')
		default:
			sb.WriteByte('-')
		}
	}
	if blackToMove {
		sb.WriteByte('O')
	} else {
		sb.WriteByte('X')
	}
	return sb.String()
}
