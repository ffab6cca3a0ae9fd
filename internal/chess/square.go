// Package chess implements the rules core: board representation, move
// generation, legality evaluation and game-condition bookkeeping. It has no
// dependencies on transport or UI code; those layers consume it through the
// game package.
package chess

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange indicates a coordinate or index outside the board.
	ErrOutOfRange = errors.New("chess: coordinate out of range")

	// ErrInvalidNotation indicates malformed algebraic text.
	ErrInvalidNotation = errors.New("chess: invalid notation")
)

// Square is a board coordinate. File and Rank both run 1..8; file 1 is the
// a-file, rank 1 is White's back rank. The zero value is invalid and doubles
// as "no square" (e.g. no en-passant target).
type Square struct {
	File int
	Rank int
}

// NewSquare constructs a validated square.
func NewSquare(file, rank int) (Square, error) {
	sq := Square{File: file, Rank: rank}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("%w: file=%d rank=%d", ErrOutOfRange, file, rank)
	}
	return sq, nil
}

// ParseSquare parses standard algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	file := int(s[0]-'a') + 1
	rank := int(s[1]-'1') + 1
	sq := Square{File: file, Rank: rank}
	if !sq.Valid() {
		return Square{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
	return sq, nil
}

// Valid reports whether the square lies on the board.
func (sq Square) Valid() bool {
	return sq.File >= 1 && sq.File <= 8 && sq.Rank >= 1 && sq.Rank <= 8
}

// Offset returns the square shifted by (df, dr). The result may be off the
// board; ok is false in that case and the returned square must not be used.
func (sq Square) Offset(df, dr int) (Square, bool) {
	out := Square{File: sq.File + df, Rank: sq.Rank + dr}
	return out, out.Valid()
}

// String renders algebraic notation. Invalid squares render as "-", which is
// also how an absent en-passant target appears in FEN.
func (sq Square) String() string {
	if !sq.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", 'a'+sq.File-1, sq.Rank)
}

func (sq Square) index() int {
	return (sq.Rank-1)*8 + sq.File - 1
}

func squareAt(index int) Square {
	return Square{File: index%8 + 1, Rank: index/8 + 1}
}
