package chess

import (
	"fmt"
	"strings"
)

// PlacedPiece pairs an occupied square with the piece standing on it. It is
// the shape the query surface hands to external collaborators.
type PlacedPiece struct {
	Square Square
	Piece  Piece
}

// Board is a value type: a fixed 64-slot array of pieces plus cached king
// squares. Plain assignment produces a fully independent copy, which is how
// all simulation works; legality checks never touch the live board.
type Board struct {
	squares [64]Piece
	kings   [2]Square
}

// StartingBoard returns the standard initial setup.
func StartingBoard() Board {
	var b Board
	back := []PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for file := 1; file <= 8; file++ {
		b.Place(Square{File: file, Rank: 1}, Piece{Type: back[file-1], Side: White})
		b.Place(Square{File: file, Rank: 2}, Piece{Type: Pawn, Side: White})
		b.Place(Square{File: file, Rank: 7}, Piece{Type: Pawn, Side: Black})
		b.Place(Square{File: file, Rank: 8}, Piece{Type: back[file-1], Side: Black})
	}
	return b
}

// At returns the piece on sq, or the zero Piece for an empty slot.
func (b *Board) At(sq Square) Piece {
	return b.squares[sq.index()]
}

// Place puts a piece on sq, overwriting any occupant, and keeps the king
// cache current.
func (b *Board) Place(sq Square, p Piece) {
	b.squares[sq.index()] = p
	if p.Type == King {
		b.kings[p.Side] = sq
	}
}

// Remove empties sq.
func (b *Board) Remove(sq Square) {
	b.squares[sq.index()] = Piece{}
}

// KingSquare returns the cached square of side's king. A board without a
// king for a side it is asked about is a broken invariant, not bad input.
func (b *Board) KingSquare(side Side) Square {
	sq := b.kings[side]
	if !sq.Valid() || b.At(sq).Type != King {
		panic(fmt.Sprintf("chess: board has no %s king", side))
	}
	return sq
}

// Clone returns an independent deep copy for simulation use.
func (b *Board) Clone() Board {
	return *b
}

// Apply executes a move: the piece leaves From and lands on To, overwriting
// any captured piece, then the kind-specific side effect runs (castle rook
// leg, en-passant pawn removal, promotion piece replacement). Legality is
// not checked here; that is the rules layer's job before Apply is called.
func (b *Board) Apply(m Move) {
	piece := b.At(m.From)
	b.Remove(m.From)
	switch m.Kind {
	case MoveCastle:
		rook := b.At(m.RookFrom)
		b.Remove(m.RookFrom)
		b.Place(m.RookTo, rook)
		b.Place(m.To, piece)
	case MoveEnPassant:
		b.Remove(m.CaptureSquare)
		b.Place(m.To, piece)
	case MovePromotion:
		b.Place(m.To, Piece{Type: m.Promotion, Side: piece.Side})
	default:
		b.Place(m.To, piece)
	}
}

// Pieces enumerates every occupied square, rank 8 down to rank 1, files a-h.
func (b *Board) Pieces() []PlacedPiece {
	out := make([]PlacedPiece, 0, 32)
	for rank := 8; rank >= 1; rank-- {
		for file := 1; file <= 8; file++ {
			sq := Square{File: file, Rank: rank}
			if p := b.At(sq); !p.IsEmpty() {
				out = append(out, PlacedPiece{Square: sq, Piece: p})
			}
		}
	}
	return out
}

// TextArt renders a human-readable grid for debugging. Not part of the
// legality contract.
func (b *Board) TextArt() string {
	var sb strings.Builder
	for rank := 8; rank >= 1; rank-- {
		fmt.Fprintf(&sb, "%d ", rank)
		for file := 1; file <= 8; file++ {
			p := b.At(Square{File: file, Rank: rank})
			if p.IsEmpty() {
				sb.WriteString(" .")
			} else {
				sb.WriteString(" ")
				sb.WriteByte(p.FENLetter())
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("   a b c d e f g h\n")
	return sb.String()
}
