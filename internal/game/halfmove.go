package game

import "github.com/chessline/chessline-backend/internal/chess"

// HalfMove is the immutable record of one committed ply: the piece that
// moved, the move itself, the captured piece if any, the derived outcome
// flags and the SAN rendering. Records are created at commit time and never
// touched again.
type HalfMove struct {
	Piece           chess.Piece
	Move            chess.Move
	Captured        chess.Piece
	CausedCheck     bool
	CausedCheckmate bool
	CausedStalemate bool
	SAN             string
}

// Terminal reports whether this ply ended the game.
func (h HalfMove) Terminal() bool {
	return h.CausedCheckmate || h.CausedStalemate
}
