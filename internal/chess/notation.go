package chess

import "strings"

// SAN renders the standard algebraic notation of a legal move in the given
// position, without the check/checkmate suffix. The suffix depends on the
// position after the move, so the caller that evaluates the resulting
// position appends "+" or "#" itself.
func SAN(b *Board, cond GameConditions, m Move) string {
	if m.Kind == MoveCastle {
		if m.To.File == 7 {
			return "O-O"
		}
		return "O-O-O"
	}

	piece := b.At(m.From)
	captures := !b.At(m.capturedSquare()).IsEmpty() || m.Kind == MoveEnPassant

	var sb strings.Builder
	if piece.Type == Pawn {
		if captures {
			sb.WriteByte(byte('a' + m.From.File - 1))
			sb.WriteString("x")
		}
		sb.WriteString(m.To.String())
		if m.Kind == MovePromotion && m.Promotion != NoPiece {
			sb.WriteString("=")
			sb.WriteString(m.Promotion.Letter())
		}
		return sb.String()
	}

	sb.WriteString(piece.Type.Letter())
	sb.WriteString(disambiguation(b, cond, m, piece))
	if captures {
		sb.WriteString("x")
	}
	sb.WriteString(m.To.String())
	return sb.String()
}

// disambiguation returns the origin hint needed when another piece of the
// same type and side can also legally reach the destination: file if unique,
// else rank, else both.
func disambiguation(b *Board, cond GameConditions, m Move, piece Piece) string {
	var sameFile, sameRank, ambiguous bool
	for _, pp := range b.Pieces() {
		if pp.Square == m.From || pp.Piece != piece {
			continue
		}
		for _, other := range LegalMovesFrom(b, cond, pp.Square) {
			if other.To != m.To {
				continue
			}
			ambiguous = true
			if pp.Square.File == m.From.File {
				sameFile = true
			}
			if pp.Square.Rank == m.From.Rank {
				sameRank = true
			}
		}
	}
	if !ambiguous {
		return ""
	}
	from := m.From.String()
	switch {
	case !sameFile:
		return from[:1]
	case !sameRank:
		return from[1:]
	default:
		return from
	}
}
