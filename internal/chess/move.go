package chess

// MoveKind tags the move variants.
type MoveKind uint8

const (
	// MoveNormal is a plain movement from one square to another, capturing
	// whatever occupies the destination.
	MoveNormal MoveKind = iota
	// MoveCastle relocates king and rook together; RookFrom/RookTo carry the
	// rook leg.
	MoveCastle
	// MoveEnPassant captures the pawn on CaptureSquare, which is not the
	// destination square.
	MoveEnPassant
	// MovePromotion replaces the arriving pawn with Promotion. A promotion
	// move with Promotion == NoPiece is unresolved and cannot be committed.
	MovePromotion
)

// Move is one half-move in a form the board can apply directly. The Kind tag
// selects which of the auxiliary fields are meaningful.
type Move struct {
	From Square
	To   Square
	Kind MoveKind

	// Castle leg, set when Kind == MoveCastle.
	RookFrom Square
	RookTo   Square

	// Square of the pawn removed by an en-passant capture, set when
	// Kind == MoveEnPassant.
	CaptureSquare Square

	// Elected piece type, set when Kind == MovePromotion. NoPiece until the
	// caller resolves the election.
	Promotion PieceType
}

// IsResolved reports whether the move can be committed. Only promotion moves
// can be unresolved.
func (m Move) IsResolved() bool {
	return m.Kind != MovePromotion || m.Promotion != NoPiece
}

// capturedSquare returns the square whose occupant this move captures. For
// every kind except en passant that is the destination itself.
func (m Move) capturedSquare() Square {
	if m.Kind == MoveEnPassant {
		return m.CaptureSquare
	}
	return m.To
}
