package chess

// CastlingRights tracks the four independent per-side, per-wing flags. Once
// revoked a right never returns, even if history is rewound and replayed.
type CastlingRights struct {
	WhiteKingside  bool
	WhiteQueenside bool
	BlackKingside  bool
	BlackQueenside bool
}

func allCastlingRights() CastlingRights {
	return CastlingRights{
		WhiteKingside:  true,
		WhiteQueenside: true,
		BlackKingside:  true,
		BlackQueenside: true,
	}
}

// Kingside reports the kingside flag for side.
func (c CastlingRights) Kingside(side Side) bool {
	if side == White {
		return c.WhiteKingside
	}
	return c.BlackKingside
}

// Queenside reports the queenside flag for side.
func (c CastlingRights) Queenside(side Side) bool {
	if side == White {
		return c.WhiteQueenside
	}
	return c.BlackQueenside
}

func (c *CastlingRights) revokeKingside(side Side) {
	if side == White {
		c.WhiteKingside = false
	} else {
		c.BlackKingside = false
	}
}

func (c *CastlingRights) revokeQueenside(side Side) {
	if side == White {
		c.WhiteQueenside = false
	} else {
		c.BlackQueenside = false
	}
}

// GameConditions is the non-board half of a position: whose turn it is,
// castling rights, the en-passant target (zero Square when absent), the
// half-move clock and the full-move number.
type GameConditions struct {
	ToMove        Side
	Castling      CastlingRights
	EnPassant     Square
	HalfMoveClock int
	FullMove      int
}

// InitialConditions returns the conditions of a fresh game.
func InitialConditions() GameConditions {
	return GameConditions{
		ToMove:   White,
		Castling: allCastlingRights(),
		FullMove: 1,
	}
}

// rookHome returns the starting corner squares for side's rooks.
func rookHome(side Side) (queenside, kingside Square) {
	rank := 1
	if side == Black {
		rank = 8
	}
	return Square{File: 1, Rank: rank}, Square{File: 8, Rank: rank}
}

// Next derives the successor conditions from the position the move was
// played in. before is the board prior to Apply; m is the executed move.
func (c GameConditions) Next(before *Board, m Move) GameConditions {
	moved := before.At(m.From)
	captured := before.At(m.capturedSquare())

	next := c
	next.ToMove = c.ToMove.Opponent()
	next.EnPassant = Square{}

	// Castling rights go away with the king, with the specific rook, or
	// with the capture of that rook on its home square.
	switch moved.Type {
	case King:
		next.Castling.revokeKingside(moved.Side)
		next.Castling.revokeQueenside(moved.Side)
	case Rook:
		qs, ks := rookHome(moved.Side)
		if m.From == qs {
			next.Castling.revokeQueenside(moved.Side)
		} else if m.From == ks {
			next.Castling.revokeKingside(moved.Side)
		}
	}
	if captured.Type == Rook {
		qs, ks := rookHome(captured.Side)
		if m.capturedSquare() == qs {
			next.Castling.revokeQueenside(captured.Side)
		} else if m.capturedSquare() == ks {
			next.Castling.revokeKingside(captured.Side)
		}
	}

	// En-passant target lives for exactly one reply after a double push.
	if moved.Type == Pawn && (m.To.Rank-m.From.Rank == 2 || m.From.Rank-m.To.Rank == 2) {
		next.EnPassant = Square{File: m.From.File, Rank: (m.From.Rank + m.To.Rank) / 2}
	}

	if moved.Type == Pawn || !captured.IsEmpty() {
		next.HalfMoveClock = 0
	} else {
		next.HalfMoveClock = c.HalfMoveClock + 1
	}

	if c.ToMove == Black {
		next.FullMove = c.FullMove + 1
	}
	return next
}
