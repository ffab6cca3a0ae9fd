package chess

// IsSquareAttacked reports whether any of bySide's pieces attacks target.
// Sliding rays stop at the first obstruction; knights and kings use fixed
// patterns; pawns attack diagonally only, never straight ahead.
func IsSquareAttacked(b *Board, target Square, bySide Side) bool {
	for _, d := range rookDirs {
		to, ok := target.Offset(d[0], d[1])
		for ok {
			if p := b.At(to); !p.IsEmpty() {
				if p.Side == bySide && (p.Type == Rook || p.Type == Queen) {
					return true
				}
				break
			}
			to, ok = to.Offset(d[0], d[1])
		}
	}
	for _, d := range bishopDirs {
		to, ok := target.Offset(d[0], d[1])
		for ok {
			if p := b.At(to); !p.IsEmpty() {
				if p.Side == bySide && (p.Type == Bishop || p.Type == Queen) {
					return true
				}
				break
			}
			to, ok = to.Offset(d[0], d[1])
		}
	}
	for _, d := range knightDirs {
		if to, ok := target.Offset(d[0], d[1]); ok {
			if p := b.At(to); p.Side == bySide && p.Type == Knight {
				return true
			}
		}
	}
	for _, d := range kingDirs {
		if to, ok := target.Offset(d[0], d[1]); ok {
			if p := b.At(to); p.Side == bySide && p.Type == King {
				return true
			}
		}
	}
	// A pawn on (file±1, rank-dir) attacks target, where dir is the pawn's
	// own forward direction.
	pawnRankOffset := -1
	if bySide == Black {
		pawnRankOffset = 1
	}
	for _, df := range []int{-1, 1} {
		if to, ok := target.Offset(df, pawnRankOffset); ok {
			if p := b.At(to); p.Side == bySide && p.Type == Pawn {
				return true
			}
		}
	}
	return false
}

// IsInCheck reports whether side's king square is attacked by the opponent.
func IsInCheck(b *Board, side Side) bool {
	return IsSquareAttacked(b, b.KingSquare(side), side.Opponent())
}

// MoveObeysRules applies m to a private clone of b and reports whether the
// moving side's king survives unattacked. The live board is never mutated.
func MoveObeysRules(b *Board, m Move) bool {
	mover := b.At(m.From).Side
	sim := b.Clone()
	if m.Kind == MovePromotion && m.Promotion == NoPiece {
		// Legality does not depend on the elected piece; simulate with a
		// queen so the clone keeps a piece on the promotion square.
		m.Promotion = Queen
	}
	sim.Apply(m)
	return !IsInCheck(&sim, mover)
}

// LegalMovesFrom returns the fully legal moves of the piece on from.
func LegalMovesFrom(b *Board, cond GameConditions, from Square) []Move {
	var legal []Move
	for _, m := range CandidateMoves(b, cond, from) {
		if MoveObeysRules(b, m) {
			legal = append(legal, m)
		}
	}
	return legal
}

// AllLegalMoves returns every legal move available to side.
func AllLegalMoves(b *Board, cond GameConditions, side Side) []Move {
	var legal []Move
	for _, pp := range b.Pieces() {
		if pp.Piece.Side != side {
			continue
		}
		legal = append(legal, LegalMovesFrom(b, cond, pp.Square)...)
	}
	return legal
}

func hasLegalMove(b *Board, cond GameConditions, side Side) bool {
	for _, pp := range b.Pieces() {
		if pp.Piece.Side != side {
			continue
		}
		if len(LegalMovesFrom(b, cond, pp.Square)) > 0 {
			return true
		}
	}
	return false
}

// IsCheckmated reports whether side is in check with no legal move.
func IsCheckmated(b *Board, cond GameConditions, side Side) bool {
	return IsInCheck(b, side) && !hasLegalMove(b, cond, side)
}

// IsStalemated reports whether side is not in check yet has no legal move.
// A bare king with nowhere to go stalemates like any other position.
func IsStalemated(b *Board, cond GameConditions, side Side) bool {
	return !IsInCheck(b, side) && !hasLegalMove(b, cond, side)
}
