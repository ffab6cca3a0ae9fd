package chess

var (
	rookDirs   = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	kingDirs   = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightDirs = [][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
)

// CandidateMoves generates the pseudo-legal moves of the piece on from.
// Candidates deliberately overshoot: they are not yet filtered for leaving
// the mover's own king in check. That filter belongs to the rules layer and
// is applied uniformly there.
func CandidateMoves(b *Board, cond GameConditions, from Square) []Move {
	piece := b.At(from)
	if piece.IsEmpty() {
		return nil
	}
	switch piece.Type {
	case Pawn:
		return pawnCandidates(b, cond, from, piece.Side)
	case Knight:
		return stepCandidates(b, from, piece.Side, knightDirs)
	case Bishop:
		return slideCandidates(b, from, piece.Side, bishopDirs)
	case Rook:
		return slideCandidates(b, from, piece.Side, rookDirs)
	case Queen:
		return slideCandidates(b, from, piece.Side, append(append([][2]int{}, rookDirs...), bishopDirs...))
	case King:
		return kingCandidates(b, cond, from, piece.Side)
	}
	return nil
}

// slideCandidates walks each direction outward one square at a time,
// stopping on the board edge, an own piece (excluded) or an enemy piece
// (included as a capture).
func slideCandidates(b *Board, from Square, side Side, dirs [][2]int) []Move {
	var moves []Move
	for _, d := range dirs {
		to, ok := from.Offset(d[0], d[1])
		for ok {
			occupant := b.At(to)
			if occupant.IsEmpty() {
				moves = append(moves, Move{From: from, To: to})
			} else {
				if occupant.Side != side {
					moves = append(moves, Move{From: from, To: to})
				}
				break
			}
			to, ok = to.Offset(d[0], d[1])
		}
	}
	return moves
}

func stepCandidates(b *Board, from Square, side Side, dirs [][2]int) []Move {
	var moves []Move
	for _, d := range dirs {
		to, ok := from.Offset(d[0], d[1])
		if !ok {
			continue
		}
		if occupant := b.At(to); occupant.IsEmpty() || occupant.Side != side {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

func kingCandidates(b *Board, cond GameConditions, from Square, side Side) []Move {
	moves := stepCandidates(b, from, side, kingDirs)

	// Castling: right intact, the rook actually on its home square, king not
	// currently in check, squares between king and rook empty, every square
	// the king transits (destination included) unattacked. The rook check
	// matters for loaded positions whose castling field overstates reality.
	opp := side.Opponent()
	rank := from.Rank
	rook := Piece{Type: Rook, Side: side}
	if cond.Castling.Kingside(side) && b.At(Square{File: 8, Rank: rank}) == rook && !IsSquareAttacked(b, from, opp) {
		empty := b.At(Square{File: 6, Rank: rank}).IsEmpty() && b.At(Square{File: 7, Rank: rank}).IsEmpty()
		safe := !IsSquareAttacked(b, Square{File: 6, Rank: rank}, opp) && !IsSquareAttacked(b, Square{File: 7, Rank: rank}, opp)
		if empty && safe {
			moves = append(moves, Move{
				From:     from,
				To:       Square{File: 7, Rank: rank},
				Kind:     MoveCastle,
				RookFrom: Square{File: 8, Rank: rank},
				RookTo:   Square{File: 6, Rank: rank},
			})
		}
	}
	if cond.Castling.Queenside(side) && b.At(Square{File: 1, Rank: rank}) == rook && !IsSquareAttacked(b, from, opp) {
		empty := b.At(Square{File: 2, Rank: rank}).IsEmpty() &&
			b.At(Square{File: 3, Rank: rank}).IsEmpty() &&
			b.At(Square{File: 4, Rank: rank}).IsEmpty()
		safe := !IsSquareAttacked(b, Square{File: 4, Rank: rank}, opp) && !IsSquareAttacked(b, Square{File: 3, Rank: rank}, opp)
		if empty && safe {
			moves = append(moves, Move{
				From:     from,
				To:       Square{File: 3, Rank: rank},
				Kind:     MoveCastle,
				RookFrom: Square{File: 1, Rank: rank},
				RookTo:   Square{File: 4, Rank: rank},
			})
		}
	}
	return moves
}

func pawnCandidates(b *Board, cond GameConditions, from Square, side Side) []Move {
	var moves []Move
	dir := 1
	startRank, lastRank := 2, 8
	if side == Black {
		dir = -1
		startRank, lastRank = 7, 1
	}

	appendPawn := func(to Square, kind MoveKind, capture Square) {
		m := Move{From: from, To: to, Kind: kind, CaptureSquare: capture}
		if to.Rank == lastRank {
			// Promotion piece stays unset here; the caller elects it
			// before the move can be committed.
			m.Kind = MovePromotion
		}
		moves = append(moves, m)
	}

	if fwd, ok := from.Offset(0, dir); ok && b.At(fwd).IsEmpty() {
		appendPawn(fwd, MoveNormal, Square{})
		if from.Rank == startRank {
			if fwd2, ok := from.Offset(0, 2*dir); ok && b.At(fwd2).IsEmpty() {
				appendPawn(fwd2, MoveNormal, Square{})
			}
		}
	}
	for _, df := range []int{-1, 1} {
		to, ok := from.Offset(df, dir)
		if !ok {
			continue
		}
		if occupant := b.At(to); !occupant.IsEmpty() && occupant.Side != side {
			appendPawn(to, MoveNormal, Square{})
		}
		if cond.EnPassant.Valid() && to == cond.EnPassant {
			moves = append(moves, Move{
				From:          from,
				To:            to,
				Kind:          MoveEnPassant,
				CaptureSquare: Square{File: to.File, Rank: from.Rank},
			})
		}
	}
	return moves
}
