package chess

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Perft counts the leaf nodes of the legal-move tree to the given depth.
// It is the enumeration primitive an external search would build on, and the
// standard cross-check for move-generator correctness.
func Perft(b *Board, cond GameConditions, depth int) int {
	if depth <= 0 {
		return 1
	}
	side := cond.ToMove
	total := 0
	for _, pp := range b.Pieces() {
		if pp.Piece.Side != side {
			continue
		}
		for _, m := range LegalMovesFrom(b, cond, pp.Square) {
			for _, m := range expandPromotions(m) {
				if depth == 1 {
					total++
					continue
				}
				child := b.Clone()
				child.Apply(m)
				total += Perft(&child, cond.Next(b, m), depth-1)
			}
		}
	}
	return total
}

// PerftParallel splits the root moves across goroutines. Each worker owns a
// private clone, so no board state is shared.
func PerftParallel(ctx context.Context, b *Board, cond GameConditions, depth int) (int, error) {
	if depth <= 1 {
		return Perft(b, cond, depth), nil
	}
	var total atomic.Int64
	g, ctx := errgroup.WithContext(ctx)
	for _, m := range AllLegalMoves(b, cond, cond.ToMove) {
		for _, m := range expandPromotions(m) {
			m := m
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				child := b.Clone()
				child.Apply(m)
				total.Add(int64(Perft(&child, cond.Next(b, m), depth-1)))
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return int(total.Load()), nil
}

// expandPromotions turns an unresolved promotion into its four concrete
// elections; every other move passes through unchanged.
func expandPromotions(m Move) []Move {
	if m.Kind != MovePromotion || m.Promotion != NoPiece {
		return []Move{m}
	}
	out := make([]Move, 0, 4)
	for _, t := range []PieceType{Queen, Rook, Bishop, Knight} {
		p := m
		p.Promotion = t
		out = append(out, p)
	}
	return out
}
