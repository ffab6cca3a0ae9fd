package game_test

import (
	"errors"
	"testing"

	"github.com/chessline/chessline-backend/internal/chess"
	"github.com/chessline/chessline-backend/internal/game"
	"github.com/chessline/chessline-backend/internal/serialize"
	"github.com/chessline/chessline-backend/internal/timeline"
)

func sq(t *testing.T, s string) chess.Square {
	t.Helper()
	out, err := chess.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return out
}

func mustMove(t *testing.T, g *game.Game, from, to string) {
	t.Helper()
	if err := g.TryExecuteMove(sq(t, from), sq(t, to)); err != nil {
		t.Fatalf("move %s-%s: %v", from, to, err)
	}
}

func currentFEN(g *game.Game) string {
	b := g.CurrentBoard()
	return serialize.Position(&b, g.CurrentConditions())
}

func gameFrom(t *testing.T, fen string) *game.Game {
	t.Helper()
	board, cond, err := serialize.ParsePosition(fen)
	if err != nil {
		t.Fatalf("ParsePosition(%q): %v", fen, err)
	}
	return game.NewFromPosition(board, cond)
}

func TestNewGame(t *testing.T) {
	g := game.New()

	if got := currentFEN(g); got != serialize.StartingPositionFEN {
		t.Errorf("FEN = %q, want the starting position", got)
	}
	if g.SideToMove() != chess.White {
		t.Errorf("side to move = %v, want White", g.SideToMove())
	}
	if g.HalfMoveCount() != 1 {
		t.Errorf("HalfMoveCount = %d, want 1 (the starting snapshot)", g.HalfMoveCount())
	}
	if g.Status() != game.StatusActive {
		t.Errorf("Status = %v, want active", g.Status())
	}
	if _, ok := g.LatestHalfMove(); ok {
		t.Error("no half-move should exist before the first move")
	}
}

func TestEveryOpeningMoveSucceeds(t *testing.T) {
	fresh := game.New()
	board := fresh.CurrentBoard()
	moves := chess.AllLegalMoves(&board, fresh.CurrentConditions(), chess.White)
	if len(moves) != 20 {
		t.Fatalf("opening position has %d legal moves, want 20", len(moves))
	}
	for _, m := range moves {
		g := game.New()
		if err := g.TryExecuteMove(m.From, m.To); err != nil {
			t.Errorf("move %s-%s: %v", m.From, m.To, err)
		}
	}
}

func TestExecuteMove(t *testing.T) {
	g := game.New()
	mustMove(t, g, "e2", "e4")

	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPPPPPP/RNBQKBNR b KQkq e3 0 1"
	if got := currentFEN(g); got != want {
		t.Errorf("FEN after e4 = %q, want %q", got, want)
	}
	rec, ok := g.LatestHalfMove()
	if !ok {
		t.Fatal("LatestHalfMove should exist after a move")
	}
	if rec.SAN != "e4" {
		t.Errorf("SAN = %q, want e4", rec.SAN)
	}
	if g.HalfMoveCount() != 2 || g.LatestHalfMoveIndex() != 1 {
		t.Errorf("count = %d, head = %d, want 2 and 1", g.HalfMoveCount(), g.LatestHalfMoveIndex())
	}
}

func TestIllegalMoveChangesNothing(t *testing.T) {
	g := game.New()
	before := currentFEN(g)

	err := g.TryExecuteMove(sq(t, "e2"), sq(t, "e5"))
	if !errors.Is(err, game.ErrIllegalMove) {
		t.Fatalf("err = %v, want ErrIllegalMove", err)
	}
	// Moving the opponent's piece is just as illegal.
	err = g.TryExecuteMove(sq(t, "e7"), sq(t, "e5"))
	if !errors.Is(err, game.ErrIllegalMove) {
		t.Fatalf("err = %v, want ErrIllegalMove", err)
	}
	if got := currentFEN(g); got != before {
		t.Errorf("position changed after rejected moves: %q", got)
	}
	if g.HalfMoveCount() != 1 {
		t.Errorf("HalfMoveCount = %d, want 1", g.HalfMoveCount())
	}
}

func TestFoolsMate(t *testing.T) {
	g := game.New()
	var events []game.EventKind
	g.Subscribe(func(e game.Event) { events = append(events, e.Kind) })

	mustMove(t, g, "f2", "f3")
	mustMove(t, g, "e7", "e5")
	mustMove(t, g, "g2", "g4")
	mustMove(t, g, "d8", "h4")

	rec, ok := g.LatestHalfMove()
	if !ok {
		t.Fatal("LatestHalfMove should exist")
	}
	if rec.SAN != "Qh4#" {
		t.Errorf("SAN = %q, want Qh4#", rec.SAN)
	}
	if !rec.CausedCheckmate || !rec.CausedCheck {
		t.Errorf("record flags = check %v mate %v, want both true", rec.CausedCheck, rec.CausedCheckmate)
	}
	if rec.CausedStalemate {
		t.Error("checkmate must not also report stalemate")
	}
	if g.Status() != game.StatusEnded {
		t.Errorf("Status = %v, want ended", g.Status())
	}
	if err := g.TryExecuteMove(sq(t, "a2"), sq(t, "a3")); !errors.Is(err, game.ErrGameEnded) {
		t.Errorf("move after mate = %v, want ErrGameEnded", err)
	}

	wantEvents := []game.EventKind{
		game.EventMoveExecuted, game.EventMoveExecuted, game.EventMoveExecuted,
		game.EventMoveExecuted, game.EventGameEnded,
	}
	if len(events) != len(wantEvents) {
		t.Fatalf("got %d events, want %d", len(events), len(wantEvents))
	}
	for i, k := range wantEvents {
		if events[i] != k {
			t.Errorf("event %d = %v, want %v", i, events[i], k)
		}
	}
}

func TestPromotionHandshake(t *testing.T) {
	const fen = "8/P6k/8/8/8/8/8/K7 w - - 0 1"

	t.Run("pending then elect", func(t *testing.T) {
		g := gameFrom(t, fen)

		err := g.TryExecuteMove(sq(t, "a7"), sq(t, "a8"))
		if !errors.Is(err, game.ErrPromotionPending) {
			t.Fatalf("err = %v, want ErrPromotionPending", err)
		}
		dest, ok := g.PendingPromotion()
		if !ok || dest != sq(t, "a8") {
			t.Fatalf("PendingPromotion = %s, %v; want a8, true", dest, ok)
		}
		// Nothing is committed while the election is open.
		if g.HalfMoveCount() != 1 {
			t.Errorf("HalfMoveCount = %d, want 1 while pending", g.HalfMoveCount())
		}

		if err := g.ElectPromotion(chess.Rook); err != nil {
			t.Fatalf("ElectPromotion: %v", err)
		}
		rec, _ := g.LatestHalfMove()
		if rec.SAN != "a8=R" {
			t.Errorf("SAN = %q, want a8=R", rec.SAN)
		}
		if _, ok := g.PendingPromotion(); ok {
			t.Error("pending state must be cleared after the election")
		}
	})

	t.Run("cancel is idempotent", func(t *testing.T) {
		g := gameFrom(t, fen)
		if err := g.TryExecuteMove(sq(t, "a7"), sq(t, "a8")); !errors.Is(err, game.ErrPromotionPending) {
			t.Fatal(err)
		}
		g.CancelPromotion()
		g.CancelPromotion()
		if _, ok := g.PendingPromotion(); ok {
			t.Error("pending state should be gone")
		}
		if err := g.ElectPromotion(chess.Queen); !errors.Is(err, game.ErrNoPendingPromotion) {
			t.Errorf("err = %v, want ErrNoPendingPromotion", err)
		}
	})

	t.Run("invalid election piece", func(t *testing.T) {
		g := gameFrom(t, fen)
		if err := g.TryExecuteMove(sq(t, "a7"), sq(t, "a8")); !errors.Is(err, game.ErrPromotionPending) {
			t.Fatal(err)
		}
		if err := g.ElectPromotion(chess.King); !errors.Is(err, game.ErrIllegalMove) {
			t.Errorf("err = %v, want ErrIllegalMove", err)
		}
		if _, ok := g.PendingPromotion(); !ok {
			t.Error("a rejected election must keep the promotion pending")
		}
	})

	t.Run("promotion supplied up front", func(t *testing.T) {
		g := gameFrom(t, fen)
		if err := g.TryExecuteMoveWithPromotion(sq(t, "a7"), sq(t, "a8"), chess.Queen); err != nil {
			t.Fatalf("TryExecuteMoveWithPromotion: %v", err)
		}
		rec, _ := g.LatestHalfMove()
		if rec.SAN != "a8=Q" {
			t.Errorf("SAN = %q, want a8=Q", rec.SAN)
		}
	})
}

func TestResetToHalfMoveIndex(t *testing.T) {
	g := game.New()
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "e7", "e5")
	mustMove(t, g, "g1", "f3")

	if err := g.ResetToHalfMoveIndex(1); err != nil {
		t.Fatalf("ResetToHalfMoveIndex(1): %v", err)
	}
	want := "rnbqkbnr/pppppppp/8/8/4P3/8/PPPPPPPP/RNBQKBNR b KQkq e3 0 1"
	if got := currentFEN(g); got != want {
		t.Errorf("FEN at index 1 = %q, want %q", got, want)
	}
	// Entries beyond the head stay stored until a new move branches off.
	if g.HalfMoveCount() != 4 {
		t.Errorf("HalfMoveCount = %d, want 4 after a pure rewind", g.HalfMoveCount())
	}

	mustMove(t, g, "g8", "f6")
	if g.HalfMoveCount() != 3 {
		t.Errorf("HalfMoveCount = %d, want 3 after branching", g.HalfMoveCount())
	}
	if g.LatestHalfMoveIndex() != 2 {
		t.Errorf("head = %d, want 2", g.LatestHalfMoveIndex())
	}
}

func TestResetBounds(t *testing.T) {
	g := game.New()
	mustMove(t, g, "e2", "e4")
	head := g.LatestHalfMoveIndex()

	for _, i := range []int{-1, 2, 50} {
		if err := g.ResetToHalfMoveIndex(i); !errors.Is(err, timeline.ErrOutOfRange) {
			t.Errorf("ResetToHalfMoveIndex(%d) = %v, want ErrOutOfRange", i, err)
		}
	}
	if g.LatestHalfMoveIndex() != head {
		t.Errorf("head moved to %d after rejected resets", g.LatestHalfMoveIndex())
	}
}

func TestResetReactivatesEndedGame(t *testing.T) {
	g := game.New()
	mustMove(t, g, "f2", "f3")
	mustMove(t, g, "e7", "e5")
	mustMove(t, g, "g2", "g4")
	mustMove(t, g, "d8", "h4")

	if err := g.ResetToHalfMoveIndex(2); err != nil {
		t.Fatal(err)
	}
	if g.Status() != game.StatusActive {
		t.Errorf("Status = %v, want active after rewinding below the mate", g.Status())
	}
	mustMove(t, g, "d2", "d4")
	if g.Status() != game.StatusActive {
		t.Errorf("Status = %v, want active on the new branch", g.Status())
	}
}

func TestCastlingRevocationSurvivesReset(t *testing.T) {
	g := game.New()
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "e7", "e5")
	mustMove(t, g, "e1", "e2")
	mustMove(t, g, "g8", "f6")
	mustMove(t, g, "e2", "e1")
	mustMove(t, g, "f6", "g8")

	if err := g.ResetToHalfMoveIndex(0); err != nil {
		t.Fatal(err)
	}
	// The board is back at the start but White's rights are gone for good.
	cond := g.CurrentConditions()
	if cond.Castling.Kingside(chess.White) || cond.Castling.Queenside(chess.White) {
		t.Error("white rights must stay revoked after the rewind")
	}
	if !cond.Castling.Kingside(chess.Black) || !cond.Castling.Queenside(chess.Black) {
		t.Error("black rights were never revoked")
	}
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w kq - 0 1"
	if got := currentFEN(g); got != want {
		t.Errorf("FEN = %q, want %q", got, want)
	}
}

func TestRestartClearsRevocations(t *testing.T) {
	g := game.New()
	mustMove(t, g, "e2", "e4")
	mustMove(t, g, "e7", "e5")
	mustMove(t, g, "e1", "e2")

	var started bool
	g.Subscribe(func(e game.Event) {
		if e.Kind == game.EventGameStarted {
			started = true
		}
	})
	g.Restart()

	if !started {
		t.Error("Restart must announce GameStarted")
	}
	if got := currentFEN(g); got != serialize.StartingPositionFEN {
		t.Errorf("FEN = %q, want the starting position", got)
	}
	if g.HalfMoveCount() != 1 {
		t.Errorf("HalfMoveCount = %d, want 1", g.HalfMoveCount())
	}
}

func TestLoadedMatePositionIsEnded(t *testing.T) {
	// Fool's mate final position, White to move with no escape.
	g := gameFrom(t, "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if g.Status() != game.StatusEnded {
		t.Errorf("Status = %v, want ended for a loaded mate", g.Status())
	}
	if err := g.TryExecuteMove(sq(t, "a2"), sq(t, "a3")); !errors.Is(err, game.ErrGameEnded) {
		t.Errorf("err = %v, want ErrGameEnded", err)
	}
}

func TestLegalMovesForSquare(t *testing.T) {
	g := game.New()

	if got := len(g.LegalMovesForSquare(sq(t, "b1"))); got != 2 {
		t.Errorf("b1 knight has %d moves, want 2", got)
	}
	if g.LegalMovesForSquare(sq(t, "b8")) != nil {
		t.Error("opponent pieces must yield no moves")
	}
	if g.LegalMovesForSquare(sq(t, "e4")) != nil {
		t.Error("an empty square must yield no moves")
	}
	if g.PieceHasLegalMove(sq(t, "a1")) {
		t.Error("the boxed-in a1 rook has no moves")
	}
}

func TestLoadedRightsWithoutRookCannotCastle(t *testing.T) {
	// The castling field claims a right the board cannot honor.
	g := gameFrom(t, "4k3/8/8/8/8/8/8/4K3 w K - 0 1")
	before := currentFEN(g)

	err := g.TryExecuteMove(sq(t, "e1"), sq(t, "g1"))
	if !errors.Is(err, game.ErrIllegalMove) {
		t.Fatalf("err = %v, want ErrIllegalMove", err)
	}
	if got := currentFEN(g); got != before {
		t.Errorf("position changed after the rejected castle: %q", got)
	}
	if g.HalfMoveCount() != 1 {
		t.Errorf("HalfMoveCount = %d, want 1", g.HalfMoveCount())
	}
}
