package serialize

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/chessline/chessline-backend/internal/chess"
	"github.com/chessline/chessline-backend/internal/game"
)

func TestFENSerializeStartingPosition(t *testing.T) {
	got, err := FEN{}.Serialize(game.New())
	if err != nil {
		t.Fatal(err)
	}
	if got != StartingPositionFEN {
		t.Errorf("FEN = %q, want %q", got, StartingPositionFEN)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartingPositionFEN,
		"rnbqkbnr/pppppppp/8/8/4P3/8/PPPPPPPP/RNBQKBNR b KQkq e3 0 1",
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/P6k/8/8/8/8/8/K7 w - - 0 1",
		"4k3/8/8/8/8/8/8/4K2R b K - 12 40",
	}
	for _, fen := range fens {
		g, err := FEN{}.Deserialize(fen)
		if err != nil {
			t.Errorf("Deserialize(%q): %v", fen, err)
			continue
		}
		got, err := FEN{}.Serialize(g)
		if err != nil {
			t.Errorf("Serialize after %q: %v", fen, err)
			continue
		}
		if diff := cmp.Diff(fen, got); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestFENDeserializeSeedsSingleEntry(t *testing.T) {
	g, err := FEN{}.Deserialize("8/P6k/8/8/8/8/8/K7 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if g.HalfMoveCount() != 1 {
		t.Errorf("HalfMoveCount = %d, want a single seeded entry", g.HalfMoveCount())
	}
	if g.LatestHalfMoveIndex() != 0 {
		t.Errorf("head = %d, want 0", g.LatestHalfMoveIndex())
	}
	if g.SideToMove() != chess.White {
		t.Errorf("side to move = %v, want White", g.SideToMove())
	}
}

func TestFENDeserializeRejectsMalformed(t *testing.T) {
	cases := []struct {
		name string
		fen  string
	}{
		{"empty", ""},
		{"five fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"rank overflow", "rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"rank underflow", "rnbqkbn/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad piece letter", "rnbqkbnx/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"no white king", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQ1BNR w KQkq - 0 1"},
		{"two black kings", "rnbqkknr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1"},
		{"bad castling", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KXkq - 0 1"},
		{"bad en passant", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq j9 0 1"},
		{"negative clock", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1"},
		{"zero full move", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0"},
		{"clock not a number", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := (FEN{}).Deserialize(tc.fen); !errors.Is(err, ErrParse) {
				t.Errorf("err = %v, want ErrParse", err)
			}
		})
	}
}

func TestParsePositionFields(t *testing.T) {
	board, cond, err := ParsePosition("rnbqkbnr/pppppppp/8/8/4P3/8/PPPPPPPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if cond.ToMove != chess.Black {
		t.Errorf("side = %v, want Black", cond.ToMove)
	}
	if want := (chess.Square{File: 5, Rank: 3}); cond.EnPassant != want {
		t.Errorf("en passant = %s, want e3", cond.EnPassant)
	}
	if p := board.At(chess.Square{File: 5, Rank: 4}); p.Type != chess.Pawn || p.Side != chess.White {
		t.Errorf("e4 holds %v, want a white pawn", p)
	}
	if p := board.At(chess.Square{File: 5, Rank: 2}); !p.IsEmpty() {
		t.Errorf("e2 holds %v, want empty", p)
	}
}
