package chess

import (
	"errors"
	"testing"
)

func TestNewSquare(t *testing.T) {
	tests := []struct {
		name    string
		file    int
		rank    int
		wantErr bool
	}{
		{name: "a1", file: 1, rank: 1},
		{name: "h8", file: 8, rank: 8},
		{name: "file too small", file: 0, rank: 4, wantErr: true},
		{name: "file too large", file: 9, rank: 4, wantErr: true},
		{name: "rank too small", file: 4, rank: 0, wantErr: true},
		{name: "rank too large", file: 4, rank: 9, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sq, err := NewSquare(tt.file, tt.rank)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfRange) {
					t.Fatalf("want ErrOutOfRange, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sq.File != tt.file || sq.Rank != tt.rank {
				t.Fatalf("got %+v", sq)
			}
		})
	}
}

func TestParseSquare(t *testing.T) {
	sq, err := ParseSquare("e4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sq.File != 5 || sq.Rank != 4 {
		t.Fatalf("e4 parsed as %+v", sq)
	}

	for _, bad := range []string{"", "e", "e44", "i4", "e9", "44", "4e"} {
		if _, err := ParseSquare(bad); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseSquare(%q): want ErrInvalidNotation, got %v", bad, err)
		}
	}
}

func TestSquareOffset(t *testing.T) {
	e4 := Square{File: 5, Rank: 4}

	sq, ok := e4.Offset(1, 1)
	if !ok || sq != (Square{File: 6, Rank: 5}) {
		t.Fatalf("e4+(1,1) = %v, %v", sq, ok)
	}

	if _, ok := (Square{File: 1, Rank: 1}).Offset(-1, 0); ok {
		t.Fatal("a1+(-1,0) should fall off the board")
	}
	if _, ok := (Square{File: 8, Rank: 8}).Offset(0, 1); ok {
		t.Fatal("h8+(0,1) should fall off the board")
	}
}

func TestSquareString(t *testing.T) {
	if got := (Square{File: 5, Rank: 4}).String(); got != "e4" {
		t.Fatalf("got %q", got)
	}
	if got := (Square{}).String(); got != "-" {
		t.Fatalf("invalid square renders %q, want -", got)
	}
}

func TestSquareRoundTripIndex(t *testing.T) {
	for i := 0; i < 64; i++ {
		sq := squareAt(i)
		if !sq.Valid() {
			t.Fatalf("squareAt(%d) invalid", i)
		}
		if sq.index() != i {
			t.Fatalf("index round trip: %d -> %v -> %d", i, sq, sq.index())
		}
	}
}
