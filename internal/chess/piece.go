package chess

// Side is the colour of a piece or player.
type Side uint8

const (
	White Side = iota
	Black
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// PieceType is the closed set of piece variants. NoPiece is the zero value
// so an empty board slot is simply the zero Piece.
type PieceType uint8

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Letter returns the SAN letter for the piece type. Pawns have no letter.
func (t PieceType) Letter() string {
	switch t {
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return ""
}

// Piece is a piece type plus its owning side. Pieces are immutable values;
// promotion places a new piece, it never rewrites a pawn.
type Piece struct {
	Type PieceType
	Side Side
}

// IsEmpty reports whether this is the zero Piece (an empty slot).
func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

// FENLetter returns the single-letter FEN encoding: uppercase for White,
// lowercase for Black.
func (p Piece) FENLetter() byte {
	var b byte
	switch p.Type {
	case Pawn:
		b = 'p'
	case Knight:
		b = 'n'
	case Bishop:
		b = 'b'
	case Rook:
		b = 'r'
	case Queen:
		b = 'q'
	case King:
		b = 'k'
	default:
		return '?'
	}
	if p.Side == White {
		b -= 'a' - 'A'
	}
	return b
}

// PieceFromFENLetter decodes a FEN piece letter. ok is false for any byte
// that is not one of the twelve legal letters.
func PieceFromFENLetter(b byte) (Piece, bool) {
	side := Black
	if b >= 'A' && b <= 'Z' {
		side = White
		b += 'a' - 'A'
	}
	var t PieceType
	switch b {
	case 'p':
		t = Pawn
	case 'n':
		t = Knight
	case 'b':
		t = Bishop
	case 'r':
		t = Rook
	case 'q':
		t = Queen
	case 'k':
		t = King
	default:
		return Piece{}, false
	}
	return Piece{Type: t, Side: side}, true
}
