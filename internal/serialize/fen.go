package serialize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chessline/chessline-backend/internal/chess"
	"github.com/chessline/chessline-backend/internal/game"
)

// StartingPositionFEN is the encoding of the standard initial position.
const StartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FEN encodes and decodes Forsyth-Edwards Notation: exactly six
// space-separated fields — piece placement, side to move, castling rights,
// en-passant target, half-move clock, full-move number.
type FEN struct{}

// Serialize renders the game's current position.
func (FEN) Serialize(g *game.Game) (string, error) {
	board := g.CurrentBoard()
	cond := g.CurrentConditions()
	return Position(&board, cond), nil
}

// Position renders a bare board + conditions pair. The serializer and the
// transport payloads share this.
func Position(board *chess.Board, cond chess.GameConditions) string {
	var sb strings.Builder

	for rank := 8; rank >= 1; rank-- {
		empty := 0
		for file := 1; file <= 8; file++ {
			p := board.At(chess.Square{File: file, Rank: rank})
			if p.IsEmpty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(p.FENLetter())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 1 {
			sb.WriteString("/")
		}
	}

	sb.WriteString(" ")
	if cond.ToMove == chess.White {
		sb.WriteString("w")
	} else {
		sb.WriteString("b")
	}

	sb.WriteString(" ")
	sb.WriteString(castlingField(cond.Castling))

	sb.WriteString(" ")
	sb.WriteString(cond.EnPassant.String())

	fmt.Fprintf(&sb, " %d %d", cond.HalfMoveClock, cond.FullMove)
	return sb.String()
}

func castlingField(c chess.CastlingRights) string {
	var sb strings.Builder
	if c.WhiteKingside {
		sb.WriteString("K")
	}
	if c.WhiteQueenside {
		sb.WriteString("Q")
	}
	if c.BlackKingside {
		sb.WriteString("k")
	}
	if c.BlackQueenside {
		sb.WriteString("q")
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// Deserialize reconstructs a game from a FEN string. The resulting game's
// timelines hold a single entry at index 0. Any malformed field fails the
// whole parse.
func (FEN) Deserialize(text string) (*game.Game, error) {
	board, cond, err := ParsePosition(text)
	if err != nil {
		return nil, err
	}
	return game.NewFromPosition(board, cond), nil
}

// ParsePosition decodes a FEN string into a board + conditions pair.
func ParsePosition(text string) (chess.Board, chess.GameConditions, error) {
	var board chess.Board
	var cond chess.GameConditions
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) != 6 {
		return board, cond, fmt.Errorf("%w: want 6 FEN fields, got %d", ErrParse, len(fields))
	}

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != 8 {
		return board, cond, fmt.Errorf("%w: want 8 ranks, got %d", ErrParse, len(ranks))
	}
	kings := map[chess.Side]int{}
	for i, rankText := range ranks {
		rank := 8 - i
		file := 1
		for j := 0; j < len(rankText); j++ {
			ch := rankText[j]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				continue
			}
			piece, ok := chess.PieceFromFENLetter(ch)
			if !ok {
				return board, cond, fmt.Errorf("%w: bad piece letter %q", ErrParse, ch)
			}
			if file > 8 {
				return board, cond, fmt.Errorf("%w: rank %d overflows", ErrParse, rank)
			}
			board.Place(chess.Square{File: file, Rank: rank}, piece)
			if piece.Type == chess.King {
				kings[piece.Side]++
			}
			file++
		}
		if file != 9 {
			return board, cond, fmt.Errorf("%w: rank %d has %d files", ErrParse, rank, file-1)
		}
	}
	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return board, cond, fmt.Errorf("%w: each side needs exactly one king", ErrParse)
	}

	switch fields[1] {
	case "w":
		cond.ToMove = chess.White
	case "b":
		cond.ToMove = chess.Black
	default:
		return board, cond, fmt.Errorf("%w: bad side-to-move %q", ErrParse, fields[1])
	}

	if fields[2] != "-" {
		for i := 0; i < len(fields[2]); i++ {
			switch fields[2][i] {
			case 'K':
				cond.Castling.WhiteKingside = true
			case 'Q':
				cond.Castling.WhiteQueenside = true
			case 'k':
				cond.Castling.BlackKingside = true
			case 'q':
				cond.Castling.BlackQueenside = true
			default:
				return board, cond, fmt.Errorf("%w: bad castling field %q", ErrParse, fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := chess.ParseSquare(fields[3])
		if err != nil {
			return board, cond, fmt.Errorf("%w: bad en-passant field %q", ErrParse, fields[3])
		}
		cond.EnPassant = sq
	}

	clock, err := strconv.Atoi(fields[4])
	if err != nil || clock < 0 {
		return board, cond, fmt.Errorf("%w: bad half-move clock %q", ErrParse, fields[4])
	}
	cond.HalfMoveClock = clock

	fullMove, err := strconv.Atoi(fields[5])
	if err != nil || fullMove < 1 {
		return board, cond, fmt.Errorf("%w: bad full-move number %q", ErrParse, fields[5])
	}
	cond.FullMove = fullMove

	return board, cond, nil
}
