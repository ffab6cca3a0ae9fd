package serialize

import (
	"fmt"
	"strings"

	"github.com/chessline/chessline-backend/internal/chess"
	"github.com/chessline/chessline-backend/internal/game"
)

// PGN encodes a game as Portable Game Notation: a tag-pair section followed
// by numbered SAN movetext and a result token. Deserialization replays the
// movetext against the rules engine, so only legal games parse.
type PGN struct{}

// Serialize renders the committed half-moves up to the current head.
func (PGN) Serialize(g *game.Game) (string, error) {
	var sb strings.Builder

	result := pgnResult(g)
	startBoard := g.StartingBoard()
	startCond := g.StartingConditions()
	startFEN := Position(&startBoard, startCond)

	tags := [][2]string{
		{"Event", "?"},
		{"Site", "?"},
		{"Date", "????.??.??"},
		{"Round", "?"},
		{"White", "?"},
		{"Black", "?"},
		{"Result", result},
	}
	if startFEN != StartingPositionFEN {
		tags = append(tags, [2]string{"SetUp", "1"}, [2]string{"FEN", startFEN})
	}
	for _, tag := range tags {
		fmt.Fprintf(&sb, "[%s %q]\n", tag[0], tag[1])
	}
	sb.WriteString("\n")

	moveNum := startCond.FullMove
	needNumber := true
	if startCond.ToMove == chess.Black {
		fmt.Fprintf(&sb, "%d... ", moveNum)
		needNumber = false
	}
	side := startCond.ToMove
	for _, record := range g.HalfMoves() {
		if needNumber {
			fmt.Fprintf(&sb, "%d. ", moveNum)
		}
		sb.WriteString(record.SAN)
		sb.WriteString(" ")
		if side == chess.Black {
			moveNum++
		}
		needNumber = side == chess.Black
		side = side.Opponent()
	}
	sb.WriteString(result)
	sb.WriteString("\n")
	return sb.String(), nil
}

func pgnResult(g *game.Game) string {
	record, ok := g.LatestHalfMove()
	if !ok || !record.Terminal() {
		return "*"
	}
	if record.CausedStalemate {
		return "1/2-1/2"
	}
	if record.Piece.Side == chess.White {
		return "1-0"
	}
	return "0-1"
}

// Deserialize parses the tag section, then replays every movetext token
// against the legal moves of the evolving position. Any token that matches
// no legal move fails the whole parse; no partial game is returned.
func (PGN) Deserialize(text string) (*game.Game, error) {
	tags, movetext, err := splitPGN(text)
	if err != nil {
		return nil, err
	}

	g := game.New()
	if fen, ok := tags["FEN"]; ok {
		board, cond, err := ParsePosition(fen)
		if err != nil {
			return nil, err
		}
		g = game.NewFromPosition(board, cond)
	}

	for _, token := range movetextTokens(movetext) {
		move, ok := matchSAN(g, token)
		if !ok {
			return nil, fmt.Errorf("%w: no legal move matches %q", ErrParse, token)
		}
		if err := g.TryExecuteMoveWithPromotion(move.From, move.To, move.Promotion); err != nil {
			return nil, fmt.Errorf("%w: replaying %q: %v", ErrParse, token, err)
		}
	}
	return g, nil
}

func splitPGN(text string) (map[string]string, string, error) {
	tags := make(map[string]string)
	var movetext strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") {
			if !strings.HasSuffix(line, "]") {
				return nil, "", fmt.Errorf("%w: bad tag pair %q", ErrParse, line)
			}
			body := strings.TrimSuffix(strings.TrimPrefix(line, "["), "]")
			name, value, found := strings.Cut(body, " ")
			if !found {
				return nil, "", fmt.Errorf("%w: bad tag pair %q", ErrParse, line)
			}
			tags[name] = strings.Trim(strings.TrimSpace(value), `"`)
			continue
		}
		movetext.WriteString(line)
		movetext.WriteString(" ")
	}
	return tags, movetext.String(), nil
}

// movetextTokens strips comments, move numbers, NAGs and result tokens,
// leaving bare SAN tokens in play order.
func movetextTokens(movetext string) []string {
	// Drop {...} comments first; they may contain spaces.
	for {
		open := strings.Index(movetext, "{")
		if open < 0 {
			break
		}
		end := strings.Index(movetext[open:], "}")
		if end < 0 {
			movetext = movetext[:open]
			break
		}
		movetext = movetext[:open] + " " + movetext[open+end+1:]
	}

	var tokens []string
	for _, raw := range strings.Fields(movetext) {
		switch raw {
		case "1-0", "0-1", "1/2-1/2", "*":
			continue
		}
		if strings.HasPrefix(raw, "$") {
			continue
		}
		// "1." / "1..." prefixes may be glued to the move.
		raw = strings.TrimLeft(raw, "0123456789.")
		if raw == "" {
			continue
		}
		tokens = append(tokens, raw)
	}
	return tokens
}

// matchSAN finds the legal move whose SAN equals the token, ignoring
// check/mate/annotation suffixes on both sides.
func matchSAN(g *game.Game, token string) (chess.Move, bool) {
	want := strings.TrimRight(token, "+#!?")
	board := g.CurrentBoard()
	cond := g.CurrentConditions()
	for _, m := range chess.AllLegalMoves(&board, cond, cond.ToMove) {
		for _, resolved := range concretePromotions(m) {
			if chess.SAN(&board, cond, resolved) == want {
				return resolved, true
			}
		}
	}
	return chess.Move{}, false
}

func concretePromotions(m chess.Move) []chess.Move {
	if m.Kind != chess.MovePromotion || m.Promotion != chess.NoPiece {
		return []chess.Move{m}
	}
	out := make([]chess.Move, 0, 4)
	for _, t := range []chess.PieceType{chess.Queen, chess.Rook, chess.Bishop, chess.Knight} {
		p := m
		p.Promotion = t
		out = append(out, p)
	}
	return out
}
