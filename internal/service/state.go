package service

import (
	"github.com/chessline/chessline-backend/internal/chess"
	"github.com/chessline/chessline-backend/internal/serialize"
)

// PiecePayload is one occupied square in a state snapshot.
type PiecePayload struct {
	Square string `json:"square"`
	Type   string `json:"type"`
	Color  string `json:"color"`
}

// LastMovePayload reports the most recent committed half-move.
type LastMovePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
	SAN  string `json:"san"`
}

// StatePayload is the full query-surface snapshot broadcast to clients.
// Everything in it is derived from the engine; clients never see engine
// objects directly.
type StatePayload struct {
	FEN              string           `json:"fen"`
	Pieces           []PiecePayload   `json:"pieces"`
	ToMove           string           `json:"toMove"`
	StartingSide     string           `json:"startingSide"`
	IsCheck          bool             `json:"isCheck"`
	Status           string           `json:"status"`
	MoveHistory      []string         `json:"moveHistory"`
	HalfMoveIndex    int              `json:"halfMoveIndex"`
	HalfMoveCount    int              `json:"halfMoveCount"`
	FullMoveNumber   int              `json:"fullMoveNumber"`
	LastMove         *LastMovePayload `json:"lastMove"`
	PendingPromotion *string          `json:"pendingPromotion"`
	Players          struct {
		White ClientPlayer `json:"white"`
		Black ClientPlayer `json:"black"`
	} `json:"players"`
}

// statePayload builds the snapshot. Callers hold the room lock.
func (r *Room) statePayload() StatePayload {
	g := r.game
	board := g.CurrentBoard()
	cond := g.CurrentConditions()

	state := StatePayload{
		FEN:            serialize.Position(&board, cond),
		ToMove:         g.SideToMove().String(),
		StartingSide:   g.StartingSide().String(),
		IsCheck:        g.InCheck(),
		Status:         g.Status().String(),
		HalfMoveIndex:  g.LatestHalfMoveIndex(),
		HalfMoveCount:  g.HalfMoveCount(),
		FullMoveNumber: g.FullMoveNumber(),
	}

	for _, pp := range g.Pieces() {
		state.Pieces = append(state.Pieces, PiecePayload{
			Square: pp.Square.String(),
			Type:   pp.Piece.Type.String(),
			Color:  pp.Piece.Side.String(),
		})
	}

	state.MoveHistory = make([]string, 0, g.HalfMoveCount())
	for _, record := range g.HalfMoves() {
		state.MoveHistory = append(state.MoveHistory, record.SAN)
	}

	if record, ok := g.LatestHalfMove(); ok {
		state.LastMove = &LastMovePayload{
			From: record.Move.From.String(),
			To:   record.Move.To.String(),
			SAN:  record.SAN,
		}
	}

	if sq, ok := g.PendingPromotion(); ok {
		notation := sq.String()
		state.PendingPromotion = &notation
	}

	state.Players.White = ClientPlayer{
		ID:       r.whiteID,
		Color:    chess.White.String(),
		TimeLeft: int(r.whiteClock.TimeLeft().Milliseconds() / 100),
	}
	state.Players.Black = ClientPlayer{
		ID:       r.blackID,
		Color:    chess.Black.String(),
		TimeLeft: int(r.blackClock.TimeLeft().Milliseconds() / 100),
	}
	return state
}
