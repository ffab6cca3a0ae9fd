package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"

	"github.com/chessline/chessline-backend/internal/chess"
	"github.com/chessline/chessline-backend/internal/game"
	"github.com/chessline/chessline-backend/internal/serialize"
	"github.com/chessline/chessline-backend/internal/ws"
)

const initialClockTime = 600 * time.Second

// roomConnections holds the sockets subscribed to a single room.
type roomConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func newRoomConnections() *roomConnections {
	return &roomConnections{
		connections: make(map[string]*websocket.Conn),
	}
}

// Room pairs one engine Game with two seats, per-side clocks and the
// websocket fan-out. The engine itself is single-threaded; the room mutex
// serializes every command against it.
type Room struct {
	ID          string
	mu          sync.Mutex
	game        *game.Game
	connections *roomConnections
	whiteID     string
	blackID     string
	whiteClock  *Clock
	blackClock  *Clock
}

// NewRoom creates a room around a fresh game.
func NewRoom(id string) *Room {
	return newRoomWithGame(id, game.New())
}

// NewRoomFromGame creates a room around an existing game, e.g. one
// deserialized from FEN.
func NewRoomFromGame(id string, g *game.Game) *Room {
	return newRoomWithGame(id, g)
}

func newRoomWithGame(id string, g *game.Game) *Room {
	r := &Room{
		ID:          id,
		game:        g,
		connections: newRoomConnections(),
		whiteClock:  NewClock(initialClockTime),
		blackClock:  NewClock(initialClockTime),
	}
	g.Subscribe(r.onGameEvent)
	return r
}

// onGameEvent maps engine notifications to websocket broadcasts. Events are
// edge-triggered; every broadcast carries a fresh state snapshot for the
// clients to re-read.
func (r *Room) onGameEvent(e game.Event) {
	// The engine publishes synchronously while the room lock is held, so
	// the fan-out runs on its own goroutine, as a broadcast should.
	switch e.Kind {
	case game.EventGameStarted:
		go r.broadcast(ws.MessageTypeGameStarted)
	case game.EventMoveExecuted:
		go r.broadcast(ws.MessageTypeGameState)
	case game.EventGameEnded:
		go r.broadcast(ws.MessageTypeGameEnded)
	case game.EventResetToHalfMove:
		go r.broadcast(ws.MessageTypeResetDone)
	}
}

// AddPlayer seats a player on the first free side and returns its colour.
func (r *Room) AddPlayer(playerID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.whiteID == "" {
		r.whiteID = playerID
		return chess.White.String(), nil
	}
	if r.blackID == "" {
		r.blackID = playerID
		return chess.Black.String(), nil
	}
	return "", errors.New("game is full")
}

func (r *Room) IsPlayerInGame(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isPlayerInGame(playerID)
}

func (r *Room) isPlayerInGame(playerID string) bool {
	return playerID != "" && (r.whiteID == playerID || r.blackID == playerID)
}

func (r *Room) CanSpectate() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.canSpectate()
}

func (r *Room) canSpectate() bool {
	return r.whiteID == "" || r.blackID == ""
}

// seatSide returns the side the player occupies.
func (r *Room) seatSide(playerID string) (chess.Side, bool) {
	switch playerID {
	case "":
		return chess.White, false
	case r.whiteID:
		return chess.White, true
	case r.blackID:
		return chess.Black, true
	}
	return chess.White, false
}

// MakeMove validates seat ownership and turn order, then drives the engine.
// A promotion that still needs its piece parks inside the engine and is
// reported to the caller via game.ErrPromotionPending.
func (r *Room) MakeMove(playerID string, payload ws.MovePayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	side, seated := r.seatSide(playerID)
	if !seated {
		return errors.New("player not seated in this game")
	}
	if side != r.game.SideToMove() {
		return errors.New("not your turn")
	}

	from, err := chess.ParseSquare(payload.From)
	if err != nil {
		return err
	}
	to, err := chess.ParseSquare(payload.To)
	if err != nil {
		return err
	}
	promotion, err := parsePromotionPiece(payload.Promotion)
	if err != nil {
		return err
	}

	r.clockFor(side).Stop()
	if promotion != chess.NoPiece {
		err = r.game.TryExecuteMoveWithPromotion(from, to, promotion)
	} else {
		err = r.game.TryExecuteMove(from, to)
	}
	if err != nil {
		if !errors.Is(err, game.ErrPromotionPending) {
			r.clockFor(side).Start()
		}
		return err
	}
	r.clockFor(side.Opponent()).Start()
	return nil
}

// ElectPromotion resumes a parked promotion.
func (r *Room) ElectPromotion(playerID string, pieceName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	side, seated := r.seatSide(playerID)
	if !seated {
		return errors.New("player not seated in this game")
	}
	if side != r.game.SideToMove() {
		return errors.New("not your turn")
	}
	piece, err := parsePromotionPiece(pieceName)
	if err != nil {
		return err
	}
	if piece == chess.NoPiece {
		return fmt.Errorf("%w: promotion piece required", game.ErrIllegalMove)
	}
	if err := r.game.ElectPromotion(piece); err != nil {
		return err
	}
	r.clockFor(side.Opponent()).Start()
	return nil
}

// CancelPromotion abandons a parked promotion and restarts the mover's
// clock. Safe to call when nothing is pending.
func (r *Room) CancelPromotion(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	side, seated := r.seatSide(playerID)
	if !seated {
		return errors.New("player not seated in this game")
	}
	if _, pending := r.game.PendingPromotion(); pending && side == r.game.SideToMove() {
		r.game.CancelPromotion()
		r.clockFor(side).Start()
	}
	return nil
}

// ResetToHalfMoveIndex rewinds all three engine timelines in lockstep.
func (r *Room) ResetToHalfMoveIndex(playerID string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isPlayerInGame(playerID) {
		return errors.New("player not seated in this game")
	}
	return r.game.ResetToHalfMoveIndex(index)
}

// Restart wipes history back to the standard starting position.
func (r *Room) Restart(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.isPlayerInGame(playerID) {
		return errors.New("player not seated in this game")
	}
	r.game.Restart()
	r.whiteClock = NewClock(initialClockTime)
	r.blackClock = NewClock(initialClockTime)
	return nil
}

// SerializeFEN exports the current position.
func (r *Room) SerializeFEN() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return serialize.FEN{}.Serialize(r.game)
}

// SerializePGN exports the committed move list.
func (r *Room) SerializePGN() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return serialize.PGN{}.Serialize(r.game)
}

func (r *Room) clockFor(side chess.Side) *Clock {
	if side == chess.White {
		return r.whiteClock
	}
	return r.blackClock
}

// State builds the JSON snapshot the query surface exposes.
func (r *Room) State() StatePayload {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.statePayload()
}

func parsePromotionPiece(name string) (chess.PieceType, error) {
	switch name {
	case "":
		return chess.NoPiece, nil
	case "queen", "q":
		return chess.Queen, nil
	case "rook", "r":
		return chess.Rook, nil
	case "bishop", "b":
		return chess.Bishop, nil
	case "knight", "n":
		return chess.Knight, nil
	}
	return chess.NoPiece, fmt.Errorf("%w: unknown promotion piece %q", game.ErrIllegalMove, name)
}

// RegisterConnection subscribes a socket to the room broadcast. A second
// connection for the same player is rejected in favour of the existing one.
func (r *Room) RegisterConnection(playerID string, conn *websocket.Conn) error {
	r.mu.Lock()
	isAuthorized := r.isPlayerInGame(playerID) || r.canSpectate()
	r.mu.Unlock()

	if !isAuthorized {
		return errors.New("not authorized to join this game")
	}

	r.connections.mu.Lock()
	if _, exists := r.connections.connections[playerID]; exists {
		r.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"Connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	r.connections.connections[playerID] = conn
	r.connections.mu.Unlock()

	go r.broadcast(ws.MessageTypeGameState)
	return nil
}

// UnregisterConnection drops a socket from the broadcast set.
func (r *Room) UnregisterConnection(playerID string) {
	r.connections.mu.Lock()
	defer r.connections.mu.Unlock()
	delete(r.connections.connections, playerID)
}

// broadcast sends the current state snapshot to every registered socket.
// Connections are snapshotted first so writes happen without the room lock.
func (r *Room) broadcast(messageType ws.MessageType) {
	state := r.State()
	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("marshal state: %v", err)
		return
	}

	r.connections.mu.RLock()
	active := make(map[string]*websocket.Conn, len(r.connections.connections))
	for playerID, conn := range r.connections.connections {
		active[playerID] = conn
	}
	r.connections.mu.RUnlock()

	for playerID, conn := range active {
		err := conn.WriteJSON(ws.Message{
			Type:    messageType,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			log.Printf("send state to %s: %v", playerID, err)
			r.connections.mu.Lock()
			delete(r.connections.connections, playerID)
			r.connections.mu.Unlock()
		}
	}
}
