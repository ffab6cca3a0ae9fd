// Package ws defines the websocket message envelope and payload shapes
// shared by the controllers and the room broadcast code.
package ws

import (
	"encoding/json"
)

// MessageType discriminates the messages flowing over a game socket.
type MessageType string

const (
	// Client -> server commands.
	MessageTypeMove            MessageType = "move"
	MessageTypeElectPromotion  MessageType = "electPromotion"
	MessageTypeCancelPromotion MessageType = "cancelPromotion"
	MessageTypeReset           MessageType = "reset"
	MessageTypeRestart         MessageType = "restart"

	// Server -> client notifications. Each carries a fresh state snapshot;
	// clients re-read it rather than receiving engine internals.
	MessageTypeGameState   MessageType = "gameState"
	MessageTypeGameStarted MessageType = "gameStarted"
	MessageTypeGameEnded   MessageType = "gameEnded"
	MessageTypeResetDone   MessageType = "resetToHalfMove"
	MessageTypeMatchFound  MessageType = "matchFound"
	MessageTypeError       MessageType = "error"
)

// Message is the envelope for every websocket frame.
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload asks for a move between two algebraic squares. Promotion is
// optional; when empty and the move promotes, the server answers with a
// pending-promotion state and waits for an election.
type MovePayload struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

// PromotionPayload elects the piece for a pending promotion.
type PromotionPayload struct {
	Piece string `json:"piece"`
}

// ResetPayload rewinds the game to a half-move index.
type ResetPayload struct {
	HalfMoveIndex int `json:"halfMoveIndex"`
}

// ErrorPayload carries a human-readable failure reason.
type ErrorPayload struct {
	Message string `json:"message"`
}
