package controller

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/gofiber/websocket/v2"

	"github.com/chessline/chessline-backend/internal/service"
	"github.com/chessline/chessline-backend/internal/ws"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection runs the read loop for one game socket: register with
// the room, dispatch commands until the peer goes away, then clean up.
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Printf("register connection: %v", err)
		c.Close()
		return
	}

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Printf("read error: %v", err)
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Printf("parse error: %v", err)
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Printf("handle %s: %v", msg.Type, err)
			wsc.sendError(c, err.Error())
		}
	}

	wsc.gameService.UnregisterConnection(gameID, playerID)
}

// HandleMatchmaking parks a queued player's socket until the matchmaker
// pairs them, then delivers the match-found event and closes. The channel
// is registered before the wait so a match can never slip between joining
// the queue and listening.
func (wsc *WebSocketController) HandleMatchmaking(c *websocket.Conn) {
	playerID := c.Locals("playerID").(string)

	matchCh := make(chan string, 1)
	if err := wsc.gameService.RegisterMatchmakingChannel(playerID, matchCh); err != nil {
		log.Printf("register matchmaking channel: %v", err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterMatchmakingChannel(playerID)

	// Reads only serve to notice the peer going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case payload, ok := <-matchCh:
		if !ok {
			// Superseded by a newer registration for the same player.
			return
		}
		c.WriteJSON(ws.Message{
			Type:    ws.MessageTypeMatchFound,
			Payload: json.RawMessage(payload),
		})
	case <-gone:
	}
}

func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return err
		}
		return wsc.gameService.HandleMove(gameID, playerID, move)

	case ws.MessageTypeElectPromotion:
		var promotion ws.PromotionPayload
		if err := json.Unmarshal(msg.Payload, &promotion); err != nil {
			return err
		}
		return wsc.gameService.HandlePromotion(gameID, playerID, promotion.Piece)

	case ws.MessageTypeCancelPromotion:
		return wsc.gameService.CancelPromotion(gameID, playerID)

	case ws.MessageTypeReset:
		var reset ws.ResetPayload
		if err := json.Unmarshal(msg.Payload, &reset); err != nil {
			return err
		}
		return wsc.gameService.ResetToHalfMove(gameID, playerID, reset.HalfMoveIndex)

	case ws.MessageTypeRestart:
		return wsc.gameService.RestartGame(gameID, playerID)

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}

func (wsc *WebSocketController) sendError(c *websocket.Conn, errorMsg string) {
	payload, err := json.Marshal(ws.ErrorPayload{Message: errorMsg})
	if err != nil {
		return
	}
	c.WriteJSON(ws.Message{
		Type:    ws.MessageTypeError,
		Payload: json.RawMessage(payload),
	})
}
