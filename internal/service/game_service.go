package service

import (
	"fmt"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/chessline/chessline-backend/internal/serialize"
	"github.com/chessline/chessline-backend/internal/ws"
)

// GameService is the facade the controllers talk to.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateRoom(gameID); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

// ImportFEN creates a new game seeded from a FEN string and returns its ID.
func (gs *GameService) ImportFEN(fen string) (string, error) {
	g, err := serialize.FEN{}.Deserialize(fen)
	if err != nil {
		return "", err
	}
	gameID := uuid.New().String()
	if err := gs.gameManager.CreateRoomFromGame(gameID, g); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}
	return gameID, nil
}

func (gs *GameService) JoinGame(gameID, playerID string) (string, error) {
	return gs.gameManager.AddPlayerToRoom(gameID, playerID)
}

func (gs *GameService) JoinMatchmaking(playerID string) error {
	return gs.gameManager.JoinMatchmaking(playerID)
}

func (gs *GameService) GetGameState(gameID string) (StatePayload, error) {
	room, err := gs.gameManager.Room(gameID)
	if err != nil {
		return StatePayload{}, err
	}
	return room.State(), nil
}

func (gs *GameService) HandleMove(gameID, playerID string, move ws.MovePayload) error {
	room, err := gs.gameManager.Room(gameID)
	if err != nil {
		return err
	}
	return room.MakeMove(playerID, move)
}

func (gs *GameService) HandlePromotion(gameID, playerID, piece string) error {
	room, err := gs.gameManager.Room(gameID)
	if err != nil {
		return err
	}
	return room.ElectPromotion(playerID, piece)
}

func (gs *GameService) CancelPromotion(gameID, playerID string) error {
	room, err := gs.gameManager.Room(gameID)
	if err != nil {
		return err
	}
	return room.CancelPromotion(playerID)
}

func (gs *GameService) ResetToHalfMove(gameID, playerID string, index int) error {
	room, err := gs.gameManager.Room(gameID)
	if err != nil {
		return err
	}
	return room.ResetToHalfMoveIndex(playerID, index)
}

func (gs *GameService) RestartGame(gameID, playerID string) error {
	room, err := gs.gameManager.Room(gameID)
	if err != nil {
		return err
	}
	return room.Restart(playerID)
}

func (gs *GameService) ExportFEN(gameID string) (string, error) {
	room, err := gs.gameManager.Room(gameID)
	if err != nil {
		return "", err
	}
	return room.SerializeFEN()
}

func (gs *GameService) ExportPGN(gameID string) (string, error) {
	room, err := gs.gameManager.Room(gameID)
	if err != nil {
		return "", err
	}
	return room.SerializePGN()
}

func (gs *GameService) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, playerID string) {
	gs.gameManager.UnregisterConnection(gameID, playerID)
}

func (gs *GameService) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	return gs.gameManager.RegisterMatchmakingChannel(playerID, ch)
}

func (gs *GameService) UnregisterMatchmakingChannel(playerID string) {
	gs.gameManager.UnregisterMatchmakingChannel(playerID)
}
