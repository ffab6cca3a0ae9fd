package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/chessline/chessline-backend/internal/chess"
	"github.com/chessline/chessline-backend/internal/game"
	"github.com/chessline/chessline-backend/internal/serialize"
	"github.com/chessline/chessline-backend/internal/service"
	"github.com/chessline/chessline-backend/internal/timeline"
	"github.com/chessline/chessline-backend/internal/ws"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

// statusForError maps service/engine failures onto HTTP statuses. Illegal
// moves are expected outcomes of speculative play, not server faults.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrGameEnded),
		errors.Is(err, game.ErrPromotionPending),
		errors.Is(err, game.ErrNoPendingPromotion),
		errors.Is(err, chess.ErrOutOfRange),
		errors.Is(err, chess.ErrInvalidNotation),
		errors.Is(err, timeline.ErrOutOfRange),
		errors.Is(err, serialize.ErrParse):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func errorJSON(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) ImportGame(c *fiber.Ctx) error {
	var body struct {
		FEN string `json:"fen"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	gameID, err := gc.gameService.ImportFEN(body.FEN)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game imported",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	state, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var move ws.MovePayload
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := gc.gameService.HandleMove(gameID, playerID, move); err != nil {
		if errors.Is(err, game.ErrPromotionPending) {
			return c.JSON(fiber.Map{"status": "promotionPending"})
		}
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (gc *GameController) ElectPromotion(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var body ws.PromotionPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := gc.gameService.HandlePromotion(gameID, playerID, body.Piece); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (gc *GameController) CancelPromotion(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.CancelPromotion(gameID, playerID); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (gc *GameController) ResetToHalfMove(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	var body ws.ResetPayload
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if err := gc.gameService.ResetToHalfMove(gameID, playerID, body.HalfMoveIndex); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (gc *GameController) RestartGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.RestartGame(gameID, playerID); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"status": "ok"})
}

func (gc *GameController) ExportFEN(c *fiber.Ctx) error {
	fen, err := gc.gameService.ExportFEN(c.Params("gameId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"fen": fen})
}

func (gc *GameController) ExportPGN(c *fiber.Ctx) error {
	pgn, err := gc.gameService.ExportPGN(c.Params("gameId"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"pgn": pgn})
}

func (gc *GameController) JoinMatchmaking(c *fiber.Ctx) error {
	playerID := c.Locals("playerID").(string)

	if err := gc.gameService.JoinMatchmaking(playerID); err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(fiber.Map{"status": "queued"})
}
