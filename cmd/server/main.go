package main

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/chessline/chessline-backend/internal/controller"
	"github.com/chessline/chessline-backend/internal/middleware"
	"github.com/chessline/chessline-backend/internal/service"
)

func main() {
	listenAddr := envOr("CHESSLINE_ADDR", ":3000")
	corsOrigin := envOr("CHESSLINE_CORS_ORIGIN", "http://localhost:5173")

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigin,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Services
	gameManager := service.NewGameManager()
	gameService := service.NewGameService(gameManager)

	// Controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)

	// WebSocket notification surface
	app.Use("/ws/*", middleware.EnsurePlayerID())
	app.Get("/ws/matchmaking", websocket.New(func(c *websocket.Conn) {
		wsController.HandleMatchmaking(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{corsOrigin},
	}))
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(func(c *websocket.Conn) {
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         []string{corsOrigin},
	}))

	// REST command/query surface
	api := app.Group("/api", middleware.EnsurePlayerID())

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/matchmaking/join", gameController.JoinMatchmaking)
	gameRoutes.Post("/create", gameController.CreateGame)
	gameRoutes.Post("/import", gameController.ImportGame)
	gameRoutes.Post("/join/:gameId", gameController.JoinGame)
	gameRoutes.Get("/:gameId", gameController.GetGameState)
	gameRoutes.Post("/:gameId/move", gameController.MakeMove)
	gameRoutes.Post("/:gameId/promotion", gameController.ElectPromotion)
	gameRoutes.Delete("/:gameId/promotion", gameController.CancelPromotion)
	gameRoutes.Post("/:gameId/reset", gameController.ResetToHalfMove)
	gameRoutes.Post("/:gameId/restart", gameController.RestartGame)
	gameRoutes.Get("/:gameId/fen", gameController.ExportFEN)
	gameRoutes.Get("/:gameId/pgn", gameController.ExportPGN)

	log.Fatal(app.Listen(listenAddr))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
