package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"github.com/chessline/chessline-backend/internal/game"
)

// GameManager owns every live room plus the matchmaking machinery.
type GameManager struct {
	rooms            map[string]*Room
	queue            *Queue
	matchingChannels map[string]chan string
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	gm := &GameManager{
		rooms:            make(map[string]*Room),
		queue:            NewQueue(),
		matchingChannels: make(map[string]chan string),
	}

	go gm.processMatchmaking()

	return gm
}

// RegisterMatchmakingChannel subscribes a queued player to the match-found
// notification. A stale channel for the same player is closed first.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	// The channel is not closed here; its creator owns its lifecycle.
	delete(gm.matchingChannels, playerID)
}

// processMatchmaking pairs the two longest-waiting players once a second.
func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		gm.mu.Lock()
		for gm.queue.Size() >= 2 {
			player1, player2 := gm.queue.NextPair()

			roomID := uuid.New().String()
			room := NewRoom(roomID)

			p1Color, err := room.AddPlayer(player1.ID)
			if err != nil {
				log.Printf("matchmaking: seat player: %v", err)
				continue
			}
			p2Color, err := room.AddPlayer(player2.ID)
			if err != nil {
				log.Printf("matchmaking: seat player: %v", err)
				continue
			}
			gm.rooms[roomID] = room

			gm.notifyMatch(player1.ID, MatchFoundEvent{GameID: roomID, Color: p1Color})
			gm.notifyMatch(player2.ID, MatchFoundEvent{GameID: roomID, Color: p2Color})
		}
		gm.mu.Unlock()
	}
}

// notifyMatch sends the match-found event and retires the channel. Callers
// hold the manager lock.
func (gm *GameManager) notifyMatch(playerID string, event MatchFoundEvent) {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("matchmaking: marshal event: %v", err)
		return
	}
	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, playerID)
		close(ch)
	default:
		log.Printf("matchmaking: player %s not listening", playerID)
	}
}

// CreateRoom registers a new room under the given ID.
func (gm *GameManager) CreateRoom(roomID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.rooms[roomID]; exists {
		return errors.New("game already exists")
	}
	gm.rooms[roomID] = NewRoom(roomID)
	return nil
}

// CreateRoomFromGame registers a room around a pre-built engine game.
func (gm *GameManager) CreateRoomFromGame(roomID string, g *game.Game) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.rooms[roomID]; exists {
		return errors.New("game already exists")
	}
	gm.rooms[roomID] = NewRoomFromGame(roomID, g)
	return nil
}

// Room looks up a live room.
func (gm *GameManager) Room(roomID string) (*Room, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	room, exists := gm.rooms[roomID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return room, nil
}

// ErrGameNotFound is returned for lookups of unknown room IDs.
var ErrGameNotFound = errors.New("game not found")

func (gm *GameManager) AddPlayerToRoom(roomID, playerID string) (string, error) {
	room, err := gm.Room(roomID)
	if err != nil {
		return "", err
	}
	return room.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(Player{ID: playerID})
}

func (gm *GameManager) RegisterConnection(roomID, playerID string, conn *websocket.Conn) error {
	room, err := gm.Room(roomID)
	if err != nil {
		return err
	}
	return room.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(roomID, playerID string) {
	room, err := gm.Room(roomID)
	if err != nil {
		return
	}
	room.UnregisterConnection(playerID)
}
