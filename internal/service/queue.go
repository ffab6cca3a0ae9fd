package service

import (
	"fmt"
	"sync"
	"time"
)

type queuedPlayer struct {
	player   Player
	joinedAt time.Time
}

// Queue is the matchmaking waiting list, ordered by join time.
type Queue struct {
	players []queuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{
		players: []queuedPlayer{},
	}
}

func (q *Queue) AddPlayer(player Player) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.player.ID == player.ID {
			return fmt.Errorf("player already in queue")
		}
	}

	q.players = append(q.players, queuedPlayer{
		player:   player,
		joinedAt: time.Now(),
	})
	return nil
}

// NextPair pops the two players who have been waiting longest.
func (q *Queue) NextPair() (Player, Player) {
	q.mu.Lock()
	defer q.mu.Unlock()

	player1 := q.players[0].player
	player2 := q.players[1].player
	q.players = q.players[2:]

	return player1, player2
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
