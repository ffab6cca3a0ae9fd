package service

// Player identifies a connected participant.
type Player struct {
	ID string
}

// ClientPlayer is the JSON view of a seated player.
type ClientPlayer struct {
	ID       string `json:"name"`
	Color    string `json:"color"`
	TimeLeft int    `json:"timeLeft"`
}

// MatchFoundEvent is sent to a queued player when matchmaking pairs them.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Color  string `json:"color"`
}
