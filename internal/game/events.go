package game

// EventKind enumerates the edge-triggered notifications a Game publishes.
// Observers react by re-reading the query surface; events never carry
// mutable engine objects.
type EventKind uint8

const (
	EventGameStarted EventKind = iota
	EventMoveExecuted
	EventGameEnded
	EventResetToHalfMove
)

func (k EventKind) String() string {
	switch k {
	case EventGameStarted:
		return "gameStarted"
	case EventMoveExecuted:
		return "moveExecuted"
	case EventGameEnded:
		return "gameEnded"
	case EventResetToHalfMove:
		return "resetToHalfMove"
	}
	return "unknown"
}

// Event is one notification. HalfMoveIndex is the timeline head at the time
// the event fired.
type Event struct {
	Kind          EventKind
	HalfMoveIndex int
}

// Subscribe registers an observer callback. Callbacks run synchronously on
// the goroutine that drove the state transition, after the transition has
// fully committed.
func (g *Game) Subscribe(fn func(Event)) {
	g.observers = append(g.observers, fn)
}

func (g *Game) publish(e Event) {
	for _, fn := range g.observers {
		fn(e)
	}
}
