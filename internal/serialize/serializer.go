// Package serialize provides the text codecs for game state. FEN is the
// canonical interchange format; PGN is the move-list-oriented alternative.
// Both sit behind the same contract and read only committed state.
package serialize

import (
	"errors"

	"github.com/chessline/chessline-backend/internal/game"
)

// ErrParse indicates malformed serialized input. Parsing rejects bad input
// at the boundary: no partial Game is ever returned.
var ErrParse = errors.New("serialize: parse error")

// Serializer encodes a game to text and reconstructs one from text.
type Serializer interface {
	Serialize(g *game.Game) (string, error)
	Deserialize(text string) (*game.Game, error)
}

var (
	_ Serializer = FEN{}
	_ Serializer = PGN{}
)
