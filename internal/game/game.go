// Package game orchestrates the rules core: it owns the three lockstep
// timelines (boards, conditions, half-move records), validates and commits
// moves, drives the pending-promotion handshake and publishes events to
// registered observers.
package game

import (
	"errors"
	"fmt"

	"github.com/chessline/chessline-backend/internal/chess"
	"github.com/chessline/chessline-backend/internal/timeline"
)

var (
	// ErrIllegalMove is the expected, frequent outcome of speculative move
	// attempts. It is never a panic.
	ErrIllegalMove = errors.New("game: illegal move")

	// ErrGameEnded rejects moves after a terminal half-move.
	ErrGameEnded = errors.New("game: game has ended")

	// ErrPromotionPending is returned when a move resolves to a promotion
	// whose piece has not been elected yet. The move is parked, not
	// committed; elect or cancel to proceed.
	ErrPromotionPending = errors.New("game: promotion piece not yet elected")

	// ErrUnresolvedPromotion rejects committing a promotion with no piece.
	ErrUnresolvedPromotion = errors.New("game: unresolved promotion")

	// ErrNoPendingPromotion is returned by ElectPromotion when nothing is
	// waiting for an election.
	ErrNoPendingPromotion = errors.New("game: no promotion pending")
)

// Status is the game lifecycle state.
type Status uint8

const (
	StatusActive Status = iota
	StatusEnded
)

func (s Status) String() string {
	if s == StatusEnded {
		return "ended"
	}
	return "active"
}

// Game owns three timelines kept in strict lockstep: index i of each refers
// to the same ply. Index 0 is the starting snapshot; ply k lives at index k.
// A Game is not safe for concurrent use; callers serialize access.
type Game struct {
	boards    *timeline.Timeline[chess.Board]
	conds     *timeline.Timeline[chess.GameConditions]
	records   *timeline.Timeline[HalfMove]
	startSide chess.Side
	pending   *chess.Move
	observers []func(Event)

	// revoked accumulates castling rights lost during play. Revocation is
	// permanent: rewinding the head below the revoking ply does not bring
	// a right back. True means revoked.
	revoked chess.CastlingRights
}

// New returns a game at the standard starting position.
func New() *Game {
	return NewFromPosition(chess.StartingBoard(), chess.InitialConditions())
}

// NewFromPosition returns a game seeded with an arbitrary position, e.g.
// one reconstructed from FEN. All three timelines hold a single entry at
// index 0.
func NewFromPosition(board chess.Board, cond chess.GameConditions) *Game {
	g := &Game{
		boards:    timeline.New[chess.Board](),
		conds:     timeline.New[chess.GameConditions](),
		records:   timeline.New[HalfMove](),
		startSide: cond.ToMove,
	}
	g.seed(board, cond)
	return g
}

func (g *Game) seed(board chess.Board, cond chess.GameConditions) {
	start := HalfMove{
		CausedCheck:     chess.IsInCheck(&board, cond.ToMove),
		CausedCheckmate: chess.IsCheckmated(&board, cond, cond.ToMove),
		CausedStalemate: chess.IsStalemated(&board, cond, cond.ToMove),
	}
	g.boards.AddNext(board)
	g.conds.AddNext(cond)
	g.records.AddNext(start)
}

// Restart wipes history and returns the game to the standard starting
// position, announcing GameStarted.
func (g *Game) Restart() {
	g.pending = nil
	g.boards.Clear()
	g.conds.Clear()
	g.records.Clear()
	g.startSide = chess.White
	g.revoked = chess.CastlingRights{}
	g.seed(chess.StartingBoard(), chess.InitialConditions())
	g.publish(Event{Kind: EventGameStarted, HalfMoveIndex: 0})
}

// CurrentBoard returns a copy of the board at the head.
func (g *Game) CurrentBoard() chess.Board {
	b, ok := g.boards.Current()
	if !ok {
		panic("game: board timeline empty")
	}
	return b
}

// CurrentConditions returns the game conditions at the head, with every
// permanently revoked castling right masked off regardless of what the
// stored snapshot says.
func (g *Game) CurrentConditions() chess.GameConditions {
	c, ok := g.conds.Current()
	if !ok {
		panic("game: conditions timeline empty")
	}
	return g.maskRevoked(c)
}

func (g *Game) maskRevoked(c chess.GameConditions) chess.GameConditions {
	if g.revoked.WhiteKingside {
		c.Castling.WhiteKingside = false
	}
	if g.revoked.WhiteQueenside {
		c.Castling.WhiteQueenside = false
	}
	if g.revoked.BlackKingside {
		c.Castling.BlackKingside = false
	}
	if g.revoked.BlackQueenside {
		c.Castling.BlackQueenside = false
	}
	return c
}

// recordRevocations marks every right that is absent after a commit. A
// right that is false can never come back, so recording "false implies
// revoked" is exact.
func (g *Game) recordRevocations(c chess.GameConditions) {
	if !c.Castling.WhiteKingside {
		g.revoked.WhiteKingside = true
	}
	if !c.Castling.WhiteQueenside {
		g.revoked.WhiteQueenside = true
	}
	if !c.Castling.BlackKingside {
		g.revoked.BlackKingside = true
	}
	if !c.Castling.BlackQueenside {
		g.revoked.BlackQueenside = true
	}
}

func (g *Game) currentRecord() HalfMove {
	r, ok := g.records.Current()
	if !ok {
		panic("game: record timeline empty")
	}
	return r
}

// StartingBoard returns the board of the seeded position at index 0.
func (g *Game) StartingBoard() chess.Board {
	b, ok := g.boards.At(0)
	if !ok {
		panic("game: board timeline empty")
	}
	return b
}

// StartingConditions returns the conditions of the seeded position.
func (g *Game) StartingConditions() chess.GameConditions {
	c, ok := g.conds.At(0)
	if !ok {
		panic("game: conditions timeline empty")
	}
	return c
}

// SideToMove returns whose turn it is at the head.
func (g *Game) SideToMove() chess.Side {
	return g.CurrentConditions().ToMove
}

// StartingSide returns the side to move in the seeded position.
func (g *Game) StartingSide() chess.Side {
	return g.startSide
}

// FullMoveNumber returns the full-move counter at the head.
func (g *Game) FullMoveNumber() int {
	return g.CurrentConditions().FullMove
}

// InCheck reports whether the side to move is in check.
func (g *Game) InCheck() bool {
	return g.currentRecord().CausedCheck
}

// Status derives the lifecycle state from the head record, so rewinding
// below a terminal ply reactivates the game.
func (g *Game) Status() Status {
	if g.currentRecord().Terminal() {
		return StatusEnded
	}
	return StatusActive
}

// HalfMoveCount returns the number of timeline entries, the starting
// snapshot included.
func (g *Game) HalfMoveCount() int {
	return g.records.Len()
}

// LatestHalfMoveIndex returns the head index.
func (g *Game) LatestHalfMoveIndex() int {
	return g.records.Head()
}

// LatestHalfMove returns the record at the head. ok is false at index 0,
// where only the starting snapshot exists.
func (g *Game) LatestHalfMove() (HalfMove, bool) {
	if g.records.Head() <= 0 {
		return HalfMove{}, false
	}
	return g.currentRecord(), true
}

// HalfMoves returns the committed records up to the head, oldest first,
// excluding the starting snapshot.
func (g *Game) HalfMoves() []HalfMove {
	out := make([]HalfMove, 0, g.records.Head())
	for i := 1; i <= g.records.Head(); i++ {
		r, _ := g.records.At(i)
		out = append(out, r)
	}
	return out
}

// Pieces enumerates the current board contents.
func (g *Game) Pieces() []chess.PlacedPiece {
	b := g.CurrentBoard()
	return b.Pieces()
}

// LegalMovesForSquare returns the legal moves of the piece on sq. A square
// holding no piece of the side to move yields nothing.
func (g *Game) LegalMovesForSquare(sq chess.Square) []chess.Move {
	b := g.CurrentBoard()
	if p := b.At(sq); p.IsEmpty() || p.Side != g.SideToMove() {
		return nil
	}
	return chess.LegalMovesFrom(&b, g.CurrentConditions(), sq)
}

// PieceHasLegalMove reports whether the piece on sq has at least one legal
// move right now.
func (g *Game) PieceHasLegalMove(sq chess.Square) bool {
	return len(g.LegalMovesForSquare(sq)) > 0
}

// TryGetLegalMove resolves a (from, to) pair into a concrete move. The
// result may be an unresolved promotion whose piece the caller still has to
// elect.
func (g *Game) TryGetLegalMove(from, to chess.Square) (chess.Move, bool) {
	for _, m := range g.LegalMovesForSquare(from) {
		if m.To == to {
			return m, true
		}
	}
	return chess.Move{}, false
}

// TryExecuteMove validates and commits the move between two squares. An
// illegal pair fails with ErrIllegalMove and zero state change. A move that
// needs a promotion election parks the move and returns ErrPromotionPending;
// the timelines stay untouched until ElectPromotion resumes the commit.
func (g *Game) TryExecuteMove(from, to chess.Square) error {
	return g.executeMove(from, to, chess.NoPiece)
}

// TryExecuteMoveWithPromotion is TryExecuteMove with the promotion piece
// already resolved, for callers that collect the election up front.
func (g *Game) TryExecuteMoveWithPromotion(from, to chess.Square, promotion chess.PieceType) error {
	return g.executeMove(from, to, promotion)
}

func (g *Game) executeMove(from, to chess.Square, promotion chess.PieceType) error {
	if g.Status() == StatusEnded {
		return ErrGameEnded
	}
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: %s-%s", chess.ErrOutOfRange, from, to)
	}
	g.pending = nil
	m, ok := g.TryGetLegalMove(from, to)
	if !ok {
		return fmt.Errorf("%w: %s-%s", ErrIllegalMove, from, to)
	}
	if m.Kind == chess.MovePromotion && promotion != chess.NoPiece {
		if !validPromotionPiece(promotion) {
			return fmt.Errorf("%w: cannot promote to %s", ErrIllegalMove, promotion)
		}
		m.Promotion = promotion
	}
	if !m.IsResolved() {
		g.pending = &m
		return ErrPromotionPending
	}
	return g.commit(m)
}

// PendingPromotion returns the destination square of the parked promotion,
// if any.
func (g *Game) PendingPromotion() (chess.Square, bool) {
	if g.pending == nil {
		return chess.Square{}, false
	}
	return g.pending.To, true
}

// ElectPromotion supplies the piece for the parked promotion and resumes
// the commit.
func (g *Game) ElectPromotion(piece chess.PieceType) error {
	if g.pending == nil {
		return ErrNoPendingPromotion
	}
	if !validPromotionPiece(piece) {
		return fmt.Errorf("%w: cannot promote to %s", ErrIllegalMove, piece)
	}
	m := *g.pending
	m.Promotion = piece
	g.pending = nil
	return g.commit(m)
}

// CancelPromotion abandons the parked promotion. It is idempotent and
// leaves the game exactly as it was before the move attempt began.
func (g *Game) CancelPromotion() {
	g.pending = nil
}

func validPromotionPiece(t chess.PieceType) bool {
	switch t {
	case chess.Queen, chess.Rook, chess.Bishop, chess.Knight:
		return true
	}
	return false
}

// commit applies a fully resolved legal move to cloned state, derives the
// successor conditions and the half-move record, and appends to all three
// timelines as one unit. AddNext prunes any rewound future in lockstep.
func (g *Game) commit(m chess.Move) error {
	if !m.IsResolved() {
		return ErrUnresolvedPromotion
	}
	before := g.CurrentBoard()
	cond := g.CurrentConditions()

	piece := before.At(m.From)
	capSq := m.To
	if m.Kind == chess.MoveEnPassant {
		capSq = m.CaptureSquare
	}
	captured := before.At(capSq)

	next := before.Clone()
	next.Apply(m)
	nextCond := cond.Next(&before, m)

	opponent := piece.Side.Opponent()
	record := HalfMove{
		Piece:           piece,
		Move:            m,
		Captured:        captured,
		CausedCheck:     chess.IsInCheck(&next, opponent),
		CausedCheckmate: chess.IsCheckmated(&next, nextCond, opponent),
		CausedStalemate: chess.IsStalemated(&next, nextCond, opponent),
	}
	san := chess.SAN(&before, cond, m)
	if record.CausedCheckmate {
		san += "#"
	} else if record.CausedCheck {
		san += "+"
	}
	record.SAN = san

	g.boards.AddNext(next)
	g.conds.AddNext(nextCond)
	g.records.AddNext(record)
	g.recordRevocations(nextCond)

	g.publish(Event{Kind: EventMoveExecuted, HalfMoveIndex: g.records.Head()})
	if record.Terminal() {
		g.publish(Event{Kind: EventGameEnded, HalfMoveIndex: g.records.Head()})
	}
	return nil
}

// ResetToHalfMoveIndex moves all three timeline heads to index i without
// replay; every intermediate state was stored at commit time. Indices
// outside [0, HalfMoveCount-1] fail and change nothing.
func (g *Game) ResetToHalfMoveIndex(i int) error {
	if i < 0 || i >= g.records.Len() {
		return fmt.Errorf("%w: half-move index %d", timeline.ErrOutOfRange, i)
	}
	g.pending = nil
	if err := g.boards.SetHead(i); err != nil {
		return err
	}
	if err := g.conds.SetHead(i); err != nil {
		return err
	}
	if err := g.records.SetHead(i); err != nil {
		return err
	}
	g.publish(Event{Kind: EventResetToHalfMove, HalfMoveIndex: i})
	return nil
}
