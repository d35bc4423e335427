// Package tetris holds the falling-block game state: the settled grid, the
// current piece, collision rules, line clearing and scoring. It has no
// rendering or input dependency; frontends read the state and feed it
// actions and elapsed time.
package tetris

import (
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/Garsondee/Stacker/internal/config"
	"github.com/kamstrup/intmap"
)

// Status is the round state.
type Status int

const (
	StatusRunning Status = iota
	StatusGameOver
)

func (s Status) String() string {
	if s == StatusGameOver {
		return "game_over"
	}
	return "running"
}

// Piece is the falling tetromino. Its shape is replaced on rotation and the
// whole piece is replaced on spawn.
type Piece struct {
	Kind  ShapeKind
	Shape Shape
	Color color.RGBA
}

// State is the single owner of the grid and current piece.
type State struct {
	cfg       config.Config
	grid      *Grid
	piece     Piece
	pos       Position
	status    Status
	score     int
	highScore int
	fallAccum time.Duration

	rng       *rand.Rand
	nextShape func() ShapeKind
	events    *EventLog

	tick   int
	pieces int
	lines  int
	spawns *intmap.Map[ShapeKind, int]
}

// Option configures a State during construction.
type Option func(*State)

// WithSeed seeds the piece RNG for deterministic runs.
func WithSeed(seed int64) Option {
	return func(s *State) {
		s.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- piece selection only
	}
}

// WithRand uses the given RNG for piece selection.
func WithRand(rng *rand.Rand) Option {
	return func(s *State) {
		s.rng = rng
	}
}

// WithShapeSource overrides random selection. The function is called once
// per spawn.
func WithShapeSource(next func() ShapeKind) Option {
	return func(s *State) {
		s.nextShape = next
	}
}

// WithEventLog records game events into l.
func WithEventLog(l *EventLog) Option {
	return func(s *State) {
		s.events = l
	}
}

// Sequence returns a shape source that cycles through kinds in order. With
// no kinds it returns nil, which leaves random selection in place.
func Sequence(kinds ...ShapeKind) func() ShapeKind {
	if len(kinds) == 0 {
		return nil
	}
	i := 0
	return func() ShapeKind {
		k := kinds[i%len(kinds)]
		i++
		return k
	}
}

// New creates a running state with an empty grid and a freshly spawned piece.
func New(cfg config.Config, opts ...Option) *State {
	s := &State{cfg: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- piece selection only
	}
	if s.nextShape == nil {
		s.nextShape = func() ShapeKind { return ShapeKind(s.rng.Intn(ShapeCount)) }
	}
	if s.events == nil {
		s.events = NewEventLog(256)
	}
	s.reset()
	return s
}

func (s *State) reset() {
	s.grid = NewGrid(s.cfg.Rows, s.cfg.Cols)
	s.status = StatusRunning
	s.score = 0
	s.fallAccum = 0
	s.tick = 0
	s.pieces = 0
	s.lines = 0
	s.spawns = intmap.New[ShapeKind, int](ShapeCount)
	s.spawn()
}

// Restart abandons the current round and begins a new one. The high score
// is kept and also absorbs the abandoned round's score.
func (s *State) Restart() {
	if s.score > s.highScore {
		s.highScore = s.score
	}
	s.events.Add(s.tick, CategoryRound, KeyRestart,
		fmt.Sprintf("previous score %d, high %d", s.score, s.highScore), s.score)
	s.reset()
}

func (s *State) Config() config.Config { return s.cfg }
func (s *State) Grid() *Grid           { return s.grid }
func (s *State) Piece() Piece          { return s.piece }
func (s *State) Position() Position    { return s.pos }
func (s *State) Status() Status        { return s.status }
func (s *State) Running() bool         { return s.status == StatusRunning }
func (s *State) Score() int            { return s.score }
func (s *State) HighScore() int        { return s.highScore }
func (s *State) Events() *EventLog     { return s.events }
func (s *State) Ticks() int            { return s.tick }

// PieceCells returns the absolute coordinates covered by the current piece,
// including any still above the visible grid.
func (s *State) PieceCells() []Position {
	cells := s.piece.Shape.Cells()
	for i := range cells {
		cells[i].Row += s.pos.Row
		cells[i].Col += s.pos.Col
	}
	return cells
}

// Fits reports whether shape can occupy pos without colliding.
func (s *State) Fits(shape Shape, pos Position) bool {
	return !collides(s.grid, shape, pos)
}

// collides is true if any occupied cell of shape at pos lies outside the
// columns, at or below the floor, or on a settled cell. Cells above row 0
// are only checked against the column bounds.
func collides(g *Grid, shape Shape, pos Position) bool {
	for r, row := range shape {
		for c, filled := range row {
			if !filled {
				continue
			}
			gr := pos.Row + r
			gc := pos.Col + c
			if gc < 0 || gc >= g.Cols() || gr >= g.Rows() {
				return true
			}
			if gr >= 0 && !g.IsEmptyAt(gr, gc) {
				return true
			}
		}
	}
	return false
}

// Move shifts the piece one column left (-1) or right (+1). A colliding
// move is reverted and reported as not applied.
func (s *State) Move(dir int) bool {
	if s.status != StatusRunning {
		return false
	}
	s.pos.Col += dir
	if collides(s.grid, s.piece.Shape, s.pos) {
		s.pos.Col -= dir
		return false
	}
	return true
}

// Rotate turns the piece 90° clockwise, keeping the original orientation
// if the rotated shape collides. There is no wall-kick search.
func (s *State) Rotate() bool {
	if s.status != StatusRunning {
		return false
	}
	prev := s.piece.Shape
	s.piece.Shape = prev.Rotate()
	if collides(s.grid, s.piece.Shape, s.pos) {
		s.piece.Shape = prev
		return false
	}
	return true
}

// Drop moves the piece down one row. When the piece cannot descend it is
// merged at its last valid position, full rows are cleared and scored, and
// the next piece spawns. It returns true if the piece descended.
func (s *State) Drop() bool {
	if s.status != StatusRunning {
		return false
	}
	if collides(s.grid, s.piece.Shape, s.pos) {
		// Settled cells appeared under the live piece; it cannot be merged.
		s.gameOver()
		return false
	}
	s.pos.Row++
	if !collides(s.grid, s.piece.Shape, s.pos) {
		return true
	}
	s.pos.Row--
	s.merge()
	s.clearLines()
	s.spawn()
	return false
}

// Tick advances the fall timer. Each time the accumulated time reaches the
// fall interval the piece drops one row and the accumulator restarts at zero.
func (s *State) Tick(elapsed time.Duration) {
	if s.status != StatusRunning {
		return
	}
	s.tick++
	s.fallAccum += elapsed
	if s.fallAccum >= s.cfg.FallInterval {
		s.Drop()
		s.fallAccum = 0
	}
}

// merge writes the piece colour into the grid. The position must already be
// collision free.
func (s *State) merge() {
	for _, p := range s.PieceCells() {
		s.grid.Set(p.Row, p.Col, s.piece.Color)
	}
	s.events.Add(s.tick, CategoryPiece, KeyLock,
		fmt.Sprintf("%s at (%d,%d)", s.piece.Kind, s.pos.Row, s.pos.Col), s.pos.Row)
}

func (s *State) clearLines() {
	n := s.grid.ClearFullRows()
	if n == 0 {
		return
	}
	s.lines += n
	s.score += n * s.cfg.LineScore
	s.events.Add(s.tick, CategoryLines, KeyClear, fmt.Sprintf("%d row(s), score %d", n, s.score), n)
}

// spawn places a new random piece at row 0, column Cols/2-1. A piece that
// collides on arrival ends the round.
func (s *State) spawn() {
	k := s.nextShape()
	t := NewTetromino(k)
	s.piece = Piece{Kind: t.Kind, Shape: t.Shape, Color: t.Color}
	s.pos = Position{Row: 0, Col: s.cfg.SpawnCol()}
	s.pieces++
	n, _ := s.spawns.Get(k)
	s.spawns.Put(k, n+1)
	s.events.Add(s.tick, CategoryPiece, KeySpawn, k.String(), s.pieces)
	if collides(s.grid, s.piece.Shape, s.pos) {
		s.gameOver()
	}
}

func (s *State) gameOver() {
	s.status = StatusGameOver
	if s.score > s.highScore {
		s.highScore = s.score
	}
	s.events.Add(s.tick, CategoryRound, KeyGameOver,
		fmt.Sprintf("score %d, high %d", s.score, s.highScore), s.score)
}
