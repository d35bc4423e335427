package tetris

import (
	"image/color"
	"testing"
	"time"

	"github.com/Garsondee/Stacker/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gray = color.RGBA{R: 90, G: 90, B: 90, A: 255}

func newTestState(kinds ...ShapeKind) *State {
	return New(config.Default(), WithShapeSource(Sequence(kinds...)))
}

func TestNew_SpawnsAtTopCenter(t *testing.T) {
	s := newTestState(ShapeT)

	assert.True(t, s.Running())
	assert.Equal(t, Position{Row: 0, Col: 4}, s.Position())
	assert.Equal(t, ShapeT, s.Piece().Kind)
	assert.Equal(t, Tetrominoes[ShapeT].Color, s.Piece().Color)
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Grid().Occupied())
	assert.Equal(t, 20, s.Grid().Rows())
	assert.Equal(t, 10, s.Grid().Cols())
}

func TestNew_RandomSpawnsCoverEveryShape(t *testing.T) {
	s := New(config.Default(), WithSeed(3))
	seen := map[ShapeKind]bool{}
	for i := 0; i < 500; i++ {
		seen[s.nextShape()] = true
	}
	assert.Len(t, seen, ShapeCount)
}

func TestMove_StopsAtWalls(t *testing.T) {
	s := newTestState(ShapeI) // spans columns 4..7

	assert.True(t, s.Move(1))
	assert.True(t, s.Move(1))
	assert.False(t, s.Move(1), "column 10 is outside the grid")
	assert.Equal(t, 6, s.Position().Col)

	for i := 0; i < 6; i++ {
		require.True(t, s.Move(-1))
	}
	assert.False(t, s.Move(-1))
	assert.Equal(t, 0, s.Position().Col)
}

func TestMove_ThereAndBack(t *testing.T) {
	for k := ShapeKind(0); k < shapeCount; k++ {
		for _, dir := range []int{-1, 1} {
			s := newTestState(k)
			start := s.Position()
			if s.Move(dir) {
				require.True(t, s.Move(-dir), "%s: reverse move must fit", k)
			}
			assert.Equal(t, start, s.Position(), "%s dir=%d", k, dir)
		}
	}
}

func TestMove_BlockedBySettledCell(t *testing.T) {
	s := newTestState(ShapeO) // columns 4..5, rows 0..1
	s.grid.Set(1, 3, gray)

	before := s.Position()
	assert.False(t, s.Move(-1))
	assert.Equal(t, before, s.Position())
	assert.True(t, s.Move(1))
}

func TestRotate_FourTimesRestoresShape(t *testing.T) {
	for k := ShapeKind(0); k < shapeCount; k++ {
		s := newTestState(k)
		original := s.Piece().Shape.Clone()
		for i := 0; i < 4; i++ {
			require.True(t, s.Rotate(), "%s rotation %d", k, i+1)
		}
		assert.True(t, original.Equal(s.Piece().Shape), "%s", k)
	}
}

func TestRotate_RevertsOnCollision(t *testing.T) {
	s := newTestState(ShapeI)
	for r := 1; r <= 3; r++ {
		s.grid.Set(r, 4, gray)
	}
	before := s.Piece().Shape.Clone()

	assert.False(t, s.Rotate())
	assert.True(t, before.Equal(s.Piece().Shape))
	assert.Equal(t, 1, s.Piece().Shape.Height())
}

func TestRotate_RevertsAtFloor(t *testing.T) {
	s := newTestState(ShapeI)
	for s.Drop() {
	}
	// Rest the next I on top of the first and try to stand it up.
	for i := 0; i < 18; i++ {
		require.True(t, s.Drop())
	}
	assert.Equal(t, 18, s.Position().Row)
	assert.False(t, s.Rotate(), "vertical I would overlap the stack and the floor")
}

func TestCollides_RowsAboveGridOnlyCheckColumns(t *testing.T) {
	g := NewGrid(20, 10)
	vertical := Tetrominoes[ShapeI].Shape.Rotate() // 4x1

	g.Set(2, 0, gray)
	assert.False(t, collides(g, vertical, Position{Row: -2, Col: 0}), "rows -2..1 are clear")

	g.Set(1, 0, gray)
	assert.True(t, collides(g, vertical, Position{Row: -2, Col: 0}))
	assert.False(t, collides(g, vertical, Position{Row: -4, Col: 0}), "fully above the grid")
	assert.True(t, collides(g, vertical, Position{Row: -4, Col: -1}))
	assert.True(t, collides(g, vertical, Position{Row: -4, Col: 10}))
	assert.True(t, collides(g, vertical, Position{Row: 17, Col: 5}), "row 20 is the floor")
}

func TestDrop_IPieceMergesOnBottomRow(t *testing.T) {
	s := newTestState(ShapeI, ShapeO)

	for i := 0; i < 19; i++ {
		require.True(t, s.Drop(), "drop %d", i+1)
	}
	assert.Equal(t, 19, s.Position().Row)
	assert.False(t, s.Drop(), "20th drop hits the floor")

	g := s.Grid()
	for c := 0; c < g.Cols(); c++ {
		if c >= 4 && c <= 7 {
			assert.Equal(t, Tetrominoes[ShapeI].Color, g.At(19, c))
		} else {
			assert.True(t, g.IsEmptyAt(19, c))
		}
	}
	assert.Equal(t, 4, g.Occupied())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, ShapeO, s.Piece().Kind)
	assert.Equal(t, Position{Row: 0, Col: 4}, s.Position())
	assert.True(t, s.Running())
}

func TestDrop_OPieceCompletesRow(t *testing.T) {
	s := newTestState(ShapeO, ShapeT)
	s.grid.FillRow(19, gray, 4, 5)

	for s.Drop() {
	}

	g := s.Grid()
	assert.Equal(t, 100, s.Score())
	assert.Equal(t, 20, g.Rows())
	assert.Empty(t, g.FullRows())
	assert.Equal(t, 2, g.Occupied(), "only the O's upper half survives")
	assert.Equal(t, Tetrominoes[ShapeO].Color, g.At(19, 4))
	assert.Equal(t, Tetrominoes[ShapeO].Color, g.At(19, 5))
	assert.True(t, s.Events().HasEntry(CategoryLines, KeyClear, "1 row"))
}

func TestDrop_TwoMergesCompleteTwoRows(t *testing.T) {
	s := newTestState(ShapeO)
	s.grid.FillRow(19, gray, 2, 3, 4, 5)
	s.grid.FillRow(18, gray, 2, 3, 4, 5)

	for s.Drop() {
	}
	assert.Equal(t, 0, s.Score(), "first O leaves columns 2..3 open")

	require.True(t, s.Move(-1))
	require.True(t, s.Move(-1))
	for s.Drop() {
	}
	assert.Equal(t, 200, s.Score())
	assert.Equal(t, 0, s.Grid().Occupied())
	assert.Equal(t, 20, s.Grid().Rows())
}

func TestDrop_BlockedPieceEndsRoundWithoutMerge(t *testing.T) {
	tests := []struct {
		name      string
		score     int
		highScore int
		wantHigh  int
	}{
		{"previous high kept", 0, 300, 300},
		{"current score wins", 500, 300, 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(ShapeO)
			s.score = tt.score
			s.highScore = tt.highScore
			s.grid.FillRow(0, gray)
			s.grid.FillRow(1, gray)
			occupied := s.Grid().Occupied()

			assert.False(t, s.Drop())
			assert.Equal(t, StatusGameOver, s.Status())
			assert.Equal(t, occupied, s.Grid().Occupied(), "no merge")
			assert.Equal(t, tt.score, s.Score(), "no scoring")
			assert.Equal(t, tt.wantHigh, s.HighScore())
		})
	}
}

func TestSpawn_CollisionEndsRound(t *testing.T) {
	cfg := config.Default()
	cfg.Rows, cfg.Cols = 4, 4
	s := New(cfg, WithShapeSource(Sequence(ShapeO)))

	for s.Running() {
		s.Drop()
	}

	assert.Equal(t, 8, s.Grid().Occupied(), "two O pieces stacked")
	assert.Equal(t, 3, s.Stats().Pieces)
	last, ok := s.Events().LastOf(CategoryRound, KeyGameOver)
	require.True(t, ok)
	assert.Equal(t, 0, last.NumVal)
}

func TestTick_DropsAfterFallInterval(t *testing.T) {
	s := newTestState(ShapeT)

	s.Tick(499 * time.Millisecond)
	assert.Equal(t, 0, s.Position().Row)
	s.Tick(time.Millisecond)
	assert.Equal(t, 1, s.Position().Row)

	s.Tick(250 * time.Millisecond)
	assert.Equal(t, 1, s.Position().Row, "accumulator restarted at zero")
	s.Tick(250 * time.Millisecond)
	assert.Equal(t, 2, s.Position().Row)
}

func TestTick_FrameRateCadence(t *testing.T) {
	s := newTestState(ShapeT)
	frame := s.Config().FrameDuration()
	frames := 0
	for s.Position().Row == 0 {
		s.Tick(frame)
		frames++
	}
	assert.Equal(t, 30, frames, "30 frames at 60 TPS make one 500ms fall step")
}

func TestGameOver_IsTerminal(t *testing.T) {
	s := newTestState(ShapeO)
	s.grid.FillRow(1, gray)
	s.Drop()
	require.Equal(t, StatusGameOver, s.Status())

	grid := s.Grid().String()
	pos := s.Position()
	shape := s.Piece().Shape.Clone()

	assert.False(t, s.Move(-1))
	assert.False(t, s.Move(1))
	assert.False(t, s.Rotate())
	assert.False(t, s.Drop())
	s.Tick(10 * time.Second)
	for _, a := range []Action{ActionLeft, ActionRight, ActionRotate, ActionDrop} {
		assert.False(t, s.Apply(a), "%s", a)
	}

	assert.Equal(t, grid, s.Grid().String())
	assert.Equal(t, pos, s.Position())
	assert.True(t, shape.Equal(s.Piece().Shape))
}

func TestRestart_KeepsHighScore(t *testing.T) {
	s := newTestState(ShapeO)
	s.score = 700
	s.grid.FillRow(1, gray)
	s.Drop()
	require.Equal(t, 700, s.HighScore())

	require.True(t, s.Apply(ActionRestart))
	assert.True(t, s.Running())
	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 700, s.HighScore())
	assert.Equal(t, 0, s.Grid().Occupied())
	assert.Equal(t, Position{Row: 0, Col: 4}, s.Position())
	assert.Equal(t, 1, s.Events().Count(CategoryRound, KeyRestart))
}

func TestSequence_EmptyFallsBackToRandom(t *testing.T) {
	require.Nil(t, Sequence())

	s := New(config.Default(), WithSeed(3), WithShapeSource(Sequence()))
	for i := 0; i < 10 && s.Running(); i++ {
		s.Drop()
	}
	assert.Positive(t, s.Stats().Pieces)
}

func TestApply_DispatchesActions(t *testing.T) {
	s := newTestState(ShapeT)

	assert.True(t, s.Apply(ActionLeft))
	assert.Equal(t, 3, s.Position().Col)
	assert.True(t, s.Apply(ActionRight))
	assert.Equal(t, 4, s.Position().Col)
	assert.True(t, s.Apply(ActionDrop))
	assert.Equal(t, 1, s.Position().Row)
	assert.True(t, s.Apply(ActionRotate))
	assert.Equal(t, 3, s.Piece().Shape.Height())
	assert.False(t, s.Apply(ActionNone))
	assert.False(t, s.Apply(ActionQuit))
	assert.False(t, s.Apply(Action(99)))
}

func TestPieceCells_AreAbsolute(t *testing.T) {
	s := newTestState(ShapeT)
	s.Drop()

	assert.ElementsMatch(t, []Position{
		{Row: 1, Col: 5},
		{Row: 2, Col: 4}, {Row: 2, Col: 5}, {Row: 2, Col: 6},
	}, s.PieceCells())
}
