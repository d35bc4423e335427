package tetris

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStats_CountsSpawnsPerShape(t *testing.T) {
	s := newTestState(ShapeI, ShapeT, ShapeT)
	for s.Stats().Pieces < 4 {
		s.Drop()
	}

	st := s.Stats()
	assert.Equal(t, 2, st.Spawns[ShapeI])
	assert.Equal(t, 2, st.Spawns[ShapeT])
	assert.Equal(t, 0, st.Spawns[ShapeO])
	assert.Equal(t, StatusRunning, st.Status)
}

func TestStats_ResetOnRestart(t *testing.T) {
	s := newTestState(ShapeO)
	for s.Stats().Pieces < 3 {
		s.Drop()
	}
	s.Restart()

	st := s.Stats()
	assert.Equal(t, 1, st.Pieces)
	assert.Equal(t, 1, st.Spawns[ShapeO])
	assert.Equal(t, 0, st.Ticks)
}

func TestReport_IncludesCountersEventsAndGrid(t *testing.T) {
	s := newTestState(ShapeO)
	s.grid.FillRow(19, gray, 4, 5)
	for s.Drop() {
	}

	out := Report(s, 10)
	assert.Contains(t, out, "status=running")
	assert.Contains(t, out, "score=100")
	assert.Contains(t, out, "O=2")
	assert.Contains(t, out, "lines  clear")
	assert.True(t, strings.HasSuffix(out, "....##....\n"), out)
}
