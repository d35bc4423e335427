package tetris

import (
	"fmt"
	"strings"
)

// Stats is a snapshot of the current round's counters.
type Stats struct {
	Ticks     int
	Pieces    int
	Lines     int
	Score     int
	HighScore int
	Status    Status
	Spawns    [ShapeCount]int // spawn count per ShapeKind
}

// Stats returns the counters for the current round.
func (s *State) Stats() Stats {
	st := Stats{
		Ticks:     s.tick,
		Pieces:    s.pieces,
		Lines:     s.lines,
		Score:     s.score,
		HighScore: s.highScore,
		Status:    s.status,
	}
	for k := ShapeKind(0); k < shapeCount; k++ {
		if n, ok := s.spawns.Get(k); ok {
			st.Spawns[k] = n
		}
	}
	return st
}

// Report renders a plain-text round report: counters, the spawn histogram,
// recent events and the settled grid.
func Report(s *State, recentEvents int) string {
	st := s.Stats()
	var b strings.Builder
	fmt.Fprintf(&b, "--- Stacker round report ---\n")
	fmt.Fprintf(&b, "status=%s ticks=%d pieces=%d lines=%d score=%d high=%d\n",
		st.Status, st.Ticks, st.Pieces, st.Lines, st.Score, st.HighScore)

	b.WriteString("spawns:")
	for k := ShapeKind(0); k < shapeCount; k++ {
		fmt.Fprintf(&b, " %s=%d", k, st.Spawns[k])
	}
	b.WriteString("\n\n")

	events := s.Events().Recent(recentEvents)
	if len(events) > 0 {
		b.WriteString("events:\n")
		for _, e := range events {
			b.WriteString("  ")
			b.WriteString(e.String())
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	b.WriteString("grid:\n")
	b.WriteString(s.Grid().String())
	return b.String()
}
