package tetris

// Weights scores a candidate landing. Positive weights reward a feature,
// negative weights penalize it.
type Weights struct {
	Lines     float64
	Height    float64
	Holes     float64
	Bumpiness float64
}

// DefaultWeights favour clearing lines while keeping the stack low and flat.
var DefaultWeights = Weights{Lines: 0.76, Height: -0.51, Holes: -0.36, Bumpiness: -0.18}

// toppedOutPenalty marks landings that leave cells above the grid.
const toppedOutPenalty = -1e6

// Autopilot plays the game through the same actions a player would send.
// For each new piece it picks the rotation and column with the best
// landing score, then emits rotations, horizontal moves and drops, one
// action per call.
type Autopilot struct {
	Weights Weights

	plan        []Action
	plannedGrid *Grid
	plannedFor  int
}

// NewAutopilot creates an autopilot using DefaultWeights.
func NewAutopilot() *Autopilot {
	return &Autopilot{Weights: DefaultWeights}
}

// Placement is a chosen target for the current piece.
type Placement struct {
	Rotations int
	Col       int
	Row       int
	Score     float64
}

// Next returns the next action for s. Once the planned rotations and moves
// are spent it keeps dropping until the piece locks.
func (a *Autopilot) Next(s *State) Action {
	if !s.Running() {
		return ActionNone
	}
	if a.plannedGrid != s.grid || a.plannedFor != s.pieces {
		a.plannedGrid = s.grid
		a.plannedFor = s.pieces
		a.plan = a.plan[:0]
		if p, ok := a.Best(s); ok {
			a.plan = placementActions(p, s.pos.Col)
		}
	}
	if len(a.plan) == 0 {
		return ActionDrop
	}
	next := a.plan[0]
	a.plan = a.plan[1:]
	return next
}

func placementActions(p Placement, fromCol int) []Action {
	var out []Action
	for i := 0; i < p.Rotations; i++ {
		out = append(out, ActionRotate)
	}
	for c := fromCol; c < p.Col; c++ {
		out = append(out, ActionRight)
	}
	for c := fromCol; c > p.Col; c-- {
		out = append(out, ActionLeft)
	}
	return out
}

// Best evaluates every reachable rotation and column for the current piece.
// A target is reachable when each in-place rotation and each one-column step
// from the spawn column fits at the current row.
func (a *Autopilot) Best(s *State) (Placement, bool) {
	var best Placement
	found := false
	shape := s.piece.Shape
	origin := s.pos
	for rot := 0; rot < 4; rot++ {
		if rot > 0 {
			shape = shape.Rotate()
		}
		if collides(s.grid, shape, origin) {
			break
		}
		for _, dir := range []int{-1, 1} {
			col := origin.Col
			if dir == 1 {
				col += dir
			}
			for ; ; col += dir {
				pos := Position{Row: origin.Row, Col: col}
				if collides(s.grid, shape, pos) {
					break
				}
				land := landingRow(s.grid, shape, pos)
				score := a.evaluate(s.grid, shape, Position{Row: land, Col: col})
				if !found || score > best.Score {
					best = Placement{Rotations: rot, Col: col, Row: land, Score: score}
					found = true
				}
			}
		}
	}
	return best, found
}

func landingRow(g *Grid, shape Shape, pos Position) int {
	for !collides(g, shape, Position{Row: pos.Row + 1, Col: pos.Col}) {
		pos.Row++
	}
	return pos.Row
}

func (a *Autopilot) evaluate(g *Grid, shape Shape, pos Position) float64 {
	sim := g.Clone()
	for _, c := range shape.Cells() {
		r := pos.Row + c.Row
		if r < 0 {
			return toppedOutPenalty
		}
		sim.Set(r, pos.Col+c.Col, Tetrominoes[ShapeO].Color)
	}
	lines := sim.ClearFullRows()
	heights := columnHeights(sim)
	agg, bump := 0, 0
	for i, h := range heights {
		agg += h
		if i > 0 {
			bump += absInt(h - heights[i-1])
		}
	}
	w := a.Weights
	return w.Lines*float64(lines) +
		w.Height*float64(agg) +
		w.Holes*float64(countHoles(sim)) +
		w.Bumpiness*float64(bump)
}

func columnHeights(g *Grid) []int {
	heights := make([]int, g.Cols())
	for c := 0; c < g.Cols(); c++ {
		for r := 0; r < g.Rows(); r++ {
			if !g.IsEmptyAt(r, c) {
				heights[c] = g.Rows() - r
				break
			}
		}
	}
	return heights
}

// countHoles counts empty cells with a settled cell somewhere above them.
func countHoles(g *Grid) int {
	holes := 0
	for c := 0; c < g.Cols(); c++ {
		covered := false
		for r := 0; r < g.Rows(); r++ {
			if !g.IsEmptyAt(r, c) {
				covered = true
			} else if covered {
				holes++
			}
		}
	}
	return holes
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
