package tetris

import (
	"image/color"
	"strings"
)

// Empty is the sentinel for an unoccupied cell.
var Empty = color.RGBA{}

// IsEmpty reports whether c is the empty sentinel.
func IsEmpty(c color.RGBA) bool {
	return c == Empty
}

// Position locates a cell or a piece origin in the grid.
type Position struct {
	Row int
	Col int
}

// Grid holds the settled cells. Its dimensions never change after creation.
type Grid struct {
	rows  int
	cols  int
	cells [][]color.RGBA
}

// NewGrid creates an empty rows x cols grid.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{rows: rows, cols: cols, cells: make([][]color.RGBA, rows)}
	for r := range g.cells {
		g.cells[r] = make([]color.RGBA, cols)
	}
	return g
}

func (g *Grid) Rows() int { return g.rows }
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) addresses a stored cell.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the cell colour; out-of-range coordinates read as empty.
func (g *Grid) At(row, col int) color.RGBA {
	if !g.InBounds(row, col) {
		return Empty
	}
	return g.cells[row][col]
}

// Set writes a cell. Out-of-range writes are dropped.
func (g *Grid) Set(row, col int, c color.RGBA) {
	if !g.InBounds(row, col) {
		return
	}
	g.cells[row][col] = c
}

// IsEmptyAt reports whether the cell at (row, col) is empty.
func (g *Grid) IsEmptyAt(row, col int) bool {
	return IsEmpty(g.At(row, col))
}

// FillRow sets every cell of a row, except the listed columns, to c.
func (g *Grid) FillRow(row int, c color.RGBA, except ...int) {
	if row < 0 || row >= g.rows {
		return
	}
	skip := make(map[int]bool, len(except))
	for _, col := range except {
		skip[col] = true
	}
	for col := 0; col < g.cols; col++ {
		if !skip[col] {
			g.cells[row][col] = c
		}
	}
}

// RowFull reports whether a row has no empty cell.
func (g *Grid) RowFull(row int) bool {
	for _, c := range g.cells[row] {
		if IsEmpty(c) {
			return false
		}
	}
	return true
}

// FullRows lists the indices of rows with no empty cell, top to bottom.
func (g *Grid) FullRows() []int {
	var out []int
	for r := 0; r < g.rows; r++ {
		if g.RowFull(r) {
			out = append(out, r)
		}
	}
	return out
}

// ClearFullRows removes every full row, shifts the remaining rows down and
// refills the top with empty rows. It returns the number of rows removed.
func (g *Grid) ClearFullRows() int {
	kept := make([][]color.RGBA, 0, g.rows)
	for r := 0; r < g.rows; r++ {
		if !g.RowFull(r) {
			kept = append(kept, g.cells[r])
		}
	}
	cleared := g.rows - len(kept)
	if cleared == 0 {
		return 0
	}
	fresh := make([][]color.RGBA, cleared, g.rows)
	for i := range fresh {
		fresh[i] = make([]color.RGBA, g.cols)
	}
	g.cells = append(fresh, kept...)
	return cleared
}

// Occupied counts non-empty cells.
func (g *Grid) Occupied() int {
	n := 0
	for r := range g.cells {
		for _, c := range g.cells[r] {
			if !IsEmpty(c) {
				n++
			}
		}
	}
	return n
}

// Clone deep-copies the grid.
func (g *Grid) Clone() *Grid {
	out := &Grid{rows: g.rows, cols: g.cols, cells: make([][]color.RGBA, g.rows)}
	for r := range g.cells {
		out.cells[r] = append([]color.RGBA(nil), g.cells[r]...)
	}
	return out
}

// String draws the grid as '#' for settled cells and '.' for empty ones.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			if IsEmpty(g.cells[r][c]) {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('#')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
