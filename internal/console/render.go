package console

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Stacker/internal/tetris"
)

// cellWidth is the number of terminal columns per grid cell, which keeps
// cells roughly square.
const cellWidth = 2

var (
	borderStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	textStyle     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	gameOverStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// Renderer paints the state onto a tcell screen. The board's top-left
// border corner sits at the screen origin.
type Renderer struct {
	screen tcell.Screen
}

// NewRenderer creates a Renderer for screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen}
}

// MinSize is the terminal size needed for a rows x cols board, its border
// and the two status lines.
func MinSize(rows, cols int) (int, int) {
	return cols*cellWidth + 2, rows + 4
}

// Draw paints one frame and shows it.
func (r *Renderer) Draw(s *tetris.State) {
	scr := r.screen
	scr.Clear()

	grid := s.Grid()
	right := grid.Cols()*cellWidth + 1
	bottom := grid.Rows() + 1
	for x := 1; x < right; x++ {
		scr.SetContent(x, 0, '-', nil, borderStyle)
		scr.SetContent(x, bottom, '-', nil, borderStyle)
	}
	for y := 1; y < bottom; y++ {
		scr.SetContent(0, y, '|', nil, borderStyle)
		scr.SetContent(right, y, '|', nil, borderStyle)
	}
	for _, corner := range [][2]int{{0, 0}, {right, 0}, {0, bottom}, {right, bottom}} {
		scr.SetContent(corner[0], corner[1], '+', nil, borderStyle)
	}

	for row := 0; row < grid.Rows(); row++ {
		for col := 0; col < grid.Cols(); col++ {
			if clr := grid.At(row, col); !tetris.IsEmpty(clr) {
				r.cell(row, col, clr)
			}
		}
	}
	for _, p := range s.PieceCells() {
		if grid.InBounds(p.Row, p.Col) {
			r.cell(p.Row, p.Col, s.Piece().Color)
		}
	}

	status := bottom + 1
	drawText(scr, 0, status, fmt.Sprintf("Score: %d  High Score: %d", s.Score(), s.HighScore()), textStyle)
	if s.Running() {
		drawText(scr, 0, status+1, "arrows/wasd move  space rotate  r restart  q quit", textStyle)
	} else {
		x := drawText(scr, 0, status+1, "Game Over", gameOverStyle)
		drawText(scr, x, status+1, fmt.Sprintf("  Your Score: %d  r restart  q quit", s.Score()), textStyle)
	}
	scr.Show()
}

func (r *Renderer) cell(row, col int, clr color.RGBA) {
	st := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(clr.R), int32(clr.G), int32(clr.B)))
	x := 1 + col*cellWidth
	for i := 0; i < cellWidth; i++ {
		r.screen.SetContent(x+i, row+1, ' ', nil, st)
	}
}

// drawText writes s starting at (x, y) and returns the column after it.
func drawText(s tcell.Screen, x, y int, text string, st tcell.Style) int {
	for _, ch := range text {
		s.SetContent(x, y, ch, nil, st)
		x++
	}
	return x
}
