package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Stacker/internal/tetris"
)

var (
	background    = color.RGBA{A: 255}
	white         = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	gameOverRed   = color.RGBA{R: 255, A: 255}
	hudBackground = color.RGBA{R: 6, G: 10, B: 6, A: 210}
	hudBorder     = color.RGBA{R: 60, G: 100, B: 60, A: 180}
)

// Text scales applied to the 7x13 bitmap face.
const (
	scoreScale    = 2
	gameOverScale = 3
	infoScale     = 2
)

// hudLines is how many recent events the overlay lists.
const hudLines = 12

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	g.drawBoard(screen)
	g.drawText(screen, fmt.Sprintf("Score: %d", g.state.Score()), 10, 10, scoreScale, white)
	if !g.state.Running() {
		g.drawGameOver(screen)
	}
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	grid := g.state.Grid()
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			if clr := g.cellColor(r, c); !tetris.IsEmpty(clr) {
				g.fillCell(screen, r, c, clr)
			}
		}
	}
}

func (g *Game) fillCell(screen *ebiten.Image, row, col int, clr color.Color) {
	cs := float32(g.cfg.CellSize)
	vector.FillRect(screen, float32(col)*cs, float32(row)*cs, cs, cs, clr, false)
}

// drawGameOver places the three lines around the window centre, the title
// above and both scores below.
func (g *Game) drawGameOver(screen *ebiten.Image) {
	x := float64(g.width/2 - 100)
	y := float64(g.height / 2)
	g.drawText(screen, "Game Over", x, y-50, gameOverScale, gameOverRed)
	g.drawText(screen, fmt.Sprintf("High Score: %d", g.state.HighScore()), x, y, infoScale, white)
	g.drawText(screen, fmt.Sprintf("Your Score: %d", g.state.Score()), x, y+50, infoScale, white)
	g.drawText(screen, "R to restart", x, y+100, 1, white)
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y, scale float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, g.face, op)
}

// hudText builds the key legend followed by the most recent events.
func (g *Game) hudText() []string {
	mode := "player"
	if g.demo {
		mode = "autopilot"
	}
	st := g.state.Stats()
	lines := []string{
		fmt.Sprintf("mode: %s  high: %d", mode, st.HighScore),
		fmt.Sprintf("pieces %d  lines %d", st.Pieces, st.Lines),
		"arrows move/drop  up/space rotate",
		"A demo  R restart  C copy  H hide",
		"",
	}
	for _, e := range g.state.Events().Recent(hudLines) {
		lines = append(lines, fmt.Sprintf("%4d %s %s", e.Tick, e.Key, e.Value))
	}
	return lines
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	const lineH = 16 // debug font line height
	const padX = 5
	const padY = 4

	lines := g.hudText()
	bx := float32(4)
	by := float32(40)
	boxW := float32(g.width) - 2*bx
	boxH := float32(len(lines)*lineH + padY*2)

	vector.FillRect(screen, bx, by, boxW, boxH, hudBackground, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, hudBorder, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(bx)+padX, int(by)+padY+i*lineH)
	}
}

// cellColor returns the colour drawn at a visible cell. The live piece is
// drawn over the grid, also after game over.
func (g *Game) cellColor(row, col int) color.RGBA {
	for _, p := range g.state.PieceCells() {
		if p.Row == row && p.Col == col {
			return g.state.Piece().Color
		}
	}
	return g.state.Grid().At(row, col)
}
