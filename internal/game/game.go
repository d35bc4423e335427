package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	log "github.com/jeanphorn/log4go"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Stacker/internal/config"
	"github.com/Garsondee/Stacker/internal/tetris"
)

// keyBinding maps an edge-triggered key to a game action.
type keyBinding struct {
	key    ebiten.Key
	action tetris.Action
}

// keyBindings is checked in order once per frame.
var keyBindings = []keyBinding{
	{ebiten.KeyArrowLeft, tetris.ActionLeft},
	{ebiten.KeyArrowRight, tetris.ActionRight},
	{ebiten.KeyArrowDown, tetris.ActionDrop},
	{ebiten.KeyArrowUp, tetris.ActionRotate},
	{ebiten.KeySpace, tetris.ActionRotate},
	{ebiten.KeyR, tetris.ActionRestart},
	{ebiten.KeyEscape, tetris.ActionQuit},
}

// reportEvents is how many recent events the clipboard report includes.
const reportEvents = 40

type Game struct {
	cfg   config.Config
	state *tetris.State
	frame time.Duration

	width  int
	height int

	autopilot *tetris.Autopilot
	demo      bool // autopilot drives the piece
	showHUD   bool // key legend and recent events overlay

	justPressed func(ebiten.Key) bool
	copyText    func(string) error

	lastStatus tetris.Status
	face       *text.GoXFace

	stateOpts []tetris.Option
}

// Option configures a Game during construction.
type Option func(*Game)

// WithStateOptions passes options through to the underlying tetris.State.
func WithStateOptions(opts ...tetris.Option) Option {
	return func(g *Game) {
		g.stateOpts = append(g.stateOpts, opts...)
	}
}

// WithDemo starts with the autopilot in control.
func WithDemo() Option {
	return func(g *Game) {
		g.demo = true
	}
}

// WithKeyReader replaces the edge-triggered keyboard source.
func WithKeyReader(justPressed func(ebiten.Key) bool) Option {
	return func(g *Game) {
		g.justPressed = justPressed
	}
}

// WithClipboard replaces the clipboard writer used by the copy key.
func WithClipboard(write func(string) error) Option {
	return func(g *Game) {
		g.copyText = write
	}
}

// New creates a Game running a fresh round.
func New(cfg config.Config, opts ...Option) *Game {
	w, h := cfg.WindowSize()
	g := &Game{
		cfg:         cfg,
		frame:       cfg.FrameDuration(),
		width:       w,
		height:      h,
		autopilot:   tetris.NewAutopilot(),
		justPressed: inpututil.IsKeyJustPressed,
		copyText:    writeClipboard,
		face:        text.NewGoXFace(basicfont.Face7x13),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.state = tetris.New(cfg, g.stateOpts...)
	g.lastStatus = g.state.Status()
	log.Info("round started: %dx%d grid, fall interval %s", cfg.Rows, cfg.Cols, cfg.FallInterval)
	return g
}

// State exposes the running round for tests and reports.
func (g *Game) State() *tetris.State {
	return g.state
}

// Demo reports whether the autopilot is in control.
func (g *Game) Demo() bool {
	return g.demo
}

func (g *Game) Update() error {
	if g.handleInput() {
		log.Info("quit: score %d, high %d", g.state.Score(), g.state.HighScore())
		return ebiten.Termination
	}
	if g.demo {
		g.state.Apply(g.autopilot.Next(g.state))
	}
	g.state.Tick(g.frame)
	g.logTransition()
	return nil
}

// handleInput applies this frame's key presses and reports whether quit
// was requested.
func (g *Game) handleInput() bool {
	for _, b := range keyBindings {
		if !g.justPressed(b.key) {
			continue
		}
		switch b.action {
		case tetris.ActionQuit:
			return true
		case tetris.ActionRestart:
			prev := g.state.Score()
			g.state.Restart()
			g.lastStatus = g.state.Status()
			log.Info("round restarted: previous score %d, high %d", prev, g.state.HighScore())
		default:
			g.state.Apply(b.action)
		}
	}

	if g.justPressed(ebiten.KeyA) {
		g.demo = !g.demo
		log.Debug("autopilot demo: %t", g.demo)
	}
	if g.justPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.justPressed(ebiten.KeyC) {
		g.copyReport()
	}
	return false
}

func (g *Game) logTransition() {
	status := g.state.Status()
	if status == g.lastStatus {
		return
	}
	g.lastStatus = status
	if status == tetris.StatusGameOver {
		st := g.state.Stats()
		log.Info("game over: score %d, high %d, pieces %d, lines %d",
			st.Score, st.HighScore, st.Pieces, st.Lines)
	}
}

func (g *Game) copyReport() {
	if err := g.copyText(tetris.Report(g.state, reportEvents)); err != nil {
		log.Warn("copy round report: %v", err)
		return
	}
	log.Info("round report copied to clipboard")
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
