// Package console is the terminal frontend: tcell key events in, painted
// cells out, one Input -> Update -> Draw cycle per frame.
package console

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/jeanphorn/log4go"

	"github.com/Garsondee/Stacker/internal/config"
	"github.com/Garsondee/Stacker/internal/tetris"
)

// Run plays rounds on an initialized screen until quit or ctx is cancelled.
// The caller owns the screen and calls Fini after Run returns, which also
// stops the event poller.
func Run(ctx context.Context, screen tcell.Screen, cfg config.Config, opts ...tetris.Option) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	state := tetris.New(cfg, opts...)
	view := NewRenderer(screen)
	screen.HideCursor()
	log.Info("console round started: %dx%d grid", cfg.Rows, cfg.Cols)

	done := make(chan struct{})
	defer close(done)
	events := pollEvents(screen, done)

	view.Draw(state)
	loop(ctx, state, view, events, cfg.FrameDuration())
	log.Info("console exit: score %d, high %d", state.Score(), state.HighScore())
	return nil
}

func loop(ctx context.Context, state *tetris.State, view *Renderer, events <-chan tcell.Event, frame time.Duration) {
	tick := time.NewTicker(frame)
	defer tick.Stop()

	last := time.Now()
	status := state.Status()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if handleEvent(state, view, ev) {
				return
			}
		case now := <-tick.C:
			state.Tick(now.Sub(last))
			last = now
			if s := state.Status(); s != status {
				status = s
				if s == tetris.StatusGameOver {
					log.Info("game over: score %d, high %d", state.Score(), state.HighScore())
				}
			}
			view.Draw(state)
		}
	}
}

// handleEvent applies one screen event and reports whether to quit.
func handleEvent(state *tetris.State, view *Renderer, ev tcell.Event) bool {
	switch e := ev.(type) {
	case *tcell.EventResize:
		view.screen.Sync()
	case *tcell.EventKey:
		switch a := ActionFor(e); a {
		case tetris.ActionQuit:
			return true
		case tetris.ActionRestart:
			log.Info("round restarted: previous score %d", state.Score())
			state.Apply(a)
		default:
			state.Apply(a)
		}
	}
	return false
}
