package console

import (
	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/Stacker/internal/tetris"
)

// runeActions maps printable keys to actions, case-insensitively.
var runeActions = map[rune]tetris.Action{
	'a': tetris.ActionLeft,
	'd': tetris.ActionRight,
	's': tetris.ActionDrop,
	'w': tetris.ActionRotate,
	' ': tetris.ActionRotate,
	'r': tetris.ActionRestart,
	'q': tetris.ActionQuit,
}

var keyActions = map[tcell.Key]tetris.Action{
	tcell.KeyLeft:   tetris.ActionLeft,
	tcell.KeyRight:  tetris.ActionRight,
	tcell.KeyDown:   tetris.ActionDrop,
	tcell.KeyUp:     tetris.ActionRotate,
	tcell.KeyEscape: tetris.ActionQuit,
	tcell.KeyCtrlC:  tetris.ActionQuit,
}

// ActionFor maps a key event to an action. Arrows held with Ctrl, Alt or
// Meta and any unlisted key map to ActionNone.
func ActionFor(ev *tcell.EventKey) tetris.Action {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if r >= 'A' && r <= 'Z' {
			r += 'a' - 'A'
		}
		if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt|tcell.ModMeta) != 0 {
			return tetris.ActionNone
		}
		return runeActions[r]
	}
	a, ok := keyActions[ev.Key()]
	if !ok {
		return tetris.ActionNone
	}
	if a != tetris.ActionQuit && ev.Modifiers() != tcell.ModNone {
		return tetris.ActionNone
	}
	return a
}

// pollEvents forwards screen events to a channel until the screen is
// finalized or done is closed.
func pollEvents(screen tcell.Screen, done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, 32)
	go func() {
		defer close(events)
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}
