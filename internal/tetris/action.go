package tetris

// Action is an input request from a frontend or the autopilot.
type Action int

const (
	ActionNone Action = iota
	ActionLeft
	ActionRight
	ActionRotate
	ActionDrop
	ActionRestart
	ActionQuit
)

var actionNames = [...]string{"none", "left", "right", "rotate", "drop", "restart", "quit"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Apply dispatches a to the matching operation and reports whether the state
// changed. Quit and unknown actions are left to the caller and ignored here.
func (s *State) Apply(a Action) bool {
	switch a {
	case ActionLeft:
		return s.Move(-1)
	case ActionRight:
		return s.Move(1)
	case ActionRotate:
		return s.Rotate()
	case ActionDrop:
		if !s.Running() {
			return false
		}
		s.Drop()
		return true
	case ActionRestart:
		s.Restart()
		return true
	}
	return false
}
