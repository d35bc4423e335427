package tetris

import (
	"math/rand"
	"time"

	"github.com/Garsondee/Stacker/internal/config"
)

// Policy chooses one action per frame.
type Policy interface {
	Next(s *State) Action
}

// Sim is a headless driver: it feeds a policy's actions and fixed frame
// durations into a State without any window or terminal.
type Sim struct {
	State  *State
	Events *EventLog
	Frames int

	cfg      config.Config
	rng      *rand.Rand
	shapes   []ShapeKind
	policy   Policy
	capacity int
}

// SimOption is a builder function applied to a Sim during construction.
type SimOption func(*Sim)

// WithGridSize sets the playfield dimensions.
func WithGridSize(rows, cols int) SimOption {
	return func(sim *Sim) {
		sim.cfg.Rows = rows
		sim.cfg.Cols = cols
	}
}

// WithSimSeed sets the piece RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return func(sim *Sim) {
		sim.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- test harness
	}
}

// WithSimShapes replaces random spawns with a repeating sequence.
func WithSimShapes(kinds ...ShapeKind) SimOption {
	return func(sim *Sim) {
		sim.shapes = kinds
	}
}

// WithPolicy sets the input policy. Without one the sim only applies gravity.
func WithPolicy(p Policy) SimOption {
	return func(sim *Sim) {
		sim.policy = p
	}
}

// WithAutopilot plays with a default Autopilot.
func WithAutopilot() SimOption {
	return WithPolicy(NewAutopilot())
}

// WithEventLogCapacity bounds the event log; 0 keeps every event.
func WithEventLogCapacity(n int) SimOption {
	return func(sim *Sim) {
		sim.capacity = n
	}
}

// NewSim builds a Sim from the default configuration and options.
func NewSim(opts ...SimOption) *Sim {
	sim := &Sim{cfg: config.Default()}
	for _, opt := range opts {
		opt(sim)
	}
	if sim.rng == nil {
		sim.rng = rand.New(rand.NewSource(1)) // #nosec G404 -- test harness
	}
	sim.Events = NewEventLog(sim.capacity)
	stateOpts := []Option{WithRand(sim.rng), WithEventLog(sim.Events)}
	if len(sim.shapes) > 0 {
		stateOpts = append(stateOpts, WithShapeSource(Sequence(sim.shapes...)))
	}
	sim.State = New(sim.cfg, stateOpts...)
	return sim
}

// Step applies one policy action and advances one frame.
func (sim *Sim) Step() {
	if sim.policy != nil {
		sim.State.Apply(sim.policy.Next(sim.State))
	}
	sim.State.Tick(sim.frame())
	sim.Frames++
}

// RunTicks steps n frames, stopping early at game over.
func (sim *Sim) RunTicks(n int) {
	for i := 0; i < n && sim.State.Running(); i++ {
		sim.Step()
	}
}

// RunUntilGameOver steps until the round ends or maxFrames elapse and
// returns the number of frames run.
func (sim *Sim) RunUntilGameOver(maxFrames int) int {
	start := sim.Frames
	sim.RunTicks(maxFrames)
	return sim.Frames - start
}

func (sim *Sim) frame() time.Duration {
	return sim.cfg.FrameDuration()
}
