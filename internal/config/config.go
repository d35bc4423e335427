// Package config centralizes the tunable game parameters.
package config

import (
	"time"

	"github.com/pkg/errors"
)

// Playfield defaults: a 300x600 window of 30px cells.
const (
	DefaultRows     = 20
	DefaultCols     = 10
	DefaultCellSize = 30
)

// Timing
const (
	DefaultFallInterval = 500 * time.Millisecond
	DefaultTPS          = 60
)

// Scoring
const (
	DefaultLineScore = 100
)

// Config is built once at process start and passed by value into the game
// state and frontends. Nothing mutates it afterwards.
type Config struct {
	Rows         int
	Cols         int
	CellSize     int           // pixels per cell in the graphical frontend
	FallInterval time.Duration // time between automatic one-row drops
	TPS          int           // fixed updates per second
	LineScore    int           // points per cleared row
}

// Default returns the standard 20x10 configuration.
func Default() Config {
	return Config{
		Rows:         DefaultRows,
		Cols:         DefaultCols,
		CellSize:     DefaultCellSize,
		FallInterval: DefaultFallInterval,
		TPS:          DefaultTPS,
		LineScore:    DefaultLineScore,
	}
}

// Validate reports the first unusable value.
func (c Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return errors.Errorf("config: grid must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if c.CellSize <= 0 {
		return errors.Errorf("config: cell size must be positive, got %d", c.CellSize)
	}
	if c.FallInterval <= 0 {
		return errors.Errorf("config: fall interval must be positive, got %s", c.FallInterval)
	}
	if c.TPS <= 0 {
		return errors.Errorf("config: tps must be positive, got %d", c.TPS)
	}
	if c.LineScore < 0 {
		return errors.Errorf("config: line score must not be negative, got %d", c.LineScore)
	}
	if c.SpawnCol() < 0 {
		return errors.Errorf("config: %d columns leave no spawn column", c.Cols)
	}
	return nil
}

// FrameDuration is the elapsed time fed to the state on every update,
// rounded up so TPS frames add up to at least one second.
func (c Config) FrameDuration() time.Duration {
	tps := time.Duration(c.TPS)
	return (time.Second + tps - 1) / tps
}

// SpawnCol is the column new pieces appear at, independent of their width.
func (c Config) SpawnCol() int {
	return c.Cols/2 - 1
}

// WindowSize returns the canvas size in pixels.
func (c Config) WindowSize() (int, int) {
	return c.Cols * c.CellSize, c.Rows * c.CellSize
}
