package config

import (
	"bytes"
	"testing"
	"time"

	log "github.com/jeanphorn/log4go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_MatchesClassicPlayfield(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())

	w, h := c.WindowSize()
	assert.Equal(t, 300, w)
	assert.Equal(t, 600, h)
	assert.Equal(t, 4, c.SpawnCol())
	assert.Equal(t, 500*time.Millisecond, c.FallInterval)
	assert.Equal(t, 16666667*time.Nanosecond, c.FrameDuration())
}

func TestFrameDuration_FramesCoverFallInterval(t *testing.T) {
	c := Default()
	assert.GreaterOrEqual(t, 30*c.FrameDuration(), c.FallInterval)
	assert.Less(t, 29*c.FrameDuration(), c.FallInterval)
	assert.GreaterOrEqual(t, time.Duration(c.TPS)*c.FrameDuration(), time.Second)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero rows", func(c *Config) { c.Rows = 0 }},
		{"negative cols", func(c *Config) { c.Cols = -3 }},
		{"single column has no spawn column", func(c *Config) { c.Cols = 1 }},
		{"zero cell size", func(c *Config) { c.CellSize = 0 }},
		{"zero fall interval", func(c *Config) { c.FallInterval = 0 }},
		{"zero tps", func(c *Config) { c.TPS = 0 }},
		{"negative line score", func(c *Config) { c.LineScore = -100 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestGetEnv_Fallback(t *testing.T) {
	t.Setenv("STACKER_TEST_SET", "value")
	assert.Equal(t, "value", GetEnv("STACKER_TEST_SET", "fallback"))
	assert.Equal(t, "fallback", GetEnv("STACKER_TEST_UNSET_KEY", "fallback"))
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, log.DEBUG, LogLevel("debug"))
	assert.Equal(t, log.WARNING, LogLevel(" WARN "))
	assert.Equal(t, log.ERROR, LogLevel("error"))
	assert.Equal(t, log.INFO, LogLevel("nonsense"))
}

func TestWriterLog_FormatsRecord(t *testing.T) {
	var buf bytes.Buffer
	w := &writerLog{w: &buf}
	w.LogWrite(&log.LogRecord{
		Level:   log.INFO,
		Created: time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC),
		Message: "round started",
	})
	assert.Equal(t, "[2024/03/01 12:30:00] [INFO] round started\n", buf.String())
}
