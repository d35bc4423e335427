package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/jeanphorn/log4go"
)

// Environment variables read by the commands.
const (
	LogLevelEnv = "STACKER_LOG_LEVEL"
	LogFileEnv  = "STACKER_LOG_FILE"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// LogLevel maps a level name to a log4go level. Unknown names fall back to INFO.
func LogLevel(name string) log.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARNING
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}

// SetupLogging points the global console filter at the level named by
// STACKER_LOG_LEVEL.
func SetupLogging() {
	lvl := LogLevel(GetEnv(LogLevelEnv, "info"))
	log.AddFilter("stdout", lvl, log.NewConsoleLogWriter())
}

// SetupLoggingTo replaces the console filter with one writing to w. The
// terminal frontend owns stdout, so its logs go to a file or nowhere.
func SetupLoggingTo(w io.Writer) {
	lvl := LogLevel(GetEnv(LogLevelEnv, "info"))
	log.AddFilter("stdout", lvl, &writerLog{w: w})
}

// writerLog is a log4go LogWriter over a plain io.Writer.
type writerLog struct {
	w io.Writer
}

func (l *writerLog) LogWrite(rec *log.LogRecord) {
	fmt.Fprintf(l.w, "[%s] [%s] %s\n", rec.Created.Format("2006/01/02 15:04:05"), rec.Level, rec.Message)
}

func (l *writerLog) Close() {}
