package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	log "github.com/jeanphorn/log4go"
	"github.com/pkg/errors"

	"github.com/Garsondee/Stacker/internal/config"
	"github.com/Garsondee/Stacker/internal/console"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stacker: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logOut := io.Discard
	if path := config.GetEnv(config.LogFileEnv, ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.Wrap(err, "open log file")
		}
		defer f.Close()
		logOut = f
	}
	config.SetupLoggingTo(logOut)
	defer log.Close()

	cfg := config.Default()
	s, err := tcell.NewScreen()
	if err != nil {
		return errors.Wrap(err, "create screen")
	}
	if err := s.Init(); err != nil {
		return errors.Wrap(err, "init screen")
	}
	defer s.Fini()

	w, h := s.Size()
	needW, needH := console.MinSize(cfg.Rows, cfg.Cols)
	if w < needW || h < needH {
		return errors.Errorf("terminal is %dx%d, need at least %dx%d", w, h, needW, needH)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return console.Run(ctx, s, cfg)
}
