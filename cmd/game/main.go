package main

import (
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	log "github.com/jeanphorn/log4go"

	"github.com/Garsondee/Stacker/internal/config"
	"github.com/Garsondee/Stacker/internal/game"
)

func main() {
	config.SetupLogging()
	defer log.Close()

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid config: %v", err)
		log.Close()
		os.Exit(1)
	}

	w, h := cfg.WindowSize()
	ebiten.SetWindowTitle("Stacker")
	ebiten.SetWindowSize(w, h)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(game.New(cfg)); err != nil {
		log.Error("run game: %v", err)
		log.Close()
		os.Exit(1)
	}
}
