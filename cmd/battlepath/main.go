package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/battlepath/internal/config"
	"github.com/Garsondee/battlepath/internal/logx"
	"github.com/Garsondee/battlepath/internal/planner"
	"github.com/Garsondee/battlepath/internal/viewer"
)

func main() {
	cfg, err := config.Load("battlepath", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logx.New(os.Stderr, logx.ParseLevel(cfg.LogLevel))
	lg.Infof("planner %s, timeout %s", cfg.PlannerURL, cfg.RequestTimeout)

	g := viewer.New(cfg, planner.New(cfg.PlannerURL, cfg.RequestTimeout, lg), lg)
	defer g.Close()

	ebiten.SetWindowTitle("BattlePath")
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		lg.Errorf("run: %v", err)
		g.Close()
		os.Exit(1)
	}
}
