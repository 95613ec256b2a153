package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/logging"
	"github.com/milk9111/platformer/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay and console logging")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	levelName := flag.String("level", "level.yaml", "level spec in prefabs/ (embedded copy when absent on disk)")
	watch := flag.Bool("watch", false, "hot reload prefab specs from prefabs/")
	list := flag.Bool("list", false, "print available prefab specs and exit")
	flag.Parse()

	if *list {
		names, err := prefabs.Names()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	log, err := logging.New(*logLevel, *debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	game, err := NewGame(GameOptions{Level: *levelName, Debug: *debug, Watch: *watch}, log)
	if err != nil {
		log.Fatal("failed to start", zap.Error(err))
	}
	defer func() { _ = game.Close() }()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("platformer")

	if err := ebiten.RunGame(game); err != nil {
		log.Error("game exited", zap.Error(err))
	}
}
