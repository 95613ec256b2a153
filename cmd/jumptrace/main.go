// Command jumptrace replays a YAML input trace through the avatar controller
// without a window and prints the state, velocity and events of every tick.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/milk9111/platformer/logging"
	"github.com/milk9111/platformer/prefabs"
)

func main() {
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn, error")
	quiet := flag.Bool("q", false, "print only ticks that raised events or changed state")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: jumptrace [flags] trace.yaml\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log, err := logging.New(*logLevel, true)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	tr, err := LoadTraceFile(flag.Arg(0))
	if err != nil {
		log.Fatal("load trace", zap.Error(err))
	}
	player, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Fatal("load player spec", zap.Error(err))
	}
	model, err := prefabs.LoadModelSpec()
	if err != nil {
		log.Fatal("load model spec", zap.Error(err))
	}

	rows, err := Replay(tr, player.Options(model), model)
	if err != nil {
		log.Fatal("replay", zap.Error(err))
	}
	log.Debug("replayed", zap.Int("ticks", len(rows)), zap.Bool("simulate", tr.Simulate))

	for i, row := range rows {
		if *quiet && i > 0 && len(row.Events) == 0 && row.State == rows[i-1].State {
			continue
		}
		fmt.Println(row)
	}
}
