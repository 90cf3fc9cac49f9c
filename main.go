// asteroidminer is a 2D arcade shooter: mine ice asteroids, collect what they
// drop and stay alive.
//
// Usage:
//
//	asteroidminer [--seed N] [--tuning FILE] [--watch] [--debug] [--log-level LEVEL]
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
)

var (
	flagSeed     int64
	flagTuning   string
	flagWatch    bool
	flagDebug    bool
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "asteroidminer",
	Short:        "Mine ice asteroids in a 2D space shooter",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.Flags().StringVar(&flagTuning, "tuning", "tuning.yaml", "tuning file in prefabs/ (falls back to the embedded copy)")
	rootCmd.Flags().BoolVar(&flagWatch, "watch", false, "reload tuning and scripts when files under prefabs/ change")
	rootCmd.Flags().BoolVar(&flagDebug, "debug", false, "show debug overlay")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
}

func run(_ *cobra.Command, _ []string) error {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "asteroidminer",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger.SetLevel(level)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("starting", "seed", seed, "tuning", flagTuning)

	game, err := NewGame(GameOptions{
		Seed:   seed,
		Tuning: flagTuning,
		Watch:  flagWatch,
		Debug:  flagDebug,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer game.Close()

	width, height := game.ScreenSize()
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle("AsteroidMiner")
	ebiten.SetTPS(game.TickRate())

	return ebiten.RunGame(game)
}
