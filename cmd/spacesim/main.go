// spacesim runs the pooled-object simulations headless.
//
// Usage:
//
//	spacesim run     - shooter simulation: ship, asteroids, enemies, explosions
//	spacesim portal  - portal visualizer loop
//	spacesim region  - preview a generated asteroid blueprint
//	spacesim runs    - list recorded runs
//
// The config file comes from --config, then $SPACESIM_CONFIG, then
// config/spacesim.toml.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/playground/spacesim/internal/config"
)

var (
	flagConfig string
	flagSeed   uint64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "spacesim",
	Short: "Fixed-tick space simulation with pooled bullets, blocks and particles",
	Long: `spacesim runs a headless space shooter and a portal visualizer on a
fixed-rate tick, recycling short-lived objects through pools.

Examples:
  spacesim run --ticks 600 --seed 42
  spacesim portal --ticks 300
  spacesim region --blocks 60 --seed 7
  spacesim runs --limit 5`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default $"+config.EnvPath+" or "+config.DefaultPath+")")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = config seed, then clock)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(portalCmd)
	rootCmd.AddCommand(regionCmd)
	rootCmd.AddCommand(runsCmd)
}

// loadConfig reads the resolved config file. The built-in defaults apply
// when no file was named and the default path does not exist.
func loadConfig() (*config.Config, error) {
	path := config.ResolvePath(flagConfig)
	if flagConfig == "" && os.Getenv(config.EnvPath) == "" {
		cfg, err := config.LoadOrDefault(path)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// resolveSeed picks the flag, then the config, then the clock.
func resolveSeed(cfgSeed uint64, now func() int64) uint64 {
	if flagSeed != 0 {
		return flagSeed
	}
	if cfgSeed != 0 {
		return cfgSeed
	}
	return uint64(now())
}
