package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/playground/spacesim/internal/config"
	"github.com/playground/spacesim/internal/persist"
)

var (
	flagTicks uint64
	flagFast  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the shooter simulation",
	Long: `Build the shooter world (asteroids from the spawn list, enemies, the
ship) and tick it until --ticks is reached or the process is interrupted.
The run summary is saved to the configured store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runShooter(cmd.Context())
	},
}

func init() {
	runCmd.Flags().Uint64Var(&flagTicks, "ticks", 0, "Stop after N ticks (0 = config max_ticks, then until interrupted)")
	runCmd.Flags().BoolVar(&flagFast, "fast", false, "Tick as fast as possible instead of at tick_rate")
}

func runShooter(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging, "shooter")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed := resolveSeed(cfg.Sim.Seed, func() int64 { return time.Now().UnixNano() })
	printBanner("shooter", seed)

	// 3. Open run store
	printSection("storage")
	openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	store, err := persist.Open(openCtx, cfg.Storage, log)
	cancel()
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer store.Close()
	printOK(fmt.Sprintf("run store: %s", storageLabel(cfg.Storage)))
	fmt.Println()

	// 4. Build world
	printSection("world")
	sim, err := newShooter(cfg, seed, log)
	if err != nil {
		return err
	}
	defer sim.Close()
	printStat("effect presets", sim.tables.presets)
	printStat("asteroids", sim.tables.asteroids)
	printStat("asteroid blocks", sim.tables.blocks)
	printStat("enemies", sim.tables.enemies)
	printStat("bullets prewarmed", sim.state.BulletSpawner.Pool().Len())
	fmt.Println()

	maxTicks := flagTicks
	if maxTicks == 0 {
		maxTicks = cfg.Sim.MaxTicks
	}

	// 5. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)

	printSection("running")
	printReady(fmt.Sprintf("game loop started (tick: %s)", cfg.Sim.TickRate))
	fmt.Println()

	sim.run.StartedAt = time.Now()
	reason := loop(cfg.Sim.TickRate, maxTicks, flagFast, shutdownCh, sim.Tick, log)
	run := sim.Finish(time.Now())
	log.Info("simulation stopped", zap.String("reason", reason), zap.Uint64("ticks", run.Ticks))

	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.SaveRun(saveCtx, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	fmt.Println()
	printSection("summary")
	printRunSummary(run)
	printStat("bullets fired", int(sim.fire.Shots()))
	printStat("bullet hits", int(sim.bullets.Hits()))
	return nil
}

// loop ticks at rate until maxTicks (0 = unbounded) or a shutdown signal.
// fast skips the ticker; the signal channel is still polled between ticks.
func loop(rate time.Duration, maxTicks uint64, fast bool, shutdownCh <-chan os.Signal, tick func(time.Duration), log *zap.Logger) string {
	var ticks uint64
	done := func() bool { return maxTicks > 0 && ticks >= maxTicks }

	if fast {
		for !done() {
			select {
			case sig := <-shutdownCh:
				log.Info("shutdown signal received", zap.String("signal", sig.String()))
				return "signal"
			default:
			}
			tick(rate)
			ticks++
		}
		return "max_ticks"
	}

	ticker := time.NewTicker(rate)
	defer ticker.Stop()
	for !done() {
		select {
		case <-ticker.C:
			tick(rate)
			ticks++
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			return "signal"
		}
	}
	return "max_ticks"
}

func storageLabel(cfg config.StorageConfig) string {
	switch cfg.Driver {
	case "sqlite":
		return "sqlite " + cfg.Path
	case "postgres":
		return "postgres"
	default:
		return "disabled"
	}
}

func printRunSummary(run *persist.Run) {
	printStat("ticks", int(run.Ticks))
	for _, p := range run.Pools {
		printStat(p.Kind+" reused", int(p.Reused))
		printStat(p.Kind+" constructed", int(p.Constructed))
	}
	printStat("effects spawned", int(run.EffectsSpawned))
	printStat("enemies destroyed", int(run.EnemiesDestroyed))
}
