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

	"github.com/playground/spacesim/internal/persist"
	"github.com/playground/spacesim/internal/portal"
	"github.com/playground/spacesim/internal/rng"
	"github.com/playground/spacesim/internal/spawn"
)

var flagPortalTicks uint64

var portalCmd = &cobra.Command{
	Use:   "portal",
	Short: "Run the portal particle loop",
	Long: `Spawn motes on the portal ring and pull them into the centre, dropping
fading trail dots along the way. SIGHUP re-reads the [portal] section of the
config file and applies whatever changed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPortal(cmd.Context())
	},
}

func init() {
	portalCmd.Flags().Uint64Var(&flagPortalTicks, "ticks", 0, "Stop after N ticks (0 = config portal.max_ticks, then until interrupted)")
	portalCmd.Flags().BoolVar(&flagFast, "fast", false, "Tick as fast as possible instead of at tick_rate")
}

func runPortal(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Logging, "portal")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	seed := resolveSeed(cfg.Sim.Seed, func() int64 { return time.Now().UnixNano() })
	printBanner("portal", seed)

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

	p := portal.New(cfg.Portal, rng.New(seed), log)
	x, y := p.Centre()
	printSection("portal")
	printOK(fmt.Sprintf("centre (%.0f, %.0f) anchored %s", x, y, cfg.Portal.Pos))
	printStat("motes prewarmed", p.Motes.Pool().Len())
	fmt.Println()

	maxTicks := flagPortalTicks
	if maxTicks == 0 {
		maxTicks = cfg.Portal.MaxTicks
	}

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdownCh)
	reloadCh := make(chan os.Signal, 1)
	signal.Notify(reloadCh, syscall.SIGHUP)
	defer signal.Stop(reloadCh)

	run := &persist.Run{
		Mode:       "portal",
		Seed:       seed,
		ConfigHash: persist.Fingerprint(cfg.Raw),
		StartedAt:  time.Now(),
	}
	tick := func(dt time.Duration) {
		select {
		case <-reloadCh:
			reloadPortal(p, log)
		default:
		}
		p.Update(dt)
		run.Ticks++
		if cfg.Sim.StatsInterval > 0 && run.Ticks%uint64(cfg.Sim.StatsInterval) == 0 {
			st := p.Stats()
			log.Info("portal stats",
				zap.Uint64("ticks", run.Ticks),
				zap.Int("motes_active", p.ActiveMotes()),
				zap.Int("trails_active", p.ActiveTrails()),
				zap.Uint64("arrived", st.Arrived),
				zap.Uint64("trails_expired", st.TrailsExpired),
			)
		}
	}

	printSection("running")
	printReady(fmt.Sprintf("portal loop started (tick: %s)", cfg.Sim.TickRate))
	fmt.Println()

	reason := loop(cfg.Sim.TickRate, maxTicks, flagFast, shutdownCh, tick, log)
	log.Info("portal stopped", zap.String("reason", reason), zap.Uint64("ticks", run.Ticks))

	run.Pools = []persist.PoolStats{
		poolSummary(p.Motes.Kind(), p.Motes.Stats()),
		poolSummary(p.Trails.Kind(), p.Trails.Stats()),
	}
	run.FinishedAt = time.Now()

	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.SaveRun(saveCtx, run); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	fmt.Println()
	printSection("summary")
	printRunSummary(run)
	printStat("motes arrived", int(p.Stats().Arrived))
	printStat("trails expired", int(p.Stats().TrailsExpired))
	return nil
}

// reloadPortal re-reads the config file and applies the portal settings that
// changed. A bad file is logged and ignored.
func reloadPortal(p *portal.Portal, log *zap.Logger) {
	cfg, err := loadConfig()
	if err != nil {
		log.Warn("config reload failed", zap.Error(err))
		return
	}
	changes := p.Apply(cfg.Portal)
	log.Info("config reloaded", zap.Int("changes", len(changes)))
}

func poolSummary(kind string, st spawn.Stats) persist.PoolStats {
	return persist.PoolStats{Kind: kind, Reused: st.Reused, Constructed: st.Constructed, Released: st.Released}
}
