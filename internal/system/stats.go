package system

import (
	"time"

	coresys "github.com/playground/spacesim/internal/core/system"
	"github.com/playground/spacesim/internal/persist"
	"github.com/playground/spacesim/internal/spawn"
	"github.com/playground/spacesim/internal/world"
	"go.uber.org/zap"
)

// StatsSystem keeps the run record current and logs a summary every
// interval ticks. Phase 5 (Persist).
type StatsSystem struct {
	world     *world.State
	run       *persist.Run
	log       *zap.Logger
	tickCount int
	interval  int
}

func NewStatsSystem(ws *world.State, run *persist.Run, log *zap.Logger, intervalTicks int) *StatsSystem {
	return &StatsSystem{world: ws, run: run, log: log, interval: intervalTicks}
}

func (s *StatsSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *StatsSystem) Update(_ time.Duration) {
	s.run.Ticks++
	s.tickCount++
	if s.interval <= 0 || s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.Snapshot()
	bullets := s.run.Pool(world.BulletKind{}.KindName())
	s.log.Info("sim stats",
		zap.Uint64("ticks", s.run.Ticks),
		zap.Int("bullets_active", len(activeBullets(s.world))),
		zap.Uint64("bullets_reused", bullets.Reused),
		zap.Uint64("bullets_constructed", bullets.Constructed),
		zap.Int("effects_live", s.effectsLive()),
		zap.Uint64("enemies_destroyed", s.run.EnemiesDestroyed),
	)
}

// Snapshot copies the current counters into the run record.
func (s *StatsSystem) Snapshot() *persist.Run {
	w := s.world
	s.run.Pools = []persist.PoolStats{
		poolStats(w.BulletSpawner.Kind(), w.BulletSpawner.Stats()),
		poolStats(w.BlockSpawner.Kind(), w.BlockSpawner.Stats()),
	}
	if w.Effects != nil {
		s.run.EffectsSpawned = w.Effects.Stats().Spawned
	}
	s.run.EnemiesDestroyed = w.EnemiesDestroyed()
	return s.run
}

func (s *StatsSystem) effectsLive() int {
	if s.world.Effects == nil {
		return 0
	}
	return s.world.Effects.Len()
}

func poolStats(kind string, st spawn.Stats) persist.PoolStats {
	return persist.PoolStats{Kind: kind, Reused: st.Reused, Constructed: st.Constructed, Released: st.Released}
}
