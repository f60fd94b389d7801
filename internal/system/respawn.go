package system

import (
	"time"

	"github.com/playground/spacesim/internal/component"
	"github.com/playground/spacesim/internal/core/ecs"
	coresys "github.com/playground/spacesim/internal/core/system"
	"github.com/playground/spacesim/internal/region"
	"github.com/playground/spacesim/internal/world"
	"go.uber.org/zap"
)

// AsteroidRespawnSystem rebuilds asteroids whose blocks were all shot away.
// Flow: last block released → RespawnIn starts at RespawnDelay → counts down
// → a fresh blueprint of the same size is placed at the asteroid origin,
// drawing blocks from the pool. Phase 2 (Update).
type AsteroidRespawnSystem struct {
	world *world.State
	log   *zap.Logger
}

func NewAsteroidRespawnSystem(ws *world.State, log *zap.Logger) *AsteroidRespawnSystem {
	return &AsteroidRespawnSystem{world: ws, log: log}
}

func (s *AsteroidRespawnSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *AsteroidRespawnSystem) Update(dt time.Duration) {
	ecs.Sorted2(s.world.Asteroids, s.world.Transforms, func(id ecs.EntityID, a *component.Asteroid, _ *component.Transform) {
		if a.Live > 0 || a.RespawnDelay <= 0 {
			return
		}
		if a.RespawnIn <= 0 {
			a.RespawnIn = a.RespawnDelay
			s.log.Debug("asteroid cleared", zap.Stringer("asteroid", id), zap.Duration("respawn_in", a.RespawnIn))
			return
		}
		a.RespawnIn -= dt
		if a.RespawnIn > 0 {
			return
		}
		a.RespawnIn = 0
		s.world.PlaceBlocks(id, region.Generate(a.Blocks, s.world.Rand))
	})
}
