package world

import (
	"time"

	"github.com/playground/spacesim/internal/component"
	"github.com/playground/spacesim/internal/core/ecs"
	"github.com/playground/spacesim/internal/region"
	"go.uber.org/zap"
)

// BuildAsteroid creates an asteroid owner at (x, y) and places one block per
// blueprint cell, cell coordinates scaled by the block size. respawn > 0
// rebuilds the asteroid that long after its last block is gone.
func (s *State) BuildAsteroid(x, y float64, bp region.Blueprint, respawn time.Duration) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Transforms.Set(id, &component.Transform{X: x, Y: y})
	s.Asteroids.Set(id, &component.Asteroid{Blocks: bp.Len(), RespawnDelay: respawn})
	s.PlaceBlocks(id, bp)
	return id
}

// PlaceBlocks spawns the blocks of bp under an existing asteroid.
func (s *State) PlaceBlocks(asteroid ecs.EntityID, bp region.Blueprint) {
	tf := s.Transforms.MustGet(asteroid)
	size := s.opts.BlockSize
	for _, c := range bp.Cells() {
		s.BlockSpawner.Spawn(BlockSpawn{
			X:      tf.X + float64(c.X)*size,
			Y:      tf.Y + float64(c.Y)*size,
			Parent: asteroid,
		})
	}
	if !bp.Connected() {
		s.log.Warn("asteroid blueprint not connected", zap.Stringer("asteroid", asteroid))
	}
	s.log.Debug("asteroid placed",
		zap.Stringer("asteroid", asteroid),
		zap.Int("blocks", bp.Len()),
	)
}

// ReleaseBlock parks a destroyed block back in the block pool.
func (s *State) ReleaseBlock(id ecs.EntityID) {
	if !s.Active(id) {
		return
	}
	s.BlockSpawner.ReleaseToPool(id)
}

// ReleaseBullet parks a bullet back in the bullet pool. Only the first end
// of life signal in a tick counts; later ones find the body disabled.
func (s *State) ReleaseBullet(id ecs.EntityID) bool {
	if !s.Active(id) {
		return false
	}
	s.BulletSpawner.ReleaseToPool(id)
	return true
}
