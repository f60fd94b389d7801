package component

import (
	"time"

	"github.com/playground/spacesim/internal/core/ecs"
)

// Health is current hit points. Damage is applied by HealthSystem.
type Health struct {
	HP float64
}

// MaxHealth defaults to the initial Health when an object is built without one.
type MaxHealth struct {
	HP float64
}

// Parent groups children (asteroid blocks) under one owner.
type Parent struct {
	ID ecs.EntityID
}

// Asteroid is the owner of a group of blocks. Live counts blocks currently
// active under it. When Live drops to zero and RespawnDelay is set, the
// asteroid is rebuilt with a fresh shape of Blocks cells once RespawnIn runs
// out.
type Asteroid struct {
	Blocks       int
	Live         int
	RespawnDelay time.Duration
	RespawnIn    time.Duration
}

// Tag components.
type (
	Ship   struct{}
	Bullet struct{}
	Block  struct{}
	Enemy  struct{}
)
