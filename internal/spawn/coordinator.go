// Package spawn decides, per object kind, whether a spawn reuses a pooled
// object or builds a new one, and parks objects again when they die.
package spawn

import (
	"github.com/playground/spacesim/internal/core/ecs"
	"github.com/playground/spacesim/internal/pool"
)

// Body builds and toggles objects of one kind. C is the per-spawn
// configuration (position, velocity, ...).
type Body[C any] interface {
	// Construct creates a fresh, active object configured from cfg.
	Construct(cfg C) ecs.EntityID
	// Activate reinitialises a pooled object from cfg and makes it visible
	// with its body enabled. The result must match what Construct produces.
	Activate(id ecs.EntityID, cfg C)
	// Deactivate hides the object and disables its body.
	Deactivate(id ecs.EntityID)
}

// Stats counts how spawns were served.
type Stats struct {
	Reused      uint64
	Constructed uint64
	Released    uint64
}

// Coordinator serves spawns for kind K. The pool is a throughput
// optimisation only: when it runs dry the coordinator builds new objects,
// so there is no cap on live objects.
type Coordinator[K pool.Kind, C any] struct {
	pool  *pool.Pool[K]
	body  Body[C]
	stats Stats
}

// NewCoordinator wires a pool to the body that builds its objects.
func NewCoordinator[K pool.Kind, C any](p *pool.Pool[K], body Body[C]) *Coordinator[K, C] {
	return &Coordinator[K, C]{pool: p, body: body}
}

// Spawn returns an active object configured from cfg. It never fails.
func (c *Coordinator[K, C]) Spawn(cfg C) ecs.EntityID {
	if !c.pool.IsEmpty() {
		id, _ := c.pool.Acquire()
		c.body.Activate(id, cfg)
		c.stats.Reused++
		return id
	}
	c.stats.Constructed++
	return c.body.Construct(cfg)
}

// ReleaseToPool deactivates id and parks it for reuse. Call it once per
// end-of-life signal; a second call before the next Spawn would put the same
// handle in the pool twice.
func (c *Coordinator[K, C]) ReleaseToPool(id ecs.EntityID) {
	c.body.Deactivate(id)
	c.pool.Release(id)
	c.stats.Released++
}

// Prewarm builds n objects up front and parks them, so the first n spawns
// allocate nothing. Prewarmed objects don't count as spawns.
func (c *Coordinator[K, C]) Prewarm(n int, cfg C) {
	for i := 0; i < n; i++ {
		id := c.body.Construct(cfg)
		c.body.Deactivate(id)
		c.pool.Release(id)
	}
}

func (c *Coordinator[K, C]) Pool() *pool.Pool[K] { return c.pool }
func (c *Coordinator[K, C]) Stats() Stats        { return c.stats }
func (c *Coordinator[K, C]) Kind() string        { return c.pool.Kind() }
