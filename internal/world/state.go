package world

import (
	"math"

	"github.com/playground/spacesim/internal/component"
	"github.com/playground/spacesim/internal/core/ecs"
	"github.com/playground/spacesim/internal/core/event"
	"github.com/playground/spacesim/internal/pool"
	"github.com/playground/spacesim/internal/rng"
	"github.com/playground/spacesim/internal/spawn"
	"github.com/playground/spacesim/internal/vfx"
	"go.uber.org/zap"
)

// BulletKind and BlockKind tag the two recycled object kinds.
type (
	BulletKind struct{}
	BlockKind  struct{}
)

func (BulletKind) KindName() string { return "bullet" }
func (BlockKind) KindName() string  { return "block" }

// Options sizes the world and its recycled objects.
type Options struct {
	Width, Height float64 // play area, centred on the origin
	CellSize      float64 // broadphase cell size
	Bullet        BulletShape
	BlockSize     float64
	BlockHealth   float64 // 0 = indestructible blocks
	BulletPrewarm int
	BlockPrewarm  int
}

// State holds all simulation objects and the services that recycle them.
// Only the game loop goroutine touches it, so there are no locks.
type State struct {
	ECS *ecs.World
	Bus *event.Bus

	Transforms *ecs.PtrComponentStore[component.Transform]
	Velocities *ecs.PtrComponentStore[component.Velocity]
	Visibility *ecs.PtrComponentStore[component.Visibility]
	Bodies     *ecs.PtrComponentStore[component.RigidBody]
	Colliders  *ecs.PtrComponentStore[component.Collider]
	Health     *ecs.PtrComponentStore[component.Health]
	MaxHealth  *ecs.PtrComponentStore[component.MaxHealth]
	MaxSpeed   *ecs.PtrComponentStore[component.MaxSpeed]
	Parents    *ecs.PtrComponentStore[component.Parent]

	Ships     *ecs.PtrComponentStore[component.Ship]
	Bullets   *ecs.PtrComponentStore[component.Bullet]
	Blocks    *ecs.PtrComponentStore[component.Block]
	Asteroids *ecs.PtrComponentStore[component.Asteroid]
	Enemies   *ecs.PtrComponentStore[component.Enemy]

	BulletSpawner *spawn.Coordinator[BulletKind, BulletSpawn]
	BlockSpawner  *spawn.Coordinator[BlockKind, BlockSpawn]
	Effects       *vfx.Engine
	Grid          *Grid
	Rand          rng.Source

	opts             Options
	log              *zap.Logger
	enemiesDestroyed uint64
}

// NewState builds an empty world. effects may be nil when no effect presets
// are loaded; damage then spawns no VFX.
func NewState(opts Options, src rng.Source, effects *vfx.Engine, log *zap.Logger) *State {
	w := ecs.NewWorld()
	r := w.Registry()
	s := &State{
		ECS:        w,
		Bus:        event.NewBus(),
		Transforms: ecs.NewStore[component.Transform](r),
		Velocities: ecs.NewStore[component.Velocity](r),
		Visibility: ecs.NewStore[component.Visibility](r),
		Bodies:     ecs.NewStore[component.RigidBody](r),
		Colliders:  ecs.NewStore[component.Collider](r),
		Health:     ecs.NewStore[component.Health](r),
		MaxHealth:  ecs.NewStore[component.MaxHealth](r),
		MaxSpeed:   ecs.NewStore[component.MaxSpeed](r),
		Parents:    ecs.NewStore[component.Parent](r),
		Ships:      ecs.NewStore[component.Ship](r),
		Bullets:    ecs.NewStore[component.Bullet](r),
		Blocks:     ecs.NewStore[component.Block](r),
		Asteroids:  ecs.NewStore[component.Asteroid](r),
		Enemies:    ecs.NewStore[component.Enemy](r),
		Effects:    effects,
		Grid:       NewGrid(opts.CellSize),
		Rand:       src,
		opts:       opts,
		log:        log,
	}
	s.BulletSpawner = spawn.NewCoordinator[BulletKind, BulletSpawn](
		pool.NewPool[BulletKind](opts.BulletPrewarm), &bulletBody{s: s, shape: opts.Bullet})
	s.BlockSpawner = spawn.NewCoordinator[BlockKind, BlockSpawn](
		pool.NewPool[BlockKind](opts.BlockPrewarm), &blockBody{s: s, size: opts.BlockSize, hp: opts.BlockHealth})

	s.BulletSpawner.Prewarm(opts.BulletPrewarm, BulletSpawn{})
	s.BlockSpawner.Prewarm(opts.BlockPrewarm, BlockSpawn{})
	log.Debug("pools prewarmed",
		zap.Int("bullets", opts.BulletPrewarm),
		zap.Int("blocks", opts.BlockPrewarm),
	)
	return s
}

func (s *State) Options() Options { return s.opts }
func (s *State) Log() *zap.Logger { return s.log }

// Active reports whether id is an enabled body, i.e. live in the simulation
// rather than parked in a pool or already queued for destruction.
func (s *State) Active(id ecs.EntityID) bool {
	if !s.ECS.Alive(id) || s.ECS.Pending(id) {
		return false
	}
	b, ok := s.Bodies.Get(id)
	return ok && b.Enabled
}

// InPlayArea reports whether (x, y) lies inside the play area.
func (s *State) InPlayArea(x, y float64) bool {
	return math.Abs(x) <= s.opts.Width/2 && math.Abs(y) <= s.opts.Height/2
}

// HealthFraction returns HP/MaxHP for the HP bar, or 1 for objects without
// health.
func (s *State) HealthFraction(id ecs.EntityID) float64 {
	hp, ok := s.Health.Get(id)
	if !ok {
		return 1
	}
	maxHP, ok := s.MaxHealth.Get(id)
	if !ok || maxHP.HP <= 0 {
		return 1
	}
	return math.Max(0, hp.HP/maxHP.HP)
}

// NoteEnemyDestroyed bumps the destroyed-enemy counter.
func (s *State) NoteEnemyDestroyed() { s.enemiesDestroyed++ }

func (s *State) EnemiesDestroyed() uint64 { return s.enemiesDestroyed }

// setBodyEnabled toggles physics and keeps the broadphase in sync for solid
// colliders.
func (s *State) setBodyEnabled(id ecs.EntityID, enabled bool) {
	b := s.Bodies.MustGet(id)
	if b == nil || b.Enabled == enabled {
		return
	}
	b.Enabled = enabled
	c, ok := s.Colliders.Get(id)
	if !ok || c.Sensor {
		return
	}
	tf := s.Transforms.MustGet(id)
	if enabled {
		s.Grid.Add(id, tf.X, tf.Y)
	} else {
		s.Grid.Remove(id, tf.X, tf.Y)
	}
}
