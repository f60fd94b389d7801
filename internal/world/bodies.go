package world

import (
	"math"

	"github.com/playground/spacesim/internal/component"
	"github.com/playground/spacesim/internal/core/ecs"
)

// BulletShape is the collider of every bullet: a Width×Length box whose
// centre sits Length/2 ahead of the bullet's origin along its heading.
type BulletShape struct {
	Width, Length float64
}

// BulletSpawn configures one shot.
type BulletSpawn struct {
	X, Y    float64
	Heading float64 // radians, direction of travel
	Speed   float64
}

// bulletBody builds kinematic bullet sensors.
type bulletBody struct {
	s     *State
	shape BulletShape
}

func (b *bulletBody) Construct(cfg BulletSpawn) ecs.EntityID {
	s := b.s
	id := s.ECS.CreateEntity()
	s.Bullets.Set(id, &component.Bullet{})
	s.Transforms.Set(id, &component.Transform{})
	s.Velocities.Set(id, &component.Velocity{})
	s.Visibility.Set(id, &component.Visibility{})
	s.Bodies.Set(id, &component.RigidBody{Kind: component.Kinematic})
	s.Colliders.Set(id, &component.Collider{
		HalfW:  b.shape.Width / 2,
		HalfH:  b.shape.Length / 2,
		Sensor: true,
		Layer:  component.LayerBullet,
		Mask:   component.LayerEnemy | component.LayerBlock,
	})
	b.Activate(id, cfg)
	return id
}

func (b *bulletBody) Activate(id ecs.EntityID, cfg BulletSpawn) {
	s := b.s
	tf := s.Transforms.MustGet(id)
	tf.X, tf.Y = cfg.X, cfg.Y
	tf.Rotation = cfg.Heading - math.Pi/2

	dirX, dirY := math.Cos(cfg.Heading), math.Sin(cfg.Heading)
	v := s.Velocities.MustGet(id)
	v.X, v.Y = dirX*cfg.Speed, dirY*cfg.Speed

	// Axis-aligned stand-in for the rotated box: swap extents when the shot
	// travels mostly horizontally.
	c := s.Colliders.MustGet(id)
	c.OffsetX, c.OffsetY = dirX*b.shape.Length/2, dirY*b.shape.Length/2
	if math.Abs(dirX) > math.Abs(dirY) {
		c.HalfW, c.HalfH = b.shape.Length/2, b.shape.Width/2
	} else {
		c.HalfW, c.HalfH = b.shape.Width/2, b.shape.Length/2
	}

	s.Visibility.MustGet(id).Visible = true
	s.setBodyEnabled(id, true)
}

func (b *bulletBody) Deactivate(id ecs.EntityID) {
	s := b.s
	s.Visibility.MustGet(id).Visible = false
	s.setBodyEnabled(id, false)
	v := s.Velocities.MustGet(id)
	v.X, v.Y = 0, 0
}

// BlockSpawn places one asteroid block.
type BlockSpawn struct {
	X, Y   float64
	Parent ecs.EntityID
}

// blockBody builds static square blocks.
type blockBody struct {
	s    *State
	size float64
	hp   float64
}

func (b *blockBody) Construct(cfg BlockSpawn) ecs.EntityID {
	s := b.s
	id := s.ECS.CreateEntity()
	s.Blocks.Set(id, &component.Block{})
	s.Transforms.Set(id, &component.Transform{})
	s.Visibility.Set(id, &component.Visibility{})
	s.Bodies.Set(id, &component.RigidBody{Kind: component.Static})
	s.Colliders.Set(id, &component.Collider{
		HalfW: b.size / 2,
		HalfH: b.size / 2,
		Layer: component.LayerBlock,
		Mask:  component.LayerDefault | component.LayerPlayer | component.LayerEnemy | component.LayerBullet,
	})
	s.Parents.Set(id, &component.Parent{})
	if b.hp > 0 {
		s.Health.Set(id, &component.Health{})
		s.MaxHealth.Set(id, &component.MaxHealth{HP: b.hp})
	}
	b.Activate(id, cfg)
	return id
}

func (b *blockBody) Activate(id ecs.EntityID, cfg BlockSpawn) {
	s := b.s
	tf := s.Transforms.MustGet(id)
	tf.X, tf.Y, tf.Rotation = cfg.X, cfg.Y, 0
	s.Parents.MustGet(id).ID = cfg.Parent
	if hp, ok := s.Health.Get(id); ok {
		hp.HP = s.MaxHealth.MustGet(id).HP
	}
	s.Visibility.MustGet(id).Visible = true
	s.setBodyEnabled(id, true)
	if a, ok := s.Asteroids.Get(cfg.Parent); ok {
		a.Live++
	}
}

func (b *blockBody) Deactivate(id ecs.EntityID) {
	s := b.s
	s.Visibility.MustGet(id).Visible = false
	s.setBodyEnabled(id, false)
	p := s.Parents.MustGet(id)
	if a, ok := s.Asteroids.Get(p.ID); ok && a.Live > 0 {
		a.Live--
	}
	p.ID = 0
}

// NozzleOffset is how far ahead of the ship's centre bullets appear.
const NozzleOffset = 100

// NewShip creates the player ship at (x, y) facing heading.
func (s *State) NewShip(x, y, heading, maxSpeed float64) ecs.EntityID {
	id := s.ECS.CreateEntity()
	s.Ships.Set(id, &component.Ship{})
	s.Transforms.Set(id, &component.Transform{X: x, Y: y, Rotation: heading})
	s.Velocities.Set(id, &component.Velocity{})
	s.Visibility.Set(id, &component.Visibility{Visible: true})
	s.MaxSpeed.Set(id, &component.MaxSpeed{Value: maxSpeed})
	s.Bodies.Set(id, &component.RigidBody{Kind: component.Dynamic})
	s.Colliders.Set(id, &component.Collider{
		HalfW: 50,
		HalfH: 50,
		Layer: component.LayerPlayer,
		Mask:  component.LayerDefault | component.LayerEnemy | component.LayerBlock,
	})
	s.setBodyEnabled(id, true)
	return id
}

// Nozzle returns where a shot from ship leaves the hull and the ship's
// heading.
func (s *State) Nozzle(ship ecs.EntityID) (x, y, heading float64) {
	tf := s.Transforms.MustGet(ship)
	if tf == nil {
		return 0, 0, 0
	}
	return tf.X + math.Cos(tf.Rotation)*NozzleOffset, tf.Y + math.Sin(tf.Rotation)*NozzleOffset, tf.Rotation
}

// NewEnemy creates a hexagonal enemy. maxHP <= 0 takes the initial health as
// the maximum.
func (s *State) NewEnemy(x, y, hp, maxHP float64) ecs.EntityID {
	if maxHP <= 0 {
		maxHP = hp
	}
	id := s.ECS.CreateEntity()
	s.Enemies.Set(id, &component.Enemy{})
	s.Transforms.Set(id, &component.Transform{X: x, Y: y})
	s.Velocities.Set(id, &component.Velocity{})
	s.Visibility.Set(id, &component.Visibility{Visible: true})
	s.Health.Set(id, &component.Health{HP: hp})
	s.MaxHealth.Set(id, &component.MaxHealth{HP: maxHP})
	s.MaxSpeed.Set(id, &component.MaxSpeed{Value: 1000})
	s.Bodies.Set(id, &component.RigidBody{Kind: component.Dynamic})
	s.Colliders.Set(id, &component.Collider{
		HalfW: 60,
		HalfH: 60,
		Layer: component.LayerEnemy,
		Mask:  component.LayerDefault | component.LayerBlock | component.LayerBullet | component.LayerPlayer,
	})
	s.setBodyEnabled(id, true)
	return id
}

// Despawn takes a non-pooled object out of the simulation now and destroys
// it at the end of the tick.
func (s *State) Despawn(id ecs.EntityID) {
	if !s.ECS.Alive(id) {
		return
	}
	if _, ok := s.Bodies.Get(id); ok {
		s.setBodyEnabled(id, false)
	}
	if v, ok := s.Visibility.Get(id); ok {
		v.Visible = false
	}
	s.ECS.MarkForDestruction(id)
}
