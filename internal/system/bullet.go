package system

import (
	"github.com/playground/spacesim/internal/core/event"
	"github.com/playground/spacesim/internal/scripting"
	"github.com/playground/spacesim/internal/world"
	"go.uber.org/zap"
)

// Damager computes bullet damage. *scripting.Engine implements it.
type Damager interface {
	CalcBulletDamage(ctx scripting.BulletDamageContext) float64
}

// BulletLifecycle returns bullets to their pool on their first end of life
// signal (a hit or leaving the play area) and turns hits on targets with
// health into Damaged events.
type BulletLifecycle struct {
	world   *world.State
	damage  Damager
	base    float64
	log     *zap.Logger
	hits    uint64
	expired uint64
}

// NewBulletLifecycle subscribes the bullet handlers to the world's bus.
func NewBulletLifecycle(ws *world.State, damage Damager, base float64, log *zap.Logger) *BulletLifecycle {
	b := &BulletLifecycle{world: ws, damage: damage, base: base, log: log}
	event.Subscribe(ws.Bus, b.onCollision)
	event.Subscribe(ws.Bus, b.onLeftPlayArea)
	return b
}

func (b *BulletLifecycle) onCollision(ev event.Collision) {
	w := b.world
	if !w.Bullets.Has(ev.Sensor) || !w.ReleaseBullet(ev.Sensor) {
		return
	}
	b.hits++
	if !w.Active(ev.Target) {
		return
	}
	hp, ok := w.Health.Get(ev.Target)
	if !ok {
		return
	}
	maxHP := hp.HP
	if m, ok := w.MaxHealth.Get(ev.Target); ok {
		maxHP = m.HP
	}
	dmg := b.base
	if b.damage != nil {
		dmg = b.damage.CalcBulletDamage(scripting.BulletDamageContext{
			Base:        b.base,
			TargetHP:    hp.HP,
			TargetMaxHP: maxHP,
		})
	}
	if dmg <= 0 {
		return
	}
	event.Emit(w.Bus, event.Damaged{Target: ev.Target, Amount: dmg, X: ev.X, Y: ev.Y})
}

func (b *BulletLifecycle) onLeftPlayArea(ev event.LeftPlayArea) {
	if !b.world.Bullets.Has(ev.Entity) {
		return
	}
	if b.world.ReleaseBullet(ev.Entity) {
		b.expired++
	}
}

// Hits and Expired count bullets released by each signal.
func (b *BulletLifecycle) Hits() uint64    { return b.hits }
func (b *BulletLifecycle) Expired() uint64 { return b.expired }
