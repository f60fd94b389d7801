package system

import (
	"github.com/playground/spacesim/internal/core/ecs"
	"github.com/playground/spacesim/internal/core/event"
	"github.com/playground/spacesim/internal/vfx"
	"github.com/playground/spacesim/internal/world"
	"go.uber.org/zap"
)

const (
	EffectExplosion = "explosion" // every damaging hit
	EffectDebris    = "debris"    // target destroyed, when the preset exists
)

// HealthSystem applies Damaged events, plays explosion effects at the hit
// point and takes targets out at zero health. Blocks go back to the block
// pool; enemies are destroyed at the end of the tick.
type HealthSystem struct {
	world *world.State
	log   *zap.Logger
}

// NewHealthSystem subscribes the damage handler to the world's bus.
func NewHealthSystem(ws *world.State, log *zap.Logger) *HealthSystem {
	h := &HealthSystem{world: ws, log: log}
	event.Subscribe(ws.Bus, h.onDamaged)
	return h
}

func (h *HealthSystem) onDamaged(ev event.Damaged) {
	w := h.world
	if !w.Active(ev.Target) {
		return
	}
	hp, ok := w.Health.Get(ev.Target)
	if !ok {
		return
	}
	hp.HP -= ev.Amount
	if hp.HP < 0 {
		hp.HP = 0
	}
	at := vfx.Vec2{X: ev.X, Y: ev.Y}
	if w.Effects != nil {
		w.Effects.Trigger(EffectExplosion, at)
	}
	if hp.HP > 0 {
		return
	}
	h.destroy(ev.Target, at)
}

func (h *HealthSystem) destroy(id ecs.EntityID, at vfx.Vec2) {
	w := h.world
	var kind string
	switch {
	case w.Blocks.Has(id):
		kind = "block"
		w.ReleaseBlock(id)
	case w.Enemies.Has(id):
		kind = "enemy"
		w.Despawn(id)
		w.NoteEnemyDestroyed()
		h.log.Info("enemy destroyed", zap.Stringer("entity", id))
	default:
		kind = "object"
		w.Despawn(id)
	}
	if w.Effects != nil {
		if _, ok := w.Effects.Preset(EffectDebris); ok {
			w.Effects.Trigger(EffectDebris, at)
		}
	}
	event.Emit(w.Bus, event.Destroyed{Entity: id, Kind: kind})
}
