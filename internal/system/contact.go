package system

import (
	"math"
	"time"

	"github.com/playground/spacesim/internal/component"
	"github.com/playground/spacesim/internal/core/ecs"
	"github.com/playground/spacesim/internal/core/event"
	coresys "github.com/playground/spacesim/internal/core/system"
	"github.com/playground/spacesim/internal/world"
)

// ContactSystem is the minimal physics collaborator: it reports bullet
// sensors touching solid bodies and bullets that left the play area.
// One signal per bullet per tick. Phase 3 (Physics), after MotionSystem.
type ContactSystem struct {
	world *world.State
}

func NewContactSystem(ws *world.State) *ContactSystem {
	return &ContactSystem{world: ws}
}

func (s *ContactSystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *ContactSystem) Update(_ time.Duration) {
	w := s.world
	for _, id := range w.Bullets.IDs() {
		if !w.Active(id) {
			continue
		}
		tf := w.Transforms.MustGet(id)
		if !w.InPlayArea(tf.X, tf.Y) {
			event.Emit(w.Bus, event.LeftPlayArea{Entity: id})
			continue
		}
		c := w.Colliders.MustGet(id)
		cx, cy := tf.X+c.OffsetX, tf.Y+c.OffsetY
		for _, other := range w.Grid.Nearby(cx, cy) {
			if other == id || !w.Active(other) {
				continue
			}
			oc, ok := w.Colliders.Get(other)
			if !ok || c.Mask&oc.Layer == 0 {
				continue
			}
			otf := w.Transforms.MustGet(other)
			if overlaps(cx, cy, c, otf.X+oc.OffsetX, otf.Y+oc.OffsetY, oc) {
				event.Emit(w.Bus, event.Collision{Sensor: id, Target: other, X: tf.X, Y: tf.Y})
				break
			}
		}
	}
}

func overlaps(ax, ay float64, a *component.Collider, bx, by float64, b *component.Collider) bool {
	return math.Abs(ax-bx) <= a.HalfW+b.HalfW && math.Abs(ay-by) <= a.HalfH+b.HalfH
}

// activeBullets returns the ids of bullets in flight.
func activeBullets(w *world.State) []ecs.EntityID {
	var ids []ecs.EntityID
	for _, id := range w.Bullets.IDs() {
		if w.Active(id) {
			ids = append(ids, id)
		}
	}
	return ids
}
