package system

import (
	"math"
	"time"

	"github.com/playground/spacesim/internal/component"
	"github.com/playground/spacesim/internal/core/ecs"
	coresys "github.com/playground/spacesim/internal/core/system"
	"github.com/playground/spacesim/internal/world"
)

// MotionSystem integrates velocity for enabled, non-static bodies and keeps
// the broadphase grid current. Phase 3 (Physics), before ContactSystem.
type MotionSystem struct {
	world *world.State
}

func NewMotionSystem(ws *world.State) *MotionSystem {
	return &MotionSystem{world: ws}
}

func (s *MotionSystem) Phase() coresys.Phase { return coresys.PhasePhysics }

func (s *MotionSystem) Update(dt time.Duration) {
	secs := dt.Seconds()
	w := s.world
	ecs.Sorted3(w.Bodies, w.Transforms, w.Velocities, func(id ecs.EntityID, b *component.RigidBody, tf *component.Transform, v *component.Velocity) {
		if !b.Enabled || b.Kind == component.Static {
			return
		}
		if ms, ok := w.MaxSpeed.Get(id); ok && b.Kind == component.Dynamic {
			if speed := math.Hypot(v.X, v.Y); speed > ms.Value && speed > 0 {
				k := ms.Value / speed
				v.X, v.Y = v.X*k, v.Y*k
			}
		}
		if v.X == 0 && v.Y == 0 {
			return
		}
		oldX, oldY := tf.X, tf.Y
		tf.X += v.X * secs
		tf.Y += v.Y * secs
		if c, ok := w.Colliders.Get(id); ok && !c.Sensor {
			w.Grid.Move(id, oldX, oldY, tf.X, tf.Y)
		}
	})
}
