package system

import (
	"time"

	"github.com/playground/spacesim/internal/core/ecs"
	coresys "github.com/playground/spacesim/internal/core/system"
	"github.com/playground/spacesim/internal/world"
)

// FireControl reports whether the trigger is held this tick.
type FireControl interface {
	Held() bool
}

// Autopilot holds the trigger forever.
type Autopilot struct{}

func (Autopilot) Held() bool { return true }

// FireSystem shoots from the ship nozzle on a repeating cooldown.
// At most one shot per tick. Phase 0 (Input).
type FireSystem struct {
	world    *world.State
	ship     ecs.EntityID
	control  FireControl
	interval time.Duration
	speed    float64
	elapsed  time.Duration
	shots    uint64
}

func NewFireSystem(ws *world.State, ship ecs.EntityID, control FireControl, interval time.Duration, speed float64) *FireSystem {
	return &FireSystem{world: ws, ship: ship, control: control, interval: interval, speed: speed}
}

func (s *FireSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *FireSystem) Update(dt time.Duration) {
	if !s.cooldownFinished(dt) || !s.control.Held() {
		return
	}
	if !s.world.ECS.Alive(s.ship) {
		return
	}
	x, y, heading := s.world.Nozzle(s.ship)
	s.world.BulletSpawner.Spawn(world.BulletSpawn{X: x, Y: y, Heading: heading, Speed: s.speed})
	s.shots++
}

// cooldownFinished advances the repeating timer and reports whether it
// wrapped during this tick.
func (s *FireSystem) cooldownFinished(dt time.Duration) bool {
	if s.interval <= 0 {
		return true
	}
	s.elapsed += dt
	if s.elapsed < s.interval {
		return false
	}
	s.elapsed %= s.interval
	return true
}

func (s *FireSystem) Shots() uint64 { return s.shots }
