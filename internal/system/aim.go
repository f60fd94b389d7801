package system

import (
	"math"
	"time"

	"github.com/playground/spacesim/internal/core/ecs"
	coresys "github.com/playground/spacesim/internal/core/system"
	"github.com/playground/spacesim/internal/world"
)

// Aimer picks the ship's target heading. *scripting.Engine implements it.
type Aimer interface {
	AimHeading(elapsed, current float64) (float64, bool)
}

// AimSystem turns the ship halfway toward the scripted heading every tick.
// Phase 0 (Input).
type AimSystem struct {
	world   *world.State
	ship    ecs.EntityID
	aimer   Aimer
	elapsed time.Duration
}

func NewAimSystem(ws *world.State, ship ecs.EntityID, aimer Aimer) *AimSystem {
	return &AimSystem{world: ws, ship: ship, aimer: aimer}
}

func (s *AimSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *AimSystem) Update(dt time.Duration) {
	s.elapsed += dt
	tf, ok := s.world.Transforms.Get(s.ship)
	if !ok {
		return
	}
	target, ok := s.aimer.AimHeading(s.elapsed.Seconds(), tf.Rotation)
	if !ok {
		return
	}
	tf.Rotation = normalizeAngle(tf.Rotation + angleDiff(target, tf.Rotation)/2)
}

// angleDiff returns the signed shortest turn from b to a, in (-π, π].
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	switch {
	case d > math.Pi:
		d -= 2 * math.Pi
	case d <= -math.Pi:
		d += 2 * math.Pi
	}
	return d
}

func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
