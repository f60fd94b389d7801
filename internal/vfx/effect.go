package vfx

import (
	"time"

	"github.com/playground/spacesim/internal/rng"
)

// State is an effect's lifecycle stage. Despawned is terminal.
type State uint8

const (
	Spawned State = iota
	Updating
	Despawned
)

func (s State) String() string {
	switch s {
	case Spawned:
		return "spawned"
	case Updating:
		return "updating"
	case Despawned:
		return "despawned"
	}
	return "unknown"
}

// Effect is one burst. It owns its particles outright; nothing else holds
// references into Particles.
type Effect struct {
	ID        uint64
	Kind      string
	Origin    Vec2
	Particles []Particle
	timer     Timer
	state     State
}

// NewEffect draws Count particles and a duration from src. All particles
// start at the origin.
func NewEffect(kind string, origin Vec2, p Params, src rng.Source) *Effect {
	e := &Effect{
		Kind:      kind,
		Origin:    origin,
		Particles: make([]Particle, 0, max(p.Count, 0)),
	}
	for i := 0; i < p.Count; i++ {
		e.Particles = append(e.Particles, newParticle(src, p))
	}
	e.timer = NewTimer(drawDuration(src, p))
	return e
}

// Advance ticks the timer and moves every particle to
// Direction*Speed*elapsed. It returns true on the tick the timer finishes;
// the effect is Despawned from then on and further calls do nothing.
func (e *Effect) Advance(dt time.Duration) bool {
	if e.state == Despawned {
		return false
	}
	e.state = Updating
	e.timer.Tick(dt)
	secs := e.timer.Elapsed().Seconds()
	for i := range e.Particles {
		p := &e.Particles[i]
		p.Position = p.Direction.Scale(p.Speed * secs)
	}
	if e.timer.Finished() {
		e.state = Despawned
		return true
	}
	return false
}

func (e *Effect) State() State            { return e.state }
func (e *Effect) Elapsed() time.Duration  { return e.timer.Elapsed() }
func (e *Effect) Duration() time.Duration { return e.timer.Duration() }

// RemainingFraction is the opacity the renderer applies: 1 at spawn, 0 at
// the end.
func (e *Effect) RemainingFraction() float64 { return 1 - e.timer.Fraction() }

// ElapsedFraction drives particle outline growth.
func (e *Effect) ElapsedFraction() float64 { return e.timer.Fraction() }
