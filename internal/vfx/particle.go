// Package vfx runs short-lived particle bursts: spawned by a gameplay event,
// advanced once per tick, and torn down as a unit when their timer runs out.
package vfx

import (
	"math"
	"time"

	"github.com/playground/spacesim/internal/rng"
)

// Vec2 is a 2D vector in world units.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64         { return math.Hypot(v.X, v.Y) }
func FromAngle(rad float64) Vec2    { return Vec2{math.Cos(rad), math.Sin(rad)} }

// Particle is one piece of a burst. Everything but Position is fixed at spawn.
// Position is local to the owning effect's origin.
type Particle struct {
	Position  Vec2
	Rotation  float64 // radians
	Direction Vec2    // unit vector
	Speed     float64 // units per second
	Size      float64
}

// Params parameterises a burst. Ranges are inclusive of Min and exclusive of
// Max; Min == Max pins the value.
type Params struct {
	Count       int
	SpeedMin    float64
	SpeedMax    float64
	SizeMin     float64
	SizeMax     float64
	DurationMin time.Duration
	DurationMax time.Duration
}

// ExplosionParams is the burst the shooter spawns on a damaging hit.
func ExplosionParams() Params {
	return Params{
		Count:       5,
		SpeedMin:    20,
		SpeedMax:    30,
		SizeMin:     8,
		SizeMax:     25,
		DurationMin: 200 * time.Millisecond,
		DurationMax: 300 * time.Millisecond,
	}
}

func newParticle(src rng.Source, p Params) Particle {
	rotation := src.Float64() * 2 * math.Pi
	angle := src.Float64() * 2 * math.Pi
	return Particle{
		Rotation:  rotation,
		Direction: FromAngle(angle),
		Speed:     rng.Range(src, p.SpeedMin, p.SpeedMax),
		Size:      rng.Range(src, p.SizeMin, p.SizeMax),
	}
}

func drawDuration(src rng.Source, p Params) time.Duration {
	if p.DurationMax <= p.DurationMin {
		return p.DurationMin
	}
	span := float64(p.DurationMax - p.DurationMin)
	return p.DurationMin + time.Duration(src.Float64()*span)
}

// Outline returns the three vertices of the hollow triangle drawn for the
// particle, relative to the effect origin. t is the effect's elapsed fraction;
// the triangle grows from a point to full Size over the effect's life.
func (p Particle) Outline(t float64) [3]Vec2 {
	var pts [3]Vec2
	r := p.Size * t
	for j := range pts {
		a := p.Rotation + float64(j)*2*math.Pi/3
		pts[j] = p.Position.Add(FromAngle(a).Scale(r))
	}
	return pts
}
