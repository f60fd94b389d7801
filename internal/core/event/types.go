package event

import "github.com/playground/spacesim/internal/core/ecs"

// Collision reports that a sensor (usually a bullet) touched another body.
// X and Y are the sensor's world position at contact.
type Collision struct {
	Sensor ecs.EntityID
	Target ecs.EntityID
	X, Y   float64
}

// LeftPlayArea reports an object outside the simulated bounds.
type LeftPlayArea struct {
	Entity ecs.EntityID
}

// Damaged is emitted when a collision removed health from a target.
type Damaged struct {
	Target ecs.EntityID
	Amount float64
	X, Y   float64
}

// Destroyed is emitted when a target's health reached zero.
type Destroyed struct {
	Entity ecs.EntityID
	Kind   string
}
