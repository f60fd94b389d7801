package component

// Transform is an object's world placement. Rotation is in radians.
type Transform struct {
	X, Y     float64
	Rotation float64
}

// Velocity is linear velocity in units per second.
type Velocity struct {
	X, Y float64
}

// Visibility tells the renderer whether to draw the object.
type Visibility struct {
	Visible bool
}

// BodyKind mirrors the rigid body kinds of the physics collaborator.
type BodyKind uint8

const (
	Dynamic BodyKind = iota
	Kinematic
	Static
)

// RigidBody says how the physics collaborator treats an object.
// Enabled=false takes the object out of motion and contact checks entirely;
// pooled objects sit in that state.
type RigidBody struct {
	Kind    BodyKind
	Enabled bool
}

// Layer is a collision layer bit.
type Layer uint8

const (
	LayerDefault Layer = 1 << iota
	LayerPlayer
	LayerEnemy
	LayerBlock
	LayerBullet
)

// Collider is an axis-aligned box centred on the Transform, offset by
// OffsetX/OffsetY. Sensors report contacts without blocking.
type Collider struct {
	HalfW, HalfH     float64
	OffsetX, OffsetY float64
	Sensor           bool
	Layer            Layer
	Mask             Layer // layers this collider reports contacts with
}

// MaxSpeed caps a dynamic body's speed.
type MaxSpeed struct {
	Value float64
}
