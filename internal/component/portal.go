package component

import "time"

// PortalMote is a particle drifting into the portal. SinceTrail counts time
// since it last dropped a trail dot.
type PortalMote struct {
	SinceTrail time.Duration
}

// Trail is a short-lived dot left behind a mote.
type Trail struct {
	Age time.Duration
}
