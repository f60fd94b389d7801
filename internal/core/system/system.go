package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: aim + fire requests
	PhasePreUpdate               // 1: deliver last tick's events
	PhaseUpdate                  // 2: gameplay
	PhasePhysics                 // 3: motion integration + contacts
	PhasePostUpdate              // 4: effects
	PhasePersist                 // 5: run statistics
	PhaseCleanup                 // 6: destroy queued entities
)

var phaseNames = [...]string{"input", "pre_update", "update", "physics", "post_update", "persist", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
