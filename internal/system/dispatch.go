package system

import (
	"time"

	"github.com/playground/spacesim/internal/core/event"
	coresys "github.com/playground/spacesim/internal/core/system"
)

// EventDispatchSystem swaps the bus buffers and delivers last tick's events.
// Phase 1 (PreUpdate).
type EventDispatchSystem struct {
	bus        *event.Bus
	dispatched uint64
}

func NewEventDispatchSystem(bus *event.Bus) *EventDispatchSystem {
	return &EventDispatchSystem{bus: bus}
}

func (s *EventDispatchSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *EventDispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.dispatched += uint64(s.bus.DispatchAll())
}

func (s *EventDispatchSystem) Dispatched() uint64 { return s.dispatched }
