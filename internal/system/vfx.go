package system

import (
	"time"

	coresys "github.com/playground/spacesim/internal/core/system"
	"github.com/playground/spacesim/internal/vfx"
)

// VfxSystem advances every live effect and despawns the finished ones.
// Phase 4 (PostUpdate).
type VfxSystem struct {
	effects *vfx.Engine
}

func NewVfxSystem(effects *vfx.Engine) *VfxSystem {
	return &VfxSystem{effects: effects}
}

func (s *VfxSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *VfxSystem) Update(dt time.Duration) {
	if s.effects == nil {
		return
	}
	s.effects.Update(dt)
}
