package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/playground/spacesim/internal/core/system"
	"github.com/playground/spacesim/internal/world"
)

// CleanupSystem frees despawned objects at tick end. Pooled bullets and
// blocks never reach it; they stay alive in their pools. Phase 6 (Cleanup).
type CleanupSystem struct {
	world     *world.State
	destroyed uint64
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	n := s.world.ECS.FlushDestroyQueue()
	if n == 0 {
		return
	}
	s.destroyed += uint64(n)
	s.world.Log().Debug("objects freed", zap.Int("count", n), zap.Uint64("total", s.destroyed))
}

// Destroyed returns how many objects have been freed so far.
func (s *CleanupSystem) Destroyed() uint64 { return s.destroyed }
