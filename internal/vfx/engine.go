package vfx

import (
	"time"

	"github.com/playground/spacesim/internal/rng"
	"go.uber.org/zap"
)

// Stats counts effect lifecycles since the engine was created.
type Stats struct {
	Spawned   uint64
	Despawned uint64
}

// Engine owns every live effect. Game loop only.
type Engine struct {
	presets map[string]Params
	src     rng.Source
	effects []*Effect
	nextID  uint64
	stats   Stats
	log     *zap.Logger
}

// NewEngine returns an engine drawing from src. presets maps effect kinds to
// their burst parameters; the map is copied.
func NewEngine(presets map[string]Params, src rng.Source, log *zap.Logger) *Engine {
	cp := make(map[string]Params, len(presets))
	for k, v := range presets {
		cp[k] = v
	}
	return &Engine{presets: cp, src: src, log: log}
}

// Trigger spawns a preset burst at origin. Unknown kinds are logged and
// ignored.
func (en *Engine) Trigger(kind string, origin Vec2) (*Effect, bool) {
	p, ok := en.presets[kind]
	if !ok {
		en.log.Warn("unknown effect kind", zap.String("kind", kind))
		return nil, false
	}
	return en.Spawn(kind, origin, p), true
}

// Spawn starts a burst with explicit parameters. Each effect draws from its
// own fork of the engine's source.
func (en *Engine) Spawn(kind string, origin Vec2, p Params) *Effect {
	en.nextID++
	e := NewEffect(kind, origin, p, rng.Fork(en.src))
	e.ID = en.nextID
	en.effects = append(en.effects, e)
	en.stats.Spawned++
	en.log.Debug("effect spawned",
		zap.String("kind", kind),
		zap.Uint64("id", e.ID),
		zap.Int("particles", len(e.Particles)),
		zap.Duration("duration", e.Duration()),
	)
	return e
}

// Update advances every effect by dt and drops the ones that finished.
// Returns how many were despawned.
func (en *Engine) Update(dt time.Duration) int {
	kept := en.effects[:0]
	done := 0
	for _, e := range en.effects {
		if e.Advance(dt) {
			done++
			continue
		}
		kept = append(kept, e)
	}
	for i := len(kept); i < len(en.effects); i++ {
		en.effects[i] = nil
	}
	en.effects = kept
	en.stats.Despawned += uint64(done)
	return done
}

// Each hands every live effect to fn in spawn order. fn must not retain it.
func (en *Engine) Each(fn func(*Effect)) {
	for _, e := range en.effects {
		fn(e)
	}
}

func (en *Engine) Len() int     { return len(en.effects) }
func (en *Engine) Stats() Stats { return en.stats }

// Preset returns the parameters registered for kind.
func (en *Engine) Preset(kind string) (Params, bool) {
	p, ok := en.presets[kind]
	return p, ok
}
