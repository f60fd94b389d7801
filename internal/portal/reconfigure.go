package portal

import (
	"go.uber.org/zap"

	"github.com/playground/spacesim/internal/config"
)

// Change names the setting that changed in a live reconfiguration.
type Change uint8

const (
	ChangePortalSize Change = iota
	ChangePortalPos
	ChangePortalEdgeOffset
	ChangeParticleSize
	ChangeParticleSpawnInterval
	ChangeParticleMoveSpeed
	ChangeParticleSpiralOffsetAngle
	ChangeParticleTrailSpawnInterval
	ChangeParticleTrailTimeout
)

var changeNames = [...]string{
	"portal_size", "portal_pos", "portal_edge_offset",
	"particle_size", "particle_spawn_interval", "particle_move_speed",
	"particle_spiral_offset_angle", "particle_trail_spawn_interval", "particle_trail_timeout",
}

func (c Change) String() string {
	if int(c) >= len(changeNames) {
		return "unknown"
	}
	return changeNames[c]
}

// Reconfigure swaps in cfg after change. Most settings are read every tick;
// a new spawn interval restarts the spawn timer and a new position or edge
// offset moves the portal. Motes already in flight keep their positions.
func (p *Portal) Reconfigure(change Change, cfg config.PortalConfig) {
	p.cfg = cfg
	switch change {
	case ChangeParticleSpawnInterval:
		p.spawnElapsed = 0
	case ChangePortalPos, ChangePortalEdgeOffset:
		p.x, p.y = cfg.Pos.Resolve(cfg.WindowWidth, cfg.WindowHeight, cfg.EdgeOffset)
	}
	p.log.Info("portal reconfigured", zap.Stringer("change", change))
}

// Diff lists the settings that differ between old and cur, in Change order.
func Diff(old, cur config.PortalConfig) []Change {
	var out []Change
	add := func(differ bool, c Change) {
		if differ {
			out = append(out, c)
		}
	}
	add(old.Size != cur.Size, ChangePortalSize)
	add(old.Pos != cur.Pos, ChangePortalPos)
	add(old.EdgeOffset != cur.EdgeOffset, ChangePortalEdgeOffset)
	add(old.Particle.Size != cur.Particle.Size, ChangeParticleSize)
	add(old.Particle.SpawnInterval != cur.Particle.SpawnInterval, ChangeParticleSpawnInterval)
	add(old.Particle.MoveSpeed != cur.Particle.MoveSpeed, ChangeParticleMoveSpeed)
	add(old.Particle.SpiralOffsetAngle != cur.Particle.SpiralOffsetAngle, ChangeParticleSpiralOffsetAngle)
	add(old.Particle.Trail.SpawnInterval != cur.Particle.Trail.SpawnInterval, ChangeParticleTrailSpawnInterval)
	add(old.Particle.Trail.Timeout != cur.Particle.Trail.Timeout, ChangeParticleTrailTimeout)
	return out
}

// Apply reconfigures for every change between the current settings and cfg.
// It returns the changes applied.
func (p *Portal) Apply(cfg config.PortalConfig) []Change {
	changes := Diff(p.cfg, cfg)
	for _, c := range changes {
		p.Reconfigure(c, cfg)
	}
	return changes
}
