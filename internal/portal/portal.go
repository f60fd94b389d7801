// Package portal runs the portal visualizer: motes appear on a ring around
// the portal, spiral into its centre and leave fading trail dots behind.
// Motes and trail dots are recycled through pools.
package portal

import (
	"math"
	"time"

	"github.com/playground/spacesim/internal/component"
	"github.com/playground/spacesim/internal/config"
	"github.com/playground/spacesim/internal/core/ecs"
	"github.com/playground/spacesim/internal/pool"
	"github.com/playground/spacesim/internal/rng"
	"github.com/playground/spacesim/internal/spawn"
	"go.uber.org/zap"
)

// MoteKind and TrailKind tag the two recycled object kinds.
type (
	MoteKind  struct{}
	TrailKind struct{}
)

func (MoteKind) KindName() string  { return "mote" }
func (TrailKind) KindName() string { return "trail" }

// Point is a spawn position.
type Point struct{ X, Y float64 }

// Stats counts mote and trail lifecycles.
type Stats struct {
	Arrived       uint64
	TrailsExpired uint64
}

// Portal owns every mote and trail dot. Game loop only.
type Portal struct {
	cfg  config.PortalConfig
	x, y float64

	world      *ecs.World
	transforms *ecs.PtrComponentStore[component.Transform]
	visibility *ecs.PtrComponentStore[component.Visibility]
	motes      *ecs.PtrComponentStore[component.PortalMote]
	trails     *ecs.PtrComponentStore[component.Trail]

	Motes  *spawn.Coordinator[MoteKind, Point]
	Trails *spawn.Coordinator[TrailKind, Point]

	spawnElapsed time.Duration
	src          rng.Source
	stats        Stats
	log          *zap.Logger
}

// New builds a portal from cfg and prewarms the mote pool.
func New(cfg config.PortalConfig, src rng.Source, log *zap.Logger) *Portal {
	w := ecs.NewWorld()
	r := w.Registry()
	p := &Portal{
		cfg:        cfg,
		world:      w,
		transforms: ecs.NewStore[component.Transform](r),
		visibility: ecs.NewStore[component.Visibility](r),
		motes:      ecs.NewStore[component.PortalMote](r),
		trails:     ecs.NewStore[component.Trail](r),
		src:        src,
		log:        log,
	}
	p.x, p.y = cfg.Pos.Resolve(cfg.WindowWidth, cfg.WindowHeight, cfg.EdgeOffset)
	p.Motes = spawn.NewCoordinator[MoteKind, Point](
		pool.NewPool[MoteKind](cfg.Particle.Prewarm), &moteBody{p: p})
	p.Trails = spawn.NewCoordinator[TrailKind, Point](
		pool.NewPool[TrailKind](cfg.Particle.Prewarm), &trailBody{p: p})
	p.Motes.Prewarm(cfg.Particle.Prewarm, Point{})
	log.Debug("portal ready",
		zap.Float64("x", p.x),
		zap.Float64("y", p.y),
		zap.Stringer("pos", cfg.Pos),
		zap.Int("prewarm", cfg.Particle.Prewarm),
	)
	return p
}

// Centre returns the portal position.
func (p *Portal) Centre() (x, y float64) { return p.x, p.y }

// Update advances the portal by one tick: age out trail dots, spawn, then
// move motes, dropping trail dots and despawning arrivals.
func (p *Portal) Update(dt time.Duration) {
	timeout := p.cfg.Particle.Trail.Timeout
	for _, id := range p.trails.IDs() {
		if !p.visibility.MustGet(id).Visible {
			continue
		}
		tr := p.trails.MustGet(id)
		tr.Age += dt
		if tr.Age >= timeout {
			p.Trails.ReleaseToPool(id)
			p.stats.TrailsExpired++
		}
	}

	if p.spawnDue(dt) {
		angle := p.src.Float64() * 2 * math.Pi
		p.Motes.Spawn(Point{
			X: p.x + math.Cos(angle)*p.cfg.Size,
			Y: p.y + math.Sin(angle)*p.cfg.Size,
		})
	}

	secs := dt.Seconds()
	step := p.cfg.Particle.MoveSpeed * secs
	offset := p.cfg.Particle.SpiralOffsetAngle * math.Pi / 180
	trailEvery := p.cfg.Particle.Trail.SpawnInterval

	for _, id := range p.motes.IDs() {
		if !p.visibility.MustGet(id).Visible {
			continue
		}
		tf := p.transforms.MustGet(id)
		dx, dy := p.x-tf.X, p.y-tf.Y
		if dist := math.Hypot(dx, dy); step >= dist && offset == 0 {
			tf.X, tf.Y = p.x, p.y
		} else {
			heading := math.Atan2(dy, dx) + offset
			tf.X += math.Cos(heading) * step
			tf.Y += math.Sin(heading) * step
		}

		if trailEvery > 0 {
			m := p.motes.MustGet(id)
			m.SinceTrail += dt
			if m.SinceTrail >= trailEvery {
				m.SinceTrail %= trailEvery
				p.Trails.Spawn(Point{X: tf.X, Y: tf.Y})
			}
		}

		if math.Hypot(p.x-tf.X, p.y-tf.Y) <= p.cfg.Particle.Size {
			p.Motes.ReleaseToPool(id)
			p.stats.Arrived++
		}
	}
}

func (p *Portal) spawnDue(dt time.Duration) bool {
	every := p.cfg.Particle.SpawnInterval
	if every <= 0 {
		return false
	}
	p.spawnElapsed += dt
	if p.spawnElapsed < every {
		return false
	}
	p.spawnElapsed %= every
	return true
}

// EachMote visits the position of every visible mote in id order.
func (p *Portal) EachMote(fn func(x, y float64)) {
	p.eachVisible(p.motes.IDs(), fn)
}

// EachTrail visits every visible trail dot with its remaining opacity.
func (p *Portal) EachTrail(fn func(x, y, alpha float64)) {
	timeout := p.cfg.Particle.Trail.Timeout
	for _, id := range p.trails.IDs() {
		if !p.visibility.MustGet(id).Visible {
			continue
		}
		tf := p.transforms.MustGet(id)
		alpha := 0.0
		if timeout > 0 {
			alpha = 1 - float64(p.trails.MustGet(id).Age)/float64(timeout)
		}
		fn(tf.X, tf.Y, alpha)
	}
}

func (p *Portal) eachVisible(ids []ecs.EntityID, fn func(x, y float64)) {
	for _, id := range ids {
		if p.visibility.MustGet(id).Visible {
			tf := p.transforms.MustGet(id)
			fn(tf.X, tf.Y)
		}
	}
}

// ActiveMotes and ActiveTrails count visible objects.
func (p *Portal) ActiveMotes() int  { return p.countVisible(p.motes.IDs()) }
func (p *Portal) ActiveTrails() int { return p.countVisible(p.trails.IDs()) }

func (p *Portal) countVisible(ids []ecs.EntityID) int {
	n := 0
	for _, id := range ids {
		if p.visibility.MustGet(id).Visible {
			n++
		}
	}
	return n
}

func (p *Portal) Stats() Stats { return p.stats }

// Config returns the live configuration.
func (p *Portal) Config() config.PortalConfig { return p.cfg }
