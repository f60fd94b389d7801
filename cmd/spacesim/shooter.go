package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/playground/spacesim/internal/config"
	"github.com/playground/spacesim/internal/core/ecs"
	coresys "github.com/playground/spacesim/internal/core/system"
	"github.com/playground/spacesim/internal/data"
	"github.com/playground/spacesim/internal/persist"
	"github.com/playground/spacesim/internal/region"
	"github.com/playground/spacesim/internal/rng"
	"github.com/playground/spacesim/internal/scripting"
	"github.com/playground/spacesim/internal/system"
	"github.com/playground/spacesim/internal/vfx"
	"github.com/playground/spacesim/internal/world"
)

// shooter is a fully wired shooter simulation.
type shooter struct {
	state   *world.State
	runner  *coresys.Runner
	stats   *system.StatsSystem
	fire    *system.FireSystem
	bullets *system.BulletLifecycle
	lua     *scripting.Engine
	ship    ecs.EntityID
	run     *persist.Run
	tables  loadedTables
}

type loadedTables struct {
	presets   int
	asteroids int
	enemies   int
	blocks    int
}

func (s *shooter) Close() {
	s.lua.Close()
}

// newShooter builds the world from cfg: effect presets and spawn list from
// the data dir, Lua hooks from the scripts dir, then asteroids, enemies, the
// ship and every system.
func newShooter(cfg *config.Config, seed uint64, log *zap.Logger) (*shooter, error) {
	presets, err := loadPresets(cfg)
	if err != nil {
		return nil, err
	}
	spawns, err := loadSpawnList(cfg)
	if err != nil {
		return nil, err
	}
	lua, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return nil, fmt.Errorf("scripting: %w", err)
	}

	src := rng.New(seed)
	effects := vfx.NewEngine(presets, rng.Fork(src), log)
	ws := world.NewState(world.Options{
		Width:         cfg.Sim.Width,
		Height:        cfg.Sim.Height,
		CellSize:      cfg.Sim.CellSize,
		Bullet:        world.BulletShape{Width: cfg.Bullet.Width, Length: cfg.Bullet.Length},
		BlockSize:     cfg.Block.Size,
		BlockHealth:   cfg.Block.Health,
		BulletPrewarm: cfg.Bullet.Prewarm,
		BlockPrewarm:  cfg.Block.Prewarm,
	}, src, effects, log)

	s := &shooter{
		state:  ws,
		runner: coresys.NewRunner(),
		lua:    lua,
		run: &persist.Run{
			Mode:       "shooter",
			Seed:       seed,
			ConfigHash: persist.Fingerprint(cfg.Raw),
		},
		tables: loadedTables{presets: len(presets)},
	}

	for _, a := range spawns.Asteroids {
		bp := region.Generate(a.Blocks, src)
		ws.BuildAsteroid(a.X, a.Y, bp, cfg.Block.RespawnDelay)
		s.tables.asteroids++
		s.tables.blocks += bp.Len()
	}
	for _, e := range spawns.Enemies {
		hp := e.Health
		if hp <= 0 {
			hp = cfg.Enemy.Health
		}
		ws.NewEnemy(e.X, e.Y, hp, 0)
		s.tables.enemies++
	}
	s.ship = ws.NewShip(cfg.Ship.X, cfg.Ship.Y, cfg.Ship.Heading, cfg.Ship.MaxSpeed)

	s.fire = system.NewFireSystem(ws, s.ship, system.Autopilot{}, cfg.Bullet.FireInterval, cfg.Bullet.Speed)
	s.bullets = system.NewBulletLifecycle(ws, lua, cfg.Bullet.Damage, log)
	system.NewHealthSystem(ws, log)
	s.stats = system.NewStatsSystem(ws, s.run, log, cfg.Sim.StatsInterval)

	s.runner.Register(system.NewAimSystem(ws, s.ship, lua))
	s.runner.Register(s.fire)
	s.runner.Register(system.NewEventDispatchSystem(ws.Bus))
	s.runner.Register(system.NewAsteroidRespawnSystem(ws, log))
	s.runner.Register(system.NewMotionSystem(ws))
	s.runner.Register(system.NewContactSystem(ws))
	s.runner.Register(system.NewVfxSystem(effects))
	s.runner.Register(s.stats)
	s.runner.Register(system.NewCleanupSystem(ws))
	return s, nil
}

// Tick advances the simulation by one fixed step.
func (s *shooter) Tick(dt time.Duration) {
	s.runner.Tick(dt)
}

// Finish stamps the run record with the final counters.
func (s *shooter) Finish(now time.Time) *persist.Run {
	s.stats.Snapshot()
	s.run.FinishedAt = now
	return s.run
}

// loadPresets reads vfx_list.yaml when present and makes sure the explosion
// preset exists, falling back to the [vfx] config section.
func loadPresets(cfg *config.Config) (map[string]vfx.Params, error) {
	presets := make(map[string]vfx.Params)
	tbl, err := data.LoadVfxTable(filepath.Join(cfg.Data.Dir, "vfx_list.yaml"))
	switch {
	case err == nil:
		presets = tbl.Presets()
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("load vfx list: %w", err)
	}
	if _, ok := presets[system.EffectExplosion]; !ok {
		presets[system.EffectExplosion] = vfx.Params{
			Count:       cfg.Vfx.Count,
			SpeedMin:    cfg.Vfx.SpeedMin,
			SpeedMax:    cfg.Vfx.SpeedMax,
			SizeMin:     cfg.Vfx.SizeMin,
			SizeMax:     cfg.Vfx.SizeMax,
			DurationMin: cfg.Vfx.DurationMin,
			DurationMax: cfg.Vfx.DurationMax,
		}
	}
	return presets, nil
}

func loadSpawnList(cfg *config.Config) (*data.SpawnList, error) {
	l, err := data.LoadSpawnList(filepath.Join(cfg.Data.Dir, "spawn_list.yaml"))
	switch {
	case err == nil:
		return l, nil
	case errors.Is(err, fs.ErrNotExist):
		return data.DefaultSpawnList(), nil
	default:
		return nil, fmt.Errorf("load spawn list: %w", err)
	}
}
