package main

import (
	"os"
	"strings"
	"syscall"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/playground/spacesim/internal/config"
	"github.com/playground/spacesim/internal/persist"
	"github.com/playground/spacesim/internal/region"
	"github.com/playground/spacesim/internal/rng"
	"github.com/playground/spacesim/internal/system"
)

func repoConfig() *config.Config {
	cfg := config.Default()
	cfg.Data.Dir = "../../data"
	cfg.Scripting.Dir = "../../scripts"
	cfg.Storage.Driver = "none"
	return cfg
}

func TestNewShooterFromRepoData(t *testing.T) {
	s, err := newShooter(repoConfig(), 42, zap.NewNop())
	if err != nil {
		t.Fatalf("newShooter: %v", err)
	}
	defer s.Close()

	if s.tables.asteroids != 3 || s.tables.enemies != 2 {
		t.Errorf("asteroids=%d enemies=%d, want 3 and 2", s.tables.asteroids, s.tables.enemies)
	}
	if s.tables.blocks != 60+25+12 {
		t.Errorf("blocks = %d, want 97", s.tables.blocks)
	}
	if s.tables.presets < 2 {
		t.Errorf("presets = %d, want explosion and debris", s.tables.presets)
	}
	if !s.lua.Has("calc_bullet_damage") {
		t.Error("combat script not loaded")
	}

	for range 120 {
		s.Tick(time.Second / 60)
	}
	run := s.Finish(time.Now())
	if run.Ticks != 120 {
		t.Errorf("ticks = %d, want 120", run.Ticks)
	}
	if s.fire.Shots() == 0 {
		t.Error("ship never fired")
	}
	if run.Mode != "shooter" || run.Seed != 42 {
		t.Errorf("run = %s/%d", run.Mode, run.Seed)
	}
	if got := run.Pool("bullet"); got.Reused+got.Constructed != s.fire.Shots() {
		t.Errorf("bullet spawns %d+%d != shots %d", got.Reused, got.Constructed, s.fire.Shots())
	}
}

func TestNewShooterWithoutDataFiles(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	cfg.Scripting.Dir = t.TempDir()

	s, err := newShooter(cfg, 7, zap.NewNop())
	if err != nil {
		t.Fatalf("newShooter: %v", err)
	}
	defer s.Close()
	if s.tables.presets != 1 {
		t.Errorf("presets = %d, want the configured explosion only", s.tables.presets)
	}
	if _, ok := s.state.Effects.Preset(system.EffectExplosion); !ok {
		t.Error("explosion preset missing")
	}
	if s.tables.asteroids != 1 || s.tables.enemies != 1 {
		t.Errorf("asteroids=%d enemies=%d, want default layout", s.tables.asteroids, s.tables.enemies)
	}
}

func TestNewShooterBadSpawnList(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Dir = t.TempDir()
	cfg.Scripting.Dir = t.TempDir()
	if err := os.WriteFile(cfg.Data.Dir+"/spawn_list.yaml", []byte("asteroids: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := newShooter(cfg, 1, zap.NewNop()); err == nil {
		t.Fatal("expected error for malformed spawn list")
	}
}

func TestLoopStopsAtMaxTicks(t *testing.T) {
	var n int
	reason := loop(time.Millisecond, 5, true, make(chan os.Signal), func(time.Duration) { n++ }, zap.NewNop())
	if reason != "max_ticks" || n != 5 {
		t.Errorf("reason=%s ticks=%d, want max_ticks/5", reason, n)
	}
}

func TestLoopStopsOnSignal(t *testing.T) {
	ch := make(chan os.Signal, 1)
	ch <- syscall.SIGTERM
	var n int
	reason := loop(time.Millisecond, 0, true, ch, func(time.Duration) { n++ }, zap.NewNop())
	if reason != "signal" || n != 0 {
		t.Errorf("reason=%s ticks=%d, want signal/0", reason, n)
	}
}

func TestResolveSeed(t *testing.T) {
	defer func(v uint64) { flagSeed = v }(flagSeed)
	now := func() int64 { return 99 }

	tests := []struct {
		flag, cfg, want uint64
	}{
		{flag: 5, cfg: 7, want: 5},
		{flag: 0, cfg: 7, want: 7},
		{flag: 0, cfg: 0, want: 99},
	}
	for _, tt := range tests {
		flagSeed = tt.flag
		if got := resolveSeed(tt.cfg, now); got != tt.want {
			t.Errorf("resolveSeed(flag=%d, cfg=%d) = %d, want %d", tt.flag, tt.cfg, got, tt.want)
		}
	}
}

func TestRenderBlueprint(t *testing.T) {
	bp := region.Generate(30, rng.New(3))
	out := renderBlueprint(bp)
	if got := strings.Count(out, "@"); got != 1 {
		t.Errorf("origin markers = %d, want 1", got)
	}
	if got := strings.Count(out, "#"); got != bp.Len()-1 {
		t.Errorf("cell markers = %d, want %d", got, bp.Len()-1)
	}
	lo, hi := bp.Bounds()
	slots := int(hi.X-lo.X+1) * int(hi.Y-lo.Y+1)
	if got := strings.Count(out, "·"); got != slots-bp.Len() {
		t.Errorf("empty markers = %d, want %d", got, slots-bp.Len())
	}
}

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"bullets", 7},
		{"", 0},
		{"弾丸", 4},
	}
	for _, tt := range tests {
		if got := displayWidth(tt.in); got != tt.want {
			t.Errorf("displayWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStatLineGroupsThousands(t *testing.T) {
	line := statLine("ticks", 1234567)
	if !strings.Contains(line, "1,234,567") {
		t.Errorf("statLine = %q, want grouped digits", line)
	}
}

func TestFormatRun(t *testing.T) {
	r := persist.Run{
		ID:    3,
		Mode:  "portal",
		Seed:  11,
		Ticks: 1500,
		Pools: []persist.PoolStats{{Kind: "mote", Reused: 40, Constructed: 2}},
	}
	out := formatRun(r)
	for _, want := range []string{"#3", "portal", "1,500", "mote=40/2", "seed=11"} {
		if !strings.Contains(out, want) {
			t.Errorf("formatRun missing %q in %q", want, out)
		}
	}
}
