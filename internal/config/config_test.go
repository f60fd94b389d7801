package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "spacesim.toml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadOverridesDefaults(t *testing.T) {
	p := writeConfig(t, `
[sim]
seed = 42
tick_rate = "20ms"

[bullet]
fire_interval = "250ms"
prewarm = 2
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Sim.Seed != 42 || cfg.Sim.TickRate != 20*time.Millisecond {
		t.Errorf("sim = %+v", cfg.Sim)
	}
	if cfg.Bullet.FireInterval != 250*time.Millisecond || cfg.Bullet.Prewarm != 2 {
		t.Errorf("bullet = %+v", cfg.Bullet)
	}
	// Untouched sections keep their defaults.
	if cfg.Bullet.Speed != 2000 || cfg.Vfx.Count != 5 {
		t.Errorf("defaults lost: speed=%v count=%v", cfg.Bullet.Speed, cfg.Vfx.Count)
	}
	if cfg.Path != p || len(cfg.Raw) == 0 {
		t.Error("path or raw bytes not recorded")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[sim\n", "parse config"},
		{"bad driver", "[storage]\ndriver = \"mysql\"\n", "not supported"},
		{"zero tick", "[sim]\ntick_rate = \"0s\"\n", "tick_rate"},
		{"bad anchor", "[portal]\npos = \"middle\"\n", "invalid portal position"},
		{"vfx range", "[vfx]\nduration_min = \"1s\"\nduration_max = \"10ms\"\n", "exceeds"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" || cfg.Sim.TickRate != time.Second/60 {
		t.Errorf("unexpected config: path=%q tick=%s", cfg.Path, cfg.Sim.TickRate)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("Load should fail on a missing file")
	}
}

func TestRelPos(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   RelPos
		wx, wy float64
	}{
		{"center", `pos = "center"`, RelPos{Anchor: AnchorCenter}, 0, 0},
		{"mixed case", `pos = "TopRight"`, RelPos{Anchor: AnchorTopRight}, 440, 290},
		{"bottom left", `pos = "bottomleft"`, RelPos{Anchor: AnchorBottomLeft}, -440, -290},
		{"custom", `pos = { x = 12, y = -3.5 }`, RelPos{Anchor: AnchorCustom, X: 12, Y: -3.5}, 12, -3.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, "[portal]\nedge_offset = 10\n"+tt.body+"\n"))
			if err != nil {
				t.Fatal(err)
			}
			if cfg.Portal.Pos != tt.want {
				t.Fatalf("pos = %+v, want %+v", cfg.Portal.Pos, tt.want)
			}
			x, y := cfg.Portal.Pos.Resolve(900, 600, cfg.Portal.EdgeOffset)
			if x != tt.wx || y != tt.wy {
				t.Errorf("resolve = (%v,%v), want (%v,%v)", x, y, tt.wx, tt.wy)
			}
		})
	}
}

func TestRelPosTableErrors(t *testing.T) {
	for _, body := range []string{
		`pos = { x = 1 }`,
		`pos = { x = 1, y = 2, z = 3 }`,
		`pos = { x = "a", y = 2 }`,
		`pos = 5`,
	} {
		if _, err := Load(writeConfig(t, "[portal]\n"+body+"\n")); err == nil {
			t.Errorf("%s: expected error", body)
		}
	}
}

func TestResolvePath(t *testing.T) {
	t.Setenv(EnvPath, "")
	if got := ResolvePath(""); got != DefaultPath {
		t.Errorf("default = %q", got)
	}
	t.Setenv(EnvPath, "/etc/spacesim.toml")
	if got := ResolvePath(""); got != "/etc/spacesim.toml" {
		t.Errorf("env = %q", got)
	}
	if got := ResolvePath("local.toml"); got != "local.toml" {
		t.Errorf("flag = %q", got)
	}
}

func TestShippedConfigLoads(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config", "spacesim.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Portal.Particle.Trail.Timeout != 500*time.Millisecond {
		t.Errorf("trail timeout = %s", cfg.Portal.Particle.Trail.Timeout)
	}
	if cfg.Storage.ConnMaxLifetime != 30*time.Minute {
		t.Errorf("conn lifetime = %s", cfg.Storage.ConnMaxLifetime)
	}
}
