package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadVfxTable(t *testing.T) {
	p := writeFile(t, "vfx_list.yaml", `
- kind: explosion
  count: 5
  speed_min: 20
  speed_max: 30
  size_min: 8
  size_max: 25
  duration_min: 200ms
  duration_max: 300ms
- kind: spark
  count: 2
  speed_min: 1
  speed_max: 1
  size_min: 1
  size_max: 1
  duration_min: 50ms
  duration_max: 50ms
`)
	tbl, err := LoadVfxTable(p)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Count() != 2 {
		t.Fatalf("count = %d", tbl.Count())
	}
	e := tbl.Get("explosion")
	if e == nil {
		t.Fatal("explosion missing")
	}
	params := e.Params()
	if params.Count != 5 || params.DurationMin != 200*time.Millisecond || params.DurationMax != 300*time.Millisecond {
		t.Errorf("params = %+v", params)
	}
	if got := tbl.Kinds(); len(got) != 2 || got[0] != "explosion" || got[1] != "spark" {
		t.Errorf("kinds = %v", got)
	}
	if tbl.Get("nope") != nil {
		t.Error("unknown kind found")
	}
	if _, ok := tbl.Presets()["spark"]; !ok {
		t.Error("presets missing spark")
	}
}

func TestLoadVfxTableRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no kind", "- count: 1\n  duration_max: 1s\n"},
		{"speed range", "- kind: a\n  speed_min: 5\n  speed_max: 1\n  duration_max: 1s\n"},
		{"zero duration", "- kind: a\n"},
		{"duplicate", "- kind: a\n  duration_max: 1s\n- kind: a\n  duration_max: 1s\n"},
		{"not a list", "kind: a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadVfxTable(writeFile(t, "vfx.yaml", tt.body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadSpawnList(t *testing.T) {
	p := writeFile(t, "spawn_list.yaml", `
asteroids:
  - { x: 1, y: 2, blocks: 60 }
enemies:
  - { x: 3, y: 4 }
  - { x: 5, y: 6, health: 40 }
`)
	l, err := LoadSpawnList(p)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Asteroids) != 1 || l.Asteroids[0].Blocks != 60 {
		t.Errorf("asteroids = %+v", l.Asteroids)
	}
	if len(l.Enemies) != 2 || l.Enemies[0].Health != 0 || l.Enemies[1].Health != 40 {
		t.Errorf("enemies = %+v", l.Enemies)
	}

	if _, err := LoadSpawnList(writeFile(t, "bad.yaml", "asteroids:\n  - { x: 0, y: 0, blocks: 0 }\n")); err == nil {
		t.Error("zero-block asteroid accepted")
	}
	if _, err := LoadSpawnList(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file accepted")
	}
}

func TestShippedTables(t *testing.T) {
	dir := filepath.Join("..", "..", "data")
	tbl, err := LoadVfxTable(filepath.Join(dir, "vfx_list.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, kind := range []string{"explosion", "debris"} {
		if tbl.Get(kind) == nil {
			t.Errorf("%s preset missing", kind)
		}
	}
	if _, err := LoadSpawnList(filepath.Join(dir, "spawn_list.yaml")); err != nil {
		t.Fatal(err)
	}
}
