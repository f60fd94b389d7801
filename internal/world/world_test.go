package world

import (
	"math"
	"testing"
	"time"

	"github.com/playground/spacesim/internal/region"
	"github.com/playground/spacesim/internal/rng"
	"go.uber.org/zap"
)

func testOptions() Options {
	return Options{
		Width:         900,
		Height:        600,
		CellSize:      128,
		Bullet:        BulletShape{Width: 16, Length: 64},
		BlockSize:     20,
		BlockHealth:   0,
		BulletPrewarm: 2,
		BlockPrewarm:  0,
	}
}

func newTestState(t *testing.T, opts Options) *State {
	t.Helper()
	return NewState(opts, rng.New(7), nil, zap.NewNop())
}

func TestPrewarmedBulletsAreInactive(t *testing.T) {
	s := newTestState(t, testOptions())
	if got := s.BulletSpawner.Pool().Len(); got != 2 {
		t.Fatalf("pool len = %d, want 2", got)
	}
	for _, id := range s.Bullets.IDs() {
		if s.Active(id) {
			t.Errorf("prewarmed bullet %s is active", id)
		}
		if s.Visibility.MustGet(id).Visible {
			t.Errorf("prewarmed bullet %s is visible", id)
		}
	}
	if st := s.BulletSpawner.Stats(); st.Reused+st.Constructed != 0 {
		t.Errorf("prewarm counted as spawns: %+v", st)
	}
}

func TestBulletSpawnReusesThenConstructs(t *testing.T) {
	s := newTestState(t, testOptions())
	shot := BulletSpawn{X: 10, Y: 20, Heading: math.Pi / 2, Speed: 2000}

	a := s.BulletSpawner.Spawn(shot)
	b := s.BulletSpawner.Spawn(shot)
	if !s.BulletSpawner.Pool().IsEmpty() {
		t.Fatal("pool should be empty after two reuses")
	}
	c := s.BulletSpawner.Spawn(shot)

	st := s.BulletSpawner.Stats()
	if st.Reused != 2 || st.Constructed != 1 {
		t.Fatalf("stats = %+v, want 2 reused 1 constructed", st)
	}
	if c == a || c == b || a == b {
		t.Fatalf("handles not distinct: %s %s %s", a, b, c)
	}
	for _, id := range s.Bullets.IDs() {
		if !s.Active(id) {
			t.Errorf("bullet %s not active after spawn", id)
		}
		tf := s.Transforms.MustGet(id)
		if tf.X != 10 || tf.Y != 20 {
			t.Errorf("bullet %s at (%v,%v)", id, tf.X, tf.Y)
		}
		if math.Abs(tf.Rotation) > 1e-9 {
			t.Errorf("rotation = %v, want heading-π/2 = 0", tf.Rotation)
		}
		v := s.Velocities.MustGet(id)
		if math.Abs(v.X) > 1e-9 || math.Abs(v.Y-2000) > 1e-9 {
			t.Errorf("velocity = %+v", *v)
		}
	}
}

func TestReleaseBulletOnlyOnce(t *testing.T) {
	s := newTestState(t, testOptions())
	id := s.BulletSpawner.Spawn(BulletSpawn{Heading: 0, Speed: 10})
	if !s.ReleaseBullet(id) {
		t.Fatal("first release refused")
	}
	if s.ReleaseBullet(id) {
		t.Fatal("second release accepted")
	}
	if got := s.BulletSpawner.Pool().Len(); got != 2 {
		t.Fatalf("pool len = %d, want 2", got)
	}
	if v := s.Velocities.MustGet(id); v.X != 0 || v.Y != 0 {
		t.Errorf("released bullet still moving: %+v", *v)
	}
}

func TestBuildAsteroidTracksLiveBlocks(t *testing.T) {
	opts := testOptions()
	opts.BlockHealth = 50
	s := newTestState(t, opts)

	bp := region.Generate(12, rng.New(3))
	ast := s.BuildAsteroid(100, -40, bp, time.Second)

	a := s.Asteroids.MustGet(ast)
	if a.Blocks != bp.Len() || a.Live != bp.Len() {
		t.Fatalf("asteroid = %+v, want %d blocks live", *a, bp.Len())
	}
	if s.Grid.Len() != bp.Len() {
		t.Fatalf("grid tracks %d, want %d", s.Grid.Len(), bp.Len())
	}

	blocks := s.Blocks.IDs()
	first := blocks[0]
	tf := s.Transforms.MustGet(first)
	cell := bp.Cells()[0]
	if tf.X != 100+float64(cell.X)*20 || tf.Y != -40+float64(cell.Y)*20 {
		t.Errorf("first block at (%v,%v), cell %+v", tf.X, tf.Y, cell)
	}
	if hp := s.Health.MustGet(first); hp.HP != 50 {
		t.Errorf("block hp = %v, want 50", hp.HP)
	}

	for _, id := range blocks {
		s.ReleaseBlock(id)
	}
	if a.Live != 0 {
		t.Errorf("live = %d after releasing all", a.Live)
	}
	if s.Grid.Len() != 0 {
		t.Errorf("grid still tracks %d", s.Grid.Len())
	}
	if got := s.BlockSpawner.Pool().Len(); got != bp.Len() {
		t.Errorf("block pool = %d, want %d", got, bp.Len())
	}

	// Rebuilding reuses every pooled block and restores full health.
	s.Health.MustGet(first).HP = 0
	s.PlaceBlocks(ast, bp)
	if st := s.BlockSpawner.Stats(); st.Reused != uint64(bp.Len()) {
		t.Errorf("reused = %d, want %d", st.Reused, bp.Len())
	}
	if hp := s.Health.MustGet(first); hp.HP != 50 {
		t.Errorf("reused block hp = %v, want 50", hp.HP)
	}
	if a.Live != bp.Len() {
		t.Errorf("live = %d after rebuild", a.Live)
	}
}

func TestIndestructibleBlocksHaveNoHealth(t *testing.T) {
	s := newTestState(t, testOptions())
	s.BuildAsteroid(0, 0, region.Generate(3, rng.New(1)), 0)
	for _, id := range s.Blocks.IDs() {
		if s.Health.Has(id) {
			t.Errorf("block %s has health with BlockHealth=0", id)
		}
	}
}

func TestEnemyHealthDefaults(t *testing.T) {
	s := newTestState(t, testOptions())
	tests := []struct {
		name      string
		hp, maxHP float64
		wantMax   float64
		wantFrac  float64
	}{
		{"derived max", 100, 0, 100, 1},
		{"explicit max", 40, 80, 80, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := s.NewEnemy(0, 0, tt.hp, tt.maxHP)
			if got := s.MaxHealth.MustGet(id).HP; got != tt.wantMax {
				t.Errorf("max = %v, want %v", got, tt.wantMax)
			}
			if got := s.HealthFraction(id); got != tt.wantFrac {
				t.Errorf("fraction = %v, want %v", got, tt.wantFrac)
			}
		})
	}
}

func TestDespawnRemovesFromGrid(t *testing.T) {
	s := newTestState(t, testOptions())
	id := s.NewEnemy(50, 50, 100, 0)
	if got := s.Grid.Nearby(50, 50); len(got) != 1 || got[0] != id {
		t.Fatalf("nearby = %v", got)
	}
	s.Despawn(id)
	if s.Active(id) {
		t.Error("despawned enemy still active")
	}
	if s.Grid.Len() != 0 {
		t.Error("despawned enemy still in grid")
	}
	s.ECS.FlushDestroyQueue()
	if s.ECS.Alive(id) {
		t.Error("enemy survived flush")
	}
}

func TestNozzle(t *testing.T) {
	s := newTestState(t, testOptions())
	ship := s.NewShip(10, 0, math.Pi/2, 500)
	x, y, h := s.Nozzle(ship)
	if math.Abs(x-10) > 1e-9 || math.Abs(y-NozzleOffset) > 1e-9 || h != math.Pi/2 {
		t.Errorf("nozzle = (%v,%v,%v)", x, y, h)
	}
}

func TestInPlayArea(t *testing.T) {
	s := newTestState(t, testOptions())
	if !s.InPlayArea(450, -300) {
		t.Error("edge should be inside")
	}
	if s.InPlayArea(451, 0) {
		t.Error("x=451 should be outside")
	}
}
