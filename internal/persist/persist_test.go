package persist

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/playground/spacesim/internal/config"
	"go.uber.org/zap"
)

func sampleRun(seed uint64) *Run {
	start := time.UnixMilli(1_700_000_000_000)
	return &Run{
		Mode:  "shooter",
		Seed:  seed,
		Ticks: 600,
		Pools: []PoolStats{
			{Kind: "bullet", Reused: 50, Constructed: 4, Released: 52},
			{Kind: "block", Reused: 12, Constructed: 60, Released: 12},
		},
		EffectsSpawned:   9,
		EnemiesDestroyed: 1,
		ConfigHash:       Fingerprint([]byte("[sim]\nseed = 1\n")),
		StartedAt:        start,
		FinishedAt:       start.Add(10 * time.Second),
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(ctx, filepath.Join(t.TempDir(), "nested", "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	first := sampleRun(1)
	if err := s.SaveRun(ctx, first); err != nil {
		t.Fatal(err)
	}
	// Seeds above MaxInt64 survive the signed column.
	second := sampleRun(^uint64(0))
	second.Pools = nil
	if err := s.SaveRun(ctx, second); err != nil {
		t.Fatal(err)
	}
	if first.ID == 0 || second.ID <= first.ID {
		t.Fatalf("ids = %d, %d", first.ID, second.ID)
	}

	runs, err := s.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs", len(runs))
	}
	if runs[0].ID != second.ID || runs[0].Seed != ^uint64(0) {
		t.Errorf("newest = %+v", runs[0])
	}
	got := runs[1]
	if !got.StartedAt.Equal(first.StartedAt) || !got.FinishedAt.Equal(first.FinishedAt) {
		t.Errorf("times = %v..%v", got.StartedAt, got.FinishedAt)
	}
	if got.ConfigHash != first.ConfigHash || got.Ticks != 600 || got.EffectsSpawned != 9 {
		t.Errorf("run = %+v", got)
	}
	if b := got.Pool("bullet"); b.Reused != 50 || b.Constructed != 4 || b.Released != 52 {
		t.Errorf("bullet pool = %+v", b)
	}
	if len(runs[0].Pools) != 0 {
		t.Errorf("second run pools = %+v", runs[0].Pools)
	}

	limited, err := s.RecentRuns(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].ID != second.ID {
		t.Errorf("limited = %+v", limited)
	}
}

func TestSQLiteReopenKeepsRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRun(ctx, sampleRun(3)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = OpenSQLite(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	runs, err := s.RecentRuns(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Seed != 3 {
		t.Fatalf("runs = %+v", runs)
	}
}

func TestOpenDrivers(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, config.StorageConfig{Driver: "none"}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SaveRun(ctx, sampleRun(1)); err != nil {
		t.Fatal(err)
	}
	if runs, _ := s.RecentRuns(ctx, 5); len(runs) != 0 {
		t.Errorf("nop store returned %d runs", len(runs))
	}

	s, err = Open(ctx, config.StorageConfig{Driver: "sqlite", Path: ":memory:"}, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if err := s.SaveRun(ctx, sampleRun(2)); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(ctx, config.StorageConfig{Driver: "mysql"}, zap.NewNop()); err == nil {
		t.Error("unknown driver accepted")
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("a"))
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64 hex chars", len(a))
	}
	if a != Fingerprint([]byte("a")) || a == Fingerprint([]byte("b")) {
		t.Error("fingerprint not a function of content")
	}
	if Fingerprint(nil) != "defaults" {
		t.Error("empty config fingerprint")
	}
}
