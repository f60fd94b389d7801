// Package persist records finished simulation runs.
package persist

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/playground/spacesim/internal/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

// PoolStats is how one object kind's spawns were served during a run.
type PoolStats struct {
	Kind        string
	Reused      uint64
	Constructed uint64
	Released    uint64
}

// Run is the summary of one simulation run.
type Run struct {
	ID               int64
	Mode             string // "shooter" or "portal"
	Seed             uint64
	Ticks            uint64
	Pools            []PoolStats
	EffectsSpawned   uint64
	EnemiesDestroyed uint64
	ConfigHash       string
	StartedAt        time.Time
	FinishedAt       time.Time
}

// Pool returns the stats for kind, or the zero value.
func (r *Run) Pool(kind string) PoolStats {
	for _, p := range r.Pools {
		if p.Kind == kind {
			return p
		}
	}
	return PoolStats{Kind: kind}
}

// Store saves and lists run records.
type Store interface {
	SaveRun(ctx context.Context, run *Run) error
	RecentRuns(ctx context.Context, limit int) ([]Run, error)
	Close() error
}

// Open connects the store named by cfg.Driver and applies pending
// migrations. "none" (or empty) returns a store that keeps nothing.
func Open(ctx context.Context, cfg config.StorageConfig, log *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		repo, err := OpenPostgres(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		log.Info("run store ready", zap.String("driver", "postgres"))
		return repo, nil
	case "sqlite":
		s, err := OpenSQLite(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		log.Info("run store ready", zap.String("driver", "sqlite"), zap.String("path", cfg.Path))
		return s, nil
	case "none", "":
		return nopStore{}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Fingerprint is the blake2b-256 hex digest of the config file bytes, so
// runs made with the same settings group together. Empty input (built-in
// defaults) fingerprints as "defaults".
func Fingerprint(raw []byte) string {
	if len(raw) == 0 {
		return "defaults"
	}
	sum := blake2b.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

type nopStore struct{}

func (nopStore) SaveRun(context.Context, *Run) error            { return nil }
func (nopStore) RecentRuns(context.Context, int) ([]Run, error) { return nil, nil }
func (nopStore) Close() error                                   { return nil }
