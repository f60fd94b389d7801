package persist

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // pure Go driver, registers "sqlite"
)

// SQLiteStore is the local-file Store.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite creates or opens the database file at path, creating parent
// directories, and applies pending migrations. ":memory:" opens a private
// in-memory database.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps an in-memory database alive and serialises writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `PRAGMA foreign_keys = ON`); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if err := migrateSQLite(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save run begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (mode, seed, ticks, effects_spawned, enemies_destroyed, config_hash, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Mode, int64(run.Seed), int64(run.Ticks), int64(run.EffectsSpawned), int64(run.EnemiesDestroyed),
		run.ConfigHash, run.StartedAt.UnixMilli(), run.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("save run id: %w", err)
	}

	for _, p := range run.Pools {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_pools (run_id, kind, reused, constructed, released) VALUES (?, ?, ?, ?, ?)`,
			id, p.Kind, int64(p.Reused), int64(p.Constructed), int64(p.Released),
		); err != nil {
			return fmt.Errorf("save run pool %s: %w", p.Kind, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save run commit: %w", err)
	}
	run.ID = id
	return nil
}

func (s *SQLiteStore) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, mode, seed, ticks, effects_spawned, enemies_destroyed, config_hash, started_at, finished_at
		 FROM runs ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	var runs []Run
	index := make(map[int64]int)
	for rows.Next() {
		var run Run
		var seed, ticks, effects, enemies, started, finished int64
		if err := rows.Scan(&run.ID, &run.Mode, &seed, &ticks, &effects, &enemies,
			&run.ConfigHash, &started, &finished); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Seed, run.Ticks = uint64(seed), uint64(ticks)
		run.EffectsSpawned, run.EnemiesDestroyed = uint64(effects), uint64(enemies)
		run.StartedAt, run.FinishedAt = time.UnixMilli(started), time.UnixMilli(finished)
		index[run.ID] = len(runs)
		runs = append(runs, run)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, nil
	}

	// Oldest listed id bounds the pool query; ids are monotonic.
	prow, err := s.db.QueryContext(ctx,
		`SELECT run_id, kind, reused, constructed, released
		 FROM run_pools WHERE run_id >= ? ORDER BY run_id, kind`, runs[len(runs)-1].ID,
	)
	if err != nil {
		return nil, fmt.Errorf("run pools: %w", err)
	}
	defer prow.Close()
	for prow.Next() {
		var id, reused, constructed, released int64
		var p PoolStats
		if err := prow.Scan(&id, &p.Kind, &reused, &constructed, &released); err != nil {
			return nil, fmt.Errorf("scan run pool: %w", err)
		}
		p.Reused, p.Constructed, p.Released = uint64(reused), uint64(constructed), uint64(released)
		if i, ok := index[id]; ok {
			runs[i].Pools = append(runs[i].Pools, p)
		}
	}
	return runs, prow.Err()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
