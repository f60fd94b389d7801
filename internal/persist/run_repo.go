package persist

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunRepo is the postgres Store.
type RunRepo struct {
	pool *pgxpool.Pool
}

// SaveRun inserts the run and its pool stats in one transaction and sets
// run.ID.
func (r *RunRepo) SaveRun(ctx context.Context, run *Run) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save run begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := tx.QueryRow(ctx,
		`INSERT INTO runs (mode, seed, ticks, effects_spawned, enemies_destroyed, config_hash, started_at, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		run.Mode, int64(run.Seed), int64(run.Ticks), int64(run.EffectsSpawned), int64(run.EnemiesDestroyed),
		run.ConfigHash, run.StartedAt, run.FinishedAt,
	).Scan(&run.ID); err != nil {
		return fmt.Errorf("save run: %w", err)
	}

	for _, p := range run.Pools {
		if _, err := tx.Exec(ctx,
			`INSERT INTO run_pools (run_id, kind, reused, constructed, released)
			 VALUES ($1, $2, $3, $4, $5)`,
			run.ID, p.Kind, int64(p.Reused), int64(p.Constructed), int64(p.Released),
		); err != nil {
			return fmt.Errorf("save run pool %s: %w", p.Kind, err)
		}
	}

	return tx.Commit(ctx)
}

// RecentRuns returns up to limit runs, newest first.
func (r *RunRepo) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, mode, seed, ticks, effects_spawned, enemies_destroyed, config_hash, started_at, finished_at
		 FROM runs ORDER BY id DESC LIMIT $1`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	index := make(map[int64]int)
	for rows.Next() {
		var run Run
		var seed, ticks, effects, enemies int64
		if err := rows.Scan(&run.ID, &run.Mode, &seed, &ticks, &effects, &enemies,
			&run.ConfigHash, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Seed, run.Ticks = uint64(seed), uint64(ticks)
		run.EffectsSpawned, run.EnemiesDestroyed = uint64(effects), uint64(enemies)
		index[run.ID] = len(runs)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(runs))
	for _, run := range runs {
		ids = append(ids, run.ID)
	}
	prow, err := r.pool.Query(ctx,
		`SELECT run_id, kind, reused, constructed, released
		 FROM run_pools WHERE run_id = ANY($1) ORDER BY run_id, kind`, ids,
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

func (r *RunRepo) Close() error {
	r.pool.Close()
	return nil
}
