package postgres

import (
	"context"
	"database/sql"

	"photon-bins/internal/timetags/core/domain"
	"photon-bins/internal/timetags/core/ports"

	"github.com/lib/pq"
)

// Execer is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type RunRepository struct {
	db Execer
}

func NewRunRepository(db Execer) *RunRepository {
	return &RunRepository{db: db}
}

var _ ports.RunRepositoryPort = (*RunRepository)(nil)

// The header and every event go in one statement: a run is stored whole or
// not at all, and a known run_id inserts nothing.
const insertRunSQL = `
WITH run AS (
    INSERT INTO timetag_runs (run_id, jiffy, source)
    VALUES ($1, $2, $3)
    ON CONFLICT (run_id) DO NOTHING
    RETURNING run_id
)
INSERT INTO timetag_events (run_id, channel, tick)
SELECT run.run_id, e.channel, e.tick
FROM run, unnest($4::smallint[], $5::bigint[]) AS e(channel, tick);
`

func (r *RunRepository) InsertRun(ctx context.Context, run *domain.Run) (bool, error) {
	n := run.EventCount()
	channels := make([]int64, 0, n)
	ticks := make([]int64, 0, n)
	for _, c := range run.Channels {
		for _, t := range c.Ticks {
			channels = append(channels, int64(c.Channel))
			ticks = append(ticks, int64(t))
		}
	}

	res, err := r.db.ExecContext(ctx, insertRunSQL,
		run.ID,
		run.Jiffy,
		run.Source,
		pq.Array(channels),
		pq.Array(ticks),
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == events -> new run
	// rows == 0      -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

var schemaSQL = []string{
	`CREATE TABLE IF NOT EXISTS timetag_runs (
    run_id     text PRIMARY KEY,
    jiffy      double precision NOT NULL CHECK (jiffy > 0),
    source     text NOT NULL DEFAULT '',
    created_at timestamptz NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS timetag_events (
    run_id  text NOT NULL REFERENCES timetag_runs (run_id) ON DELETE CASCADE,
    channel smallint NOT NULL CHECK (channel BETWEEN 0 AND 15),
    tick    bigint NOT NULL CHECK (tick >= 0)
)`,
	`CREATE INDEX IF NOT EXISTS timetag_events_run_channel_tick
    ON timetag_events (run_id, channel, tick)`,
}

// EnsureSchema creates the run tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db Execer) error {
	for _, stmt := range schemaSQL {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
