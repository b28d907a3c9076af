package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"photon-bins/internal/bins/core/domain"
	"photon-bins/internal/bins/core/ports"
)

// RunPrefix marks a batch input that names a stored run instead of a file.
const RunPrefix = "pg:"

var ErrRunNotFound = errors.New("run not found")

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

// RunInfo is the header row of a stored run.
type RunInfo struct {
	ID     string
	Jiffy  float64
	Source string
}

type RunRepository struct {
	db DB
}

func NewRunRepository(db DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) Run(ctx context.Context, runID string) (*RunInfo, error) {
	query := `
SELECT jiffy, source
FROM timetag_runs
WHERE run_id = $1`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}

	info := &RunInfo{ID: runID}
	if err := rows.Scan(&info.Jiffy, &info.Source); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return info, nil
}

// Ticks returns one channel of a run in ascending order.
func (r *RunRepository) Ticks(ctx context.Context, runID string, ch domain.ChannelID) ([]domain.Tick, error) {
	query := `
SELECT tick
FROM timetag_events
WHERE run_id = $1 AND channel = $2
ORDER BY tick`

	rows, err := r.db.QueryContext(ctx, query, runID, int64(ch))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ticks []domain.Tick
	for rows.Next() {
		var tick int64
		if err := rows.Scan(&tick); err != nil {
			return nil, err
		}
		if tick < 0 {
			return nil, fmt.Errorf("negative tick %d", tick)
		}
		ticks = append(ticks, domain.Tick(tick))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ticks, nil
}

// RunSource exposes a stored run as a timestamp source. Stored runs never
// change, so the run id doubles as the fingerprint.
type RunSource struct {
	repo *RunRepository
	info *RunInfo
}

func (s *RunSource) Name() string {
	if s.info.Source != "" {
		return s.info.Source
	}
	return RunPrefix + s.info.ID
}

func (s *RunSource) Fingerprint() string { return RunPrefix + s.info.ID }

func (s *RunSource) Jiffy(ctx context.Context) (float64, error) {
	return s.info.Jiffy, nil
}

func (s *RunSource) ReadChannel(ctx context.Context, ch domain.ChannelID) ([]domain.Tick, error) {
	return s.repo.Ticks(ctx, s.info.ID, ch)
}

// RunOpener opens "pg:<run-id>" inputs, or bare run ids.
type RunOpener struct {
	repo *RunRepository
}

func NewRunOpener(repo *RunRepository) *RunOpener {
	return &RunOpener{repo: repo}
}

func (o *RunOpener) Open(ctx context.Context, input string) (ports.TimestampSourcePort, error) {
	src, err := o.OpenRun(ctx, strings.TrimPrefix(input, RunPrefix))
	if err != nil {
		return nil, err
	}
	return src, nil
}

func (o *RunOpener) OpenRun(ctx context.Context, runID string) (*RunSource, error) {
	if runID == "" {
		return nil, fmt.Errorf("%w: empty run id", ErrRunNotFound)
	}
	info, err := o.repo.Run(ctx, runID)
	if err != nil {
		return nil, err
	}
	return &RunSource{repo: o.repo, info: info}, nil
}
