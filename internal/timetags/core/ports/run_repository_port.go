package ports

import (
	"context"

	"photon-bins/internal/timetags/core/domain"
)

type RunRepositoryPort interface {
	// InsertRun:
	//   created = true,  err = nil  -> new run
	//   created = false, err = nil  -> run id already stored (idempotent)
	//   created = false, err != nil -> DB error
	InsertRun(ctx context.Context, r *domain.Run) (created bool, err error)
}
