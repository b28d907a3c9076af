package ports

import (
	"context"

	"photon-bins/internal/timetags/core/domain"
)

// RunFilePort reads a recorded file into a Run. The returned Run has no ID;
// Jiffy is 0 when the file carries no time base.
type RunFilePort interface {
	ReadRun(ctx context.Context, path string) (*domain.Run, error)
}
