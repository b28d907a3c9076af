// Package sources routes batch inputs to the adapter that can open them.
package sources

import (
	"context"
	"errors"
	"strings"

	"photon-bins/internal/bins/adapters/postgres"
	"photon-bins/internal/bins/core/ports"
)

var ErrNoDatabase = errors.New("stored run requested but no database configured")

type Router struct {
	files ports.SourceOpenerPort
	runs  ports.SourceOpenerPort // nil without a DSN
}

func NewRouter(files, runs ports.SourceOpenerPort) *Router {
	return &Router{files: files, runs: runs}
}

func (r *Router) Open(ctx context.Context, input string) (ports.TimestampSourcePort, error) {
	if IsRun(input) {
		if r.runs == nil {
			return nil, ErrNoDatabase
		}
		return r.runs.Open(ctx, input)
	}
	return r.files.Open(ctx, input)
}

// IsRun reports whether input names a stored run.
func IsRun(input string) bool {
	return strings.HasPrefix(input, postgres.RunPrefix)
}
