package timetag

import (
	"context"
	"errors"
	"sort"

	"photon-bins/internal/bins/core/ports"

	"github.com/bmatcuk/doublestar/v4"
)

// Opener opens timetag files for the batch pipeline.
type Opener struct{}

func NewOpener() *Opener { return &Opener{} }

func (o *Opener) Open(ctx context.Context, input string) (ports.TimestampSourcePort, error) {
	src, err := Open(ctx, input)
	if err != nil {
		return nil, err
	}
	return src, nil
}

// ErrNoMatch is returned by Open for a glob pattern that matched no file.
var ErrNoMatch = errors.New("pattern matches no files")

// ExpandInputs replaces every glob pattern in inputs with its sorted
// matches. Plain paths, and patterns that match nothing or do not parse,
// pass through untouched so that Open reports them as one failed input.
func ExpandInputs(inputs []string) []string {
	var out []string
	for _, in := range inputs {
		if !hasMeta(in) {
			out = append(out, in)
			continue
		}
		matches, err := doublestar.FilepathGlob(in, doublestar.WithFilesOnly())
		if err != nil || len(matches) == 0 {
			out = append(out, in)
			continue
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	return out
}

func hasMeta(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
