package ports

import (
	"context"

	"photon-bins/internal/bins/core/domain"
)

// TimestampSourcePort exposes the raw ticks of one recorded run.
type TimestampSourcePort interface {
	// Name identifies the run in titles and diagnostics (file name, run id).
	Name() string
	// Jiffy returns the seconds-per-tick of the run, or 0 when the source
	// carries no time base.
	Jiffy(ctx context.Context) (float64, error)
	// ReadChannel returns the ordered ticks of one channel. A channel without
	// events returns an empty slice and no error.
	ReadChannel(ctx context.Context, ch domain.ChannelID) ([]domain.Tick, error)
}

// Fingerprinter is implemented by sources that can identify their content.
type Fingerprinter interface {
	Fingerprint() string
}

// SourceOpenerPort resolves a batch input (path, glob match, pg:<run>) to a source.
type SourceOpenerPort interface {
	Open(ctx context.Context, input string) (TimestampSourcePort, error)
}
