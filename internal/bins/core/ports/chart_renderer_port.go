package ports

import (
	"context"
	"io"

	"photon-bins/internal/bins/core/domain"
)

// ChartRendererPort draws a prepared Plot in one output format.
type ChartRendererPort interface {
	Format() string
	Render(ctx context.Context, p *domain.Plot, w io.Writer) error
}

// TickLabelFormatter produces the labels of the shared bottom time axis.
type TickLabelFormatter interface {
	// TickLabel formats one row-relative tick value.
	TickLabel(v float64) string
	// OffsetText is shown once next to the axis.
	OffsetText() string
}

// PlotSinkPort receives every plot a batch produces.
type PlotSinkPort interface {
	Deliver(ctx context.Context, input string, p *domain.Plot) (string, error)
}
