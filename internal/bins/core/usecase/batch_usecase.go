package usecase

import (
	"context"
	"errors"
	"fmt"

	"photon-bins/internal/bins/core/domain"
	"photon-bins/internal/bins/core/ports"

	"github.com/rs/zerolog"
)

type PlotBuilder interface {
	Execute(ctx context.Context, in BuildPlotInput) (*domain.Plot, error)
}

// FileResult is the outcome of one batch input.
type FileResult struct {
	Input  string
	Plot   *domain.Plot
	Output string
	Err    error
}

type PlotBatchInput struct {
	Inputs []string
	// Template carries every BuildPlotInput field except Source.
	Template BuildPlotInput
}

type PlotBatchUseCase struct {
	opener  ports.SourceOpenerPort
	builder PlotBuilder
	sink    ports.PlotSinkPort
	log     zerolog.Logger
}

func NewPlotBatchUseCase(opener ports.SourceOpenerPort, builder PlotBuilder, sink ports.PlotSinkPort, log zerolog.Logger) *PlotBatchUseCase {
	return &PlotBatchUseCase{opener: opener, builder: builder, sink: sink, log: log}
}

// Execute processes the inputs in order. A failing input is logged and
// recorded in its FileResult; the batch moves on. The returned error joins
// every per-input failure, or carries the cancellation cause.
func (uc *PlotBatchUseCase) Execute(ctx context.Context, in PlotBatchInput) ([]FileResult, error) {
	if len(in.Inputs) == 0 {
		return nil, ErrNoInputs
	}

	results := make([]FileResult, 0, len(in.Inputs))
	var failures []error

	for _, input := range in.Inputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := uc.processOne(ctx, input, in.Template)
		if res.Err != nil {
			uc.log.Error().Str("input", input).Err(res.Err).Msg("input failed")
			failures = append(failures, res.Err)
		} else {
			uc.log.Info().
				Str("input", input).
				Str("plot", res.Plot.ID).
				Str("output", res.Output).
				Msg("plot ready")
		}
		results = append(results, res)
	}

	return results, errors.Join(failures...)
}

func (uc *PlotBatchUseCase) processOne(ctx context.Context, input string, tmpl BuildPlotInput) FileResult {
	res := FileResult{Input: input}

	src, err := uc.opener.Open(ctx, input)
	if err != nil {
		res.Err = fmt.Errorf("open %s: %w", input, err)
		return res
	}
	if c, ok := src.(interface{ Close() error }); ok {
		defer c.Close()
	}

	bi := tmpl
	bi.Source = src
	plot, err := uc.builder.Execute(ctx, bi)
	if err != nil {
		res.Err = err
		return res
	}
	res.Plot = plot

	out, err := uc.sink.Deliver(ctx, input, plot)
	if err != nil {
		res.Err = fmt.Errorf("deliver %s: %w", input, err)
		return res
	}
	res.Output = out
	return res
}
