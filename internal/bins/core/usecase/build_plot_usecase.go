package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"photon-bins/internal/bins/core/domain"
	"photon-bins/internal/bins/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const defaultWorkers = 4

type BuildPlotInput struct {
	Source   ports.TimestampSourcePort
	Channels *domain.ChannelSet

	BinWidth float64 // seconds
	Jiffy    float64 // override, 0 = from source
	Rows     int
	RowWidth float64  // seconds
	Scale    string   // max | avg | <n> | <n>/sec | <n>/bin
	Start    *float64 // seconds on the run clock, nil = first event
}

// ChannelResult is the outcome of reading one channel: ticks or the reason
// the channel is left out.
type ChannelResult struct {
	Channel domain.Channel
	Ticks   []domain.Tick
	Err     error
}

func (r ChannelResult) OK() bool { return r.Err == nil }

type BuildPlotUseCase struct {
	log     zerolog.Logger
	workers int
}

type BuildPlotOption func(*BuildPlotUseCase)

func WithLogger(l zerolog.Logger) BuildPlotOption {
	return func(uc *BuildPlotUseCase) { uc.log = l }
}

// WithWorkers bounds the channels read and binned in parallel. 1 processes
// channels one after the other.
func WithWorkers(n int) BuildPlotOption {
	return func(uc *BuildPlotUseCase) {
		if n < 1 {
			n = 1
		}
		uc.workers = n
	}
}

func NewBuildPlotUseCase(opts ...BuildPlotOption) *BuildPlotUseCase {
	uc := &BuildPlotUseCase{log: zerolog.Nop(), workers: defaultWorkers}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute reads, bins, scales and lays out one source.
func (uc *BuildPlotUseCase) Execute(ctx context.Context, in BuildPlotInput) (*domain.Plot, error) {
	if in.Source == nil {
		return nil, errors.New("no timestamp source")
	}
	name := in.Source.Name()

	// Everything that depends on configuration alone is checked before
	// touching the data.
	scale, err := ParseScale(in.Scale)
	if err != nil {
		return nil, err
	}
	if _, err := RowWindows(0, in.Rows, in.RowWidth); err != nil {
		return nil, err
	}
	channels := in.Channels
	if channels.Len() == 0 {
		channels = domain.DefaultChannels()
	}

	jiffy, err := uc.resolveJiffy(ctx, in)
	if err != nil {
		return nil, err
	}
	width, err := BinWidthTicks(in.BinWidth, jiffy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	results, err := uc.readChannels(ctx, in.Source, channels.Channels())
	if err != nil {
		return nil, err
	}

	var (
		usable  []ChannelResult
		skipped []domain.ChannelFailure
	)
	for _, r := range results {
		if !r.OK() {
			uc.log.Warn().
				Str("input", name).
				Int("channel", int(r.Channel.ID)).
				Str("label", r.Channel.Label).
				Err(r.Err).
				Msg("skipping channel")
			skipped = append(skipped, domain.ChannelFailure{Channel: r.Channel, Reason: r.Err.Error()})
			continue
		}
		usable = append(usable, r)
	}
	if len(usable) == 0 {
		return nil, &NoUsableChannelError{Source: name, Failures: skipped}
	}

	origin, err := plotOrigin(usable, in.Start, jiffy)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	binned, err := uc.binChannels(ctx, usable, width, origin)
	if err != nil {
		return nil, err
	}
	series := make([]domain.BinnedSeries, 0, len(binned))
	for _, bs := range binned {
		if len(bs.Bins) > 0 {
			series = append(series, bs)
			continue
		}
		// every event lies before the start override
		uc.log.Warn().
			Str("input", name).
			Int("channel", int(bs.Channel.ID)).
			Str("label", bs.Channel.Label).
			Err(ErrNoEventsAfterStart).
			Msg("skipping channel")
		skipped = append(skipped, domain.ChannelFailure{Channel: bs.Channel, Reason: ErrNoEventsAfterStart.Error()})
	}
	if len(series) == 0 {
		return nil, &NoUsableChannelError{Source: name, Failures: skipped}
	}

	binSeconds := float64(width) * jiffy
	start := domain.Seconds(origin, jiffy)
	window := domain.Window{Start: start, End: start + float64(in.Rows)*in.RowWidth}

	ymax, err := SelectYMax(series, jiffy, window, scale, binSeconds)
	if err != nil {
		return nil, fmt.Errorf("%s: scale %s over [%g s, %g s): %w", name, scale, window.Start, window.End, err)
	}

	rows, err := LayoutRows(series, jiffy, in.Rows, in.RowWidth, origin)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	plot := &domain.Plot{
		ID:              uuid.NewString(),
		Source:          name,
		Jiffy:           jiffy,
		BinWidth:        width,
		BinWidthSeconds: binSeconds,
		Origin:          origin,
		RowWidth:        in.RowWidth,
		Scale:           scale.String(),
		YMax:            ymax,
		Series:          series,
		Rows:            rows,
		Skipped:         skipped,
	}
	if fp, ok := in.Source.(ports.Fingerprinter); ok {
		plot.Fingerprint = fp.Fingerprint()
	}

	uc.log.Debug().
		Str("input", name).
		Str("plot", plot.ID).
		Uint64("bin_width_ticks", width).
		Float64("ymax", ymax).
		Int("channels", len(series)).
		Msg("plot built")

	return plot, nil
}

func (uc *BuildPlotUseCase) resolveJiffy(ctx context.Context, in BuildPlotInput) (float64, error) {
	if in.Jiffy != 0 {
		if !(in.Jiffy > 0) || math.IsInf(in.Jiffy, 0) {
			return 0, fmt.Errorf("%w: override %g s", ErrInvalidJiffy, in.Jiffy)
		}
		return in.Jiffy, nil
	}
	jiffy, err := in.Source.Jiffy(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: read time base: %w", in.Source.Name(), err)
	}
	if !(jiffy > 0) || math.IsInf(jiffy, 0) {
		return 0, &UnresolvedTimeBaseError{Source: in.Source.Name()}
	}
	return jiffy, nil
}

// readChannels never fails because of a single channel; only cancellation
// aborts it.
func (uc *BuildPlotUseCase) readChannels(ctx context.Context, src ports.TimestampSourcePort, channels []domain.Channel) ([]ChannelResult, error) {
	results := make([]ChannelResult, len(channels))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, ch := range channels {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ticks, err := src.ReadChannel(gctx, ch.ID)
			switch {
			case err != nil:
				results[i] = ChannelResult{Channel: ch, Err: &ChannelReadError{Source: src.Name(), Channel: ch, Err: err}}
			case len(ticks) == 0:
				results[i] = ChannelResult{Channel: ch, Err: ErrEmptyChannel}
			default:
				results[i] = ChannelResult{Channel: ch, Ticks: ticks}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (uc *BuildPlotUseCase) binChannels(ctx context.Context, usable []ChannelResult, width, origin domain.Tick) ([]domain.BinnedSeries, error) {
	series := make([]domain.BinnedSeries, len(usable))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.workers)
	for i, r := range usable {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			series[i] = BinEvents(r.Channel, r.Ticks, width, origin)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return series, nil
}

// plotOrigin is the start override converted to ticks, or the earliest first
// event over all usable channels.
func plotOrigin(usable []ChannelResult, start *float64, jiffy float64) (domain.Tick, error) {
	if start != nil {
		if *start < 0 || math.IsNaN(*start) || math.IsInf(*start, 0) {
			return 0, fmt.Errorf("%w: start %g s", ErrInvalidLayout, *start)
		}
		return domain.Tick(math.Round(*start / jiffy)), nil
	}
	origin := usable[0].Ticks[0]
	for _, r := range usable[1:] {
		if r.Ticks[0] < origin {
			origin = r.Ticks[0]
		}
	}
	return origin, nil
}
