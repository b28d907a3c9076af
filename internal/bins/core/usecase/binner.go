package usecase

import (
	"fmt"
	"math"

	"photon-bins/internal/bins/core/domain"
)

// MaxZeroFill bounds the number of empty bins emitted between two populated
// bins. Longer gaps stay open and show up as holes in the series.
const MaxZeroFill = 1 << 16

// BinWidthTicks converts a bin width in seconds to ticks, rounding half away
// from zero. Widths that round below one tick are rejected.
func BinWidthTicks(seconds, jiffy float64) (domain.Tick, error) {
	if !(jiffy > 0) || math.IsInf(jiffy, 0) {
		return 0, fmt.Errorf("%w: jiffy %g s", ErrBinWidthBelowTick, jiffy)
	}
	if !(seconds > 0) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("%w: bin width %g s", ErrBinWidthBelowTick, seconds)
	}
	n := math.Round(seconds / jiffy)
	if n < 1 {
		return 0, fmt.Errorf("%w: %g s at jiffy %g s", ErrBinWidthBelowTick, seconds, jiffy)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("bin width %g s overflows the tick counter", seconds)
	}
	return domain.Tick(n), nil
}

// BinEvents counts ticks into bins of width ticks aligned on origin.
// ticks must be non-decreasing; ticks before origin are not binned.
func BinEvents(ch domain.Channel, ticks []domain.Tick, width, origin domain.Tick) domain.BinnedSeries {
	series := domain.BinnedSeries{Channel: ch, Width: width, Origin: origin}
	if width == 0 {
		return series
	}

	var bins []domain.Bin
	for _, t := range ticks {
		if t < origin {
			continue
		}
		start := origin + (t-origin)/width*width

		if n := len(bins); n > 0 {
			last := bins[n-1].Start
			if start == last {
				bins[n-1].Count++
				continue
			}
			if gap := (start - last) / width; gap > 1 && gap-1 <= MaxZeroFill {
				for s := last + width; s < start; s += width {
					bins = append(bins, domain.Bin{Start: s})
				}
			}
		}
		bins = append(bins, domain.Bin{Start: start, Count: 1})
	}

	series.Bins = bins
	return series
}
