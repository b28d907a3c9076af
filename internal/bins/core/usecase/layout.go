package usecase

import (
	"fmt"
	"math"
	"sort"

	"photon-bins/internal/bins/core/domain"
)

// MaxRows is the largest number of rows one plot may have.
const MaxRows = 1000

// RowWindows partitions [start, start+rows*rowWidth) into rows contiguous
// windows of width rowWidth.
func RowWindows(start float64, rows int, rowWidth float64) ([]domain.Window, error) {
	if rows <= 0 {
		return nil, fmt.Errorf("%w: rows must be positive, got %d", ErrInvalidLayout, rows)
	}
	if rows > MaxRows {
		return nil, fmt.Errorf("%w: at most %d rows, got %d", ErrInvalidLayout, MaxRows, rows)
	}
	if !(rowWidth > 0) || math.IsInf(rowWidth, 0) {
		return nil, fmt.Errorf("%w: row width must be positive, got %g", ErrInvalidLayout, rowWidth)
	}
	windows := make([]domain.Window, rows)
	for r := range windows {
		windows[r] = domain.Window{
			Start: float64(r)*rowWidth + start,
			End:   float64(r+1)*rowWidth + start,
		}
	}
	return windows, nil
}

// LayoutRows slices every series into the row windows starting at startTick.
// The returned rows reference the series' bins; nothing is copied or rebinned.
func LayoutRows(series []domain.BinnedSeries, jiffy float64, rows int, rowWidth float64, startTick domain.Tick) ([]domain.Row, error) {
	if !(jiffy > 0) {
		return nil, fmt.Errorf("%w: jiffy must be positive, got %g", ErrInvalidLayout, jiffy)
	}
	windows, err := RowWindows(domain.Seconds(startTick, jiffy), rows, rowWidth)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Row, len(windows))
	for r, w := range windows {
		row := domain.Row{
			Index:  r,
			Window: w,
			Series: make([]domain.RowSeries, 0, len(series)),
		}
		for _, s := range series {
			row.Series = append(row.Series, domain.RowSeries{
				Channel: s.Channel,
				Bins:    sliceWindow(s.Bins, jiffy, w),
			})
		}
		out[r] = row
	}
	return out, nil
}

// sliceWindow returns the bins whose start lies in w, using the ascending
// order of bins.
func sliceWindow(bins []domain.Bin, jiffy float64, w domain.Window) []domain.Bin {
	lo := sort.Search(len(bins), func(i int) bool {
		return domain.Seconds(bins[i].Start, jiffy) >= w.Start
	})
	hi := sort.Search(len(bins), func(i int) bool {
		return domain.Seconds(bins[i].Start, jiffy) >= w.End
	})
	if lo >= hi {
		return nil
	}
	return bins[lo:hi:hi]
}
