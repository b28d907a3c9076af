package usecase

import (
	"strconv"

	"photon-bins/internal/bins/core/ports"
)

var _ ports.TickLabelFormatter = RowOffsetFormatter{}

// RowOffsetFormatter labels the bottom time axis of a stacked row layout.
// Tick values are row-relative; the offset text tells the reader that row r
// starts r row widths later.
type RowOffsetFormatter struct {
	Rows     int
	RowWidth float64
}

// Offset is the offset of the last row relative to the first.
func (f RowOffsetFormatter) Offset() float64 {
	return f.RowWidth * float64(f.Rows-1)
}

// OffsetText is "+<row width>r" whatever the value of Offset.
func (f RowOffsetFormatter) OffsetText() string {
	return "+" + strconv.FormatFloat(f.RowWidth, 'g', -1, 64) + "r"
}

func (f RowOffsetFormatter) TickLabel(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}
