package gonum

import (
	"photon-bins/internal/bins/core/ports"

	"gonum.org/v1/plot"
)

// offsetTicker hosts a TickLabelFormatter on a gonum axis. Tick positions
// come from base; only labelled ticks are relabelled, unlabelled minor ticks
// stay blank.
type offsetTicker struct {
	base      plot.Ticker
	formatter ports.TickLabelFormatter
}

func (t offsetTicker) Ticks(min, max float64) []plot.Tick {
	ticks := t.base.Ticks(min, max)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue
		}
		ticks[i].Label = t.formatter.TickLabel(ticks[i].Value)
	}
	return ticks
}

// blankTicker keeps the tick marks of base and drops every label, for the
// rows stacked above the bottom one.
type blankTicker struct {
	base plot.Ticker
}

func (t blankTicker) Ticks(min, max float64) []plot.Tick {
	ticks := t.base.Ticks(min, max)
	for i := range ticks {
		ticks[i].Label = ""
	}
	return ticks
}
