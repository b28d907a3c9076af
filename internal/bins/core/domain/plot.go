package domain

// Window is a half-open time interval [Start, End) in seconds.
type Window struct {
	Start float64
	End   float64
}

func (w Window) Contains(sec float64) bool {
	return sec >= w.Start && sec < w.End
}

func (w Window) Width() float64 { return w.End - w.Start }

// RowSeries is the slice of one channel's bins that falls in a row. Bins
// shares storage with the owning BinnedSeries.
type RowSeries struct {
	Channel Channel
	Bins    []Bin
}

type Row struct {
	Index  int
	Window Window
	Series []RowSeries
}

// ChannelFailure records why a requested channel is missing from a Plot.
type ChannelFailure struct {
	Channel Channel
	Reason  string
}

// Plot is the complete, render-ready result of one input.
type Plot struct {
	ID          string
	Source      string
	Fingerprint string

	Jiffy           float64
	BinWidth        Tick
	BinWidthSeconds float64
	Origin          Tick
	RowWidth        float64
	Scale           string
	YMax            float64

	Series  []BinnedSeries
	Rows    []Row
	Skipped []ChannelFailure
}

// Window returns the full displayed interval of the plot.
func (p *Plot) Window() Window {
	start := Seconds(p.Origin, p.Jiffy)
	return Window{Start: start, End: start + float64(len(p.Rows))*p.RowWidth}
}
