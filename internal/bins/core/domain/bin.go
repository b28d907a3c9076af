package domain

// Bin counts the events whose tick lies in [Start, Start+width).
type Bin struct {
	Start Tick
	Count int
}

// BinnedSeries is one channel's bins, ascending by Start, all of the same
// Width and aligned on Origin + k*Width. It is never modified after binning.
type BinnedSeries struct {
	Channel Channel
	Width   Tick
	Origin  Tick
	Bins    []Bin
}

func (s BinnedSeries) Empty() bool { return len(s.Bins) == 0 }

// Total is the number of events held by the series.
func (s BinnedSeries) Total() int {
	n := 0
	for _, b := range s.Bins {
		n += b.Count
	}
	return n
}
