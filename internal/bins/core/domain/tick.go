package domain

// Tick is a count of instrument clock pulses. Timestamps of one channel are
// non-decreasing.
type Tick = uint64

// Seconds converts a tick count to seconds for the given jiffy (seconds per tick).
func Seconds(t Tick, jiffy float64) float64 {
	return float64(t) * jiffy
}
