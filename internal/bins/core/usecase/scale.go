package usecase

import (
	"math"
	"strconv"
	"strings"

	"photon-bins/internal/bins/core/domain"
)

type ScalePolicy int

const (
	ScaleMax ScalePolicy = iota
	ScaleAvg
	ScalePerSecond
	ScalePerBin
)

// avgHeadroom keeps typical traffic under the top of the panel.
const avgHeadroom = 1.5

// Scale is a parsed vertical-scale token.
type Scale struct {
	Policy ScalePolicy
	Value  float64
}

func (s Scale) String() string {
	switch s.Policy {
	case ScaleMax:
		return "max"
	case ScaleAvg:
		return "avg"
	case ScalePerSecond:
		return strconv.FormatFloat(s.Value, 'g', -1, 64) + "/sec"
	default:
		return strconv.FormatFloat(s.Value, 'g', -1, 64) + "/bin"
	}
}

// ParseScale parses max, avg, <n>, <n>/sec or <n>/bin.
func ParseScale(token string) (Scale, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	switch t {
	case "max":
		return Scale{Policy: ScaleMax}, nil
	case "avg":
		return Scale{Policy: ScaleAvg}, nil
	case "":
		return Scale{}, &ScaleSpecError{Token: token, Reason: "empty"}
	}

	policy := ScalePerBin
	num := t
	if v, ok := strings.CutSuffix(t, "/sec"); ok {
		policy, num = ScalePerSecond, v
	} else if v, ok := strings.CutSuffix(t, "/bin"); ok {
		num = v
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Scale{}, &ScaleSpecError{Token: token, Reason: "not a number"}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return Scale{}, &ScaleSpecError{Token: token, Reason: "must be a positive finite number"}
	}
	return Scale{Policy: policy, Value: v}, nil
}

// SelectYMax computes the single vertical limit (counts per bin) shared by
// every row and channel of a plot. Only non-empty bins starting inside
// window count, so avg does not depend on how gaps were zero-filled.
func SelectYMax(series []domain.BinnedSeries, jiffy float64, window domain.Window, scale Scale, binWidthSeconds float64) (float64, error) {
	switch scale.Policy {
	case ScalePerSecond:
		return scale.Value * binWidthSeconds, nil
	case ScalePerBin:
		return scale.Value, nil
	}

	var (
		n     int
		sum   float64
		maxed int
	)
	for _, s := range series {
		for _, b := range s.Bins {
			if b.Count == 0 || !window.Contains(domain.Seconds(b.Start, jiffy)) {
				continue
			}
			n++
			sum += float64(b.Count)
			if b.Count > maxed {
				maxed = b.Count
			}
		}
	}
	if n == 0 || maxed == 0 {
		return 0, ErrEmptyScaleWindow
	}

	if scale.Policy == ScaleAvg {
		return avgHeadroom * sum / float64(n), nil
	}
	return float64(maxed), nil
}
