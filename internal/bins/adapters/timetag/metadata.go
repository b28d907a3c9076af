package timetag

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
)

const metaSuffix = ".meta.json"

// timeBasePaths are tried in order. The first is seconds per tick, the
// others a clock rate in Hz.
var timeBasePaths = []struct {
	expr      string
	clockRate bool
}{
	{"$.jiffy", false},
	{"$.clockrate", true},
	{"$.instrument.clockrate", true},
}

// SidecarPaths lists the metadata files consulted for path, most specific
// first.
func SidecarPaths(path string) []string {
	paths := []string{path + metaSuffix}
	if bare := trimCompressionSuffix(path); bare != path {
		paths = append(paths, bare+metaSuffix)
	}
	return paths
}

// readSidecarJiffy returns the jiffy recorded next to path. Missing sidecars
// are not an error; ok reports whether one provided a time base.
func readSidecarJiffy(path string) (jiffy float64, ok bool, err error) {
	for _, sp := range SidecarPaths(path) {
		data, err := os.ReadFile(sp)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return 0, false, err
		}
		return jiffyFromMetadata(sp, data)
	}
	return 0, false, nil
}

func jiffyFromMetadata(name string, data []byte) (float64, bool, error) {
	doc, err := oj.Parse(data)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", name, err)
	}

	for _, p := range timeBasePaths {
		x, err := jp.ParseString(p.expr)
		if err != nil {
			return 0, false, err
		}
		results := x.Get(doc)
		if len(results) == 0 {
			continue
		}
		v, ok := asFloat(results[0])
		if !ok || !(v > 0) {
			return 0, false, fmt.Errorf("%s: %s is not a positive number: %v", name, p.expr, results[0])
		}
		if p.clockRate {
			return 1 / v, true, nil
		}
		return v, true, nil
	}
	return 0, false, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}
