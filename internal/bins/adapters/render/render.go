// Package render picks a chart renderer for an output format.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"photon-bins/internal/bins/adapters/render/gonum"
	"photon-bins/internal/bins/adapters/render/xlsx"
	"photon-bins/internal/bins/core/ports"
)

// DefaultFormat is used for automatic output names.
const DefaultFormat = "pdf"

func ForFormat(format string) (ports.ChartRendererPort, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == xlsx.Format {
		return xlsx.New(), nil
	}
	r, err := gonum.New(format)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ForPath chooses the renderer from the file extension of path.
func ForPath(path string) (ports.ChartRendererPort, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return nil, fmt.Errorf("%s: no file extension to choose an output format", path)
	}
	return ForFormat(ext)
}

// Formats lists every supported output format.
func Formats() []string {
	return append(append([]string(nil), gonum.Formats...), xlsx.Format)
}
