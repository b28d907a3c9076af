// Package output writes rendered plots to files.
package output

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"photon-bins/internal/bins/adapters/postgres"
	"photon-bins/internal/bins/adapters/render"
	"photon-bins/internal/bins/core/domain"
	"photon-bins/internal/bins/core/ports"

	"github.com/rs/zerolog"
)

const autoSuffix = "-bins"

var compressionExts = []string{".gz", ".gzip", ".bz2", ".xz"}

// Naming decides where the plot of an input is written.
type Naming struct {
	Output string // explicit output file, "" for none
	Auto   bool   // <input-basename>-bins.pdf next to the input
	Multi  bool   // more than one input in the batch
}

// Path returns the output file for input.
func (n Naming) Path(input string) (string, error) {
	switch {
	case n.Output != "" && !n.Multi:
		return n.Output, nil
	case n.Output != "":
		ext := filepath.Ext(n.Output)
		return strings.TrimSuffix(n.Output, ext) + "-" + Basename(input) + ext, nil
	case n.Auto:
		dir := "."
		if !strings.HasPrefix(input, postgres.RunPrefix) {
			dir = filepath.Dir(input)
		}
		return filepath.Join(dir, Basename(input)+autoSuffix+"."+render.DefaultFormat), nil
	}
	return "", errors.New("no output file configured")
}

// Basename strips directories, compression suffixes and the extension of
// input. A stored run yields its id.
func Basename(input string) string {
	if id, ok := strings.CutPrefix(input, postgres.RunPrefix); ok {
		return id
	}
	base := filepath.Base(input)
	lower := strings.ToLower(base)
	for _, ext := range compressionExts {
		if strings.HasSuffix(lower, ext) {
			base = base[:len(base)-len(ext)]
			break
		}
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// FileSink renders each plot into the file chosen by its Naming. The
// renderer follows the output extension.
type FileSink struct {
	naming Naming
	log    zerolog.Logger
}

func NewFileSink(naming Naming, log zerolog.Logger) *FileSink {
	return &FileSink{naming: naming, log: log}
}

func (s *FileSink) Deliver(ctx context.Context, input string, p *domain.Plot) (string, error) {
	path, err := s.naming.Path(input)
	if err != nil {
		return "", err
	}
	r, err := render.ForPath(path)
	if err != nil {
		return "", err
	}
	if err := writeFile(ctx, r, p, path); err != nil {
		return "", err
	}
	s.log.Debug().Str("input", input).Str("output", path).Str("format", r.Format()).Msg("plot written")
	return path, nil
}

func writeFile(ctx context.Context, r ports.ChartRendererPort, p *domain.Plot, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := r.Render(ctx, p, f); err != nil {
		return fmt.Errorf("render %s: %w", r.Format(), err)
	}
	return nil
}
