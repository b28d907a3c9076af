package output

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photon-bins/internal/bins/core/domain"

	"github.com/rs/zerolog"
)

func TestBasename(t *testing.T) {
	cases := map[string]string{
		"data/day1/run7.timetag": "run7",
		"run7.timetag.xz":        "run7",
		"/abs/run.2024.txt.gz":   "run.2024",
		"pg:5b0e6c2a":            "5b0e6c2a",
		"noext":                  "noext",
	}
	for in, want := range cases {
		if got := Basename(in); got != want {
			t.Fatalf("Basename(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNaming_Path(t *testing.T) {
	cases := []struct {
		name   string
		naming Naming
		input  string
		want   string
	}{
		{"single explicit", Naming{Output: "out/plot.png"}, "data/a.timetag", "out/plot.png"},
		{"multi explicit", Naming{Output: "out/plot.png", Multi: true}, "data/a.timetag", "out/plot-a.png"},
		{"auto", Naming{Auto: true}, "data/day1/a.timetag.gz", filepath.Join("data", "day1", "a-bins.pdf")},
		{"auto run", Naming{Auto: true}, "pg:r9", "r9-bins.pdf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.naming.Path(tc.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}

	if _, err := (Naming{}).Path("a.timetag"); err == nil {
		t.Fatalf("expected error without output configuration")
	}
}

func sinkPlot() *domain.Plot {
	ch := domain.Channel{ID: 0, Label: "donor"}
	return &domain.Plot{
		ID:              "p",
		Source:          "a.timetag",
		Jiffy:           1e-3,
		BinWidth:        10,
		BinWidthSeconds: 0.01,
		RowWidth:        0.05,
		YMax:            3,
		Series:          []domain.BinnedSeries{{Channel: ch, Width: 10, Bins: []domain.Bin{{Start: 0, Count: 3}}}},
		Rows: []domain.Row{{
			Index:  0,
			Window: domain.Window{Start: 0, End: 0.05},
			Series: []domain.RowSeries{{Channel: ch, Bins: []domain.Bin{{Start: 0, Count: 3}}}},
		}},
	}
}

func TestFileSink_Deliver(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "plot.svg")
	sink := NewFileSink(Naming{Output: out}, zerolog.Nop())

	path, err := sink.Deliver(context.Background(), "a.timetag", sinkPlot())
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}
	if path != out {
		t.Fatalf("unexpected path %q", path)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Fatalf("expected svg content")
	}
}

func TestFileSink_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(Naming{Output: filepath.Join(dir, "plot.doc")}, zerolog.Nop())

	if _, err := sink.Deliver(context.Background(), "a.timetag", sinkPlot()); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
	if _, err := os.Stat(filepath.Join(dir, "plot.doc")); !os.IsNotExist(err) {
		t.Fatalf("expected no file for unsupported format")
	}
}

func TestFileSink_RenderFailureRemovesFile(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "plot.png")
	sink := NewFileSink(Naming{Output: out}, zerolog.Nop())

	if _, err := sink.Deliver(context.Background(), "a.timetag", &domain.Plot{}); err == nil {
		t.Fatalf("expected render error for empty plot")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Fatalf("expected partial file to be removed")
	}
}
