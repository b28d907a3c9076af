package config

import (
	"errors"
	"flag"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"photon-bins/internal/bins/core/usecase"
)

func noEnv(string) string { return "" }

func envWith(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

// ------------------------------------------------------------
// DEFAULTS
// ------------------------------------------------------------

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]string{"a.timetag"}, noEnv, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BinWidth != 0.010 || cfg.Rows != 10 || cfg.RowWidth != 10 || cfg.YMax != "max" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Listen != "127.0.0.1:8080" || cfg.Workers != 4 || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if strings.Join(cfg.Channels, ",") != "0=donor,1=acceptor" {
		t.Fatalf("unexpected channels: %v", cfg.Channels)
	}
	if cfg.Start != nil {
		t.Fatalf("expected no start override")
	}
	if len(cfg.Inputs) != 1 || cfg.Inputs[0] != "a.timetag" {
		t.Fatalf("unexpected inputs: %v", cfg.Inputs)
	}
	if !cfg.Viewer() {
		t.Fatalf("expected viewer mode without -o/-O")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

// ------------------------------------------------------------
// FLAGS
// ------------------------------------------------------------

func TestParse_ShortAndLongFlags(t *testing.T) {
	args := []string{
		"-w", "0.005", "-j", "1e-8", "-rows", "3", "-W", "2.5",
		"-y", "200/sec", "-s", "1.5", "-o", "out.png", "-workers", "1",
		"x.timetag", "y.timetag",
	}
	cfg, err := Parse(args, noEnv, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BinWidth != 0.005 || cfg.Jiffy != 1e-8 || cfg.Rows != 3 || cfg.RowWidth != 2.5 {
		t.Fatalf("unexpected numeric flags: %+v", cfg)
	}
	if cfg.YMax != "200/sec" || cfg.Output != "out.png" || cfg.Workers != 1 {
		t.Fatalf("unexpected flags: %+v", cfg)
	}
	if cfg.Start == nil || *cfg.Start != 1.5 {
		t.Fatalf("expected start 1.5, got %v", cfg.Start)
	}
	if len(cfg.Inputs) != 2 {
		t.Fatalf("expected 2 inputs, got %v", cfg.Inputs)
	}
	if cfg.Viewer() {
		t.Fatalf("expected file output mode")
	}
}

func TestParse_ChannelFlagsReplaceDefaults(t *testing.T) {
	cfg, err := Parse([]string{"-c", "2=red", "-channel", "3", "in"}, noEnv, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(cfg.Channels, ",") != "2=red,3" {
		t.Fatalf("unexpected channels: %v", cfg.Channels)
	}

	tmpl, err := cfg.Template()
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	list := tmpl.Channels.Channels()
	if len(list) != 2 || list[0].Label != "red" || list[1].Label != "Channel 3" {
		t.Fatalf("unexpected channel set: %+v", list)
	}
}

func TestParse_BadChannelFlag(t *testing.T) {
	if _, err := Parse([]string{"-c", "donor", "in"}, noEnv, io.Discard); err == nil {
		t.Fatalf("expected error for non-numeric channel")
	}
}

func TestParse_Help(t *testing.T) {
	var out strings.Builder
	_, err := Parse([]string{"-h"}, noEnv, &out)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(out.String(), "usage: plotbins") {
		t.Fatalf("expected usage text, got %q", out.String())
	}
}

// ------------------------------------------------------------
// FILE + ENV PRECEDENCE
// ------------------------------------------------------------

func TestParse_FileEnvFlagPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plotbins.yaml")
	yml := "bin_width: 0.02\nrows: 4\nymax: avg\ndsn: postgres://file\nchannels: [\"5=green\"]\nstart: 3\n"
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	env := envWith(map[string]string{EnvDSN: "postgres://env"})
	cfg, err := Parse([]string{"-config", path, "-rows", "6", "in"}, env, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.BinWidth != 0.02 || cfg.YMax != "avg" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Rows != 6 {
		t.Fatalf("flag should win over file, got rows=%d", cfg.Rows)
	}
	if cfg.DSN != "postgres://env" {
		t.Fatalf("env should win over file, got %q", cfg.DSN)
	}
	if strings.Join(cfg.Channels, ",") != "5=green" {
		t.Fatalf("unexpected channels: %v", cfg.Channels)
	}
	if cfg.Start == nil || *cfg.Start != 3 {
		t.Fatalf("expected start from file, got %v", cfg.Start)
	}
	if cfg.RowWidth != 10 {
		t.Fatalf("missing key should keep default, got %v", cfg.RowWidth)
	}
}

func TestParse_MissingConfigFile(t *testing.T) {
	_, err := Parse([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml"), "in"}, noEnv, io.Discard)
	if err == nil {
		t.Fatalf("expected error for missing config file")
	}
}

// ------------------------------------------------------------
// VALIDATE
// ------------------------------------------------------------

func TestValidate_ReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.BinWidth = 0
	cfg.Rows = 0
	cfg.RowWidth = -1
	cfg.YMax = "lots"
	cfg.Workers = 0
	cfg.LogLevel = "loud"
	cfg.Channels = []string{"1", "1"}

	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !errors.Is(err, usecase.ErrNoInputs) {
		t.Fatalf("expected ErrNoInputs in %v", err)
	}
	var se *usecase.ScaleSpecError
	if !errors.As(err, &se) {
		t.Fatalf("expected ScaleSpecError in %v", err)
	}
	for _, want := range []string{"bin width", "rows", "row width", "workers", "log level", "more than once"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}
}

func TestValidate_RejectsInvalidJiffy(t *testing.T) {
	for _, j := range []float64{math.NaN(), math.Inf(1), -1} {
		cfg := Default()
		cfg.Inputs = []string{"in"}
		cfg.Jiffy = j

		err := cfg.Validate()
		if !errors.Is(err, usecase.ErrInvalidJiffy) {
			t.Fatalf("jiffy %g: expected ErrInvalidJiffy, got %v", j, err)
		}
	}

	imp := &ImportConfig{DSN: "postgres://x", Files: []string{"a"}, LogLevel: "info", Jiffy: math.NaN()}
	if err := imp.Validate(); !errors.Is(err, usecase.ErrInvalidJiffy) {
		t.Fatalf("import: expected ErrInvalidJiffy, got %v", err)
	}
}

func TestValidate_RowsCeiling(t *testing.T) {
	cfg := Default()
	cfg.Inputs = []string{"in"}

	cfg.Rows = usecase.MaxRows
	if err := cfg.Validate(); err != nil {
		t.Fatalf("rows at the ceiling should validate: %v", err)
	}

	cfg.Rows = usecase.MaxRows + 1
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "rows must be between") {
		t.Fatalf("expected rows error, got %v", err)
	}
}

func TestValidate_Output(t *testing.T) {
	cfg := Default()
	cfg.Inputs = []string{"in"}

	cfg.Output = "out.docx"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for unsupported output format")
	}

	cfg.Output = "out.xlsx"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("xlsx should be accepted: %v", err)
	}

	cfg.AutoOutput = true
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error for -o with -O")
	}
}

// ------------------------------------------------------------
// IMPORT
// ------------------------------------------------------------

func TestParseImport(t *testing.T) {
	env := envWith(map[string]string{EnvDSN: "postgres://env"})
	cfg, err := ParseImport([]string{"-run", "r1", "-j", "1e-9", "a.timetag"}, env, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DSN != "postgres://env" || cfg.RunID != "r1" || cfg.Jiffy != 1e-9 {
		t.Fatalf("unexpected import config: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestImportValidate(t *testing.T) {
	cfg := &ImportConfig{RunID: "r1", Files: []string{"a", "b"}, LogLevel: "info"}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "no database") || !strings.Contains(err.Error(), "-run") {
		t.Fatalf("unexpected error: %v", err)
	}
}
