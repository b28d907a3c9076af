// Package config resolves plotbins settings from defaults, an optional YAML
// file, the environment and command-line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"photon-bins/internal/bins/adapters/render"
	"photon-bins/internal/bins/core/domain"
	"photon-bins/internal/bins/core/usecase"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const EnvDSN = "POSTGRES_DSN"

type Config struct {
	Channels   []string `yaml:"channels"`
	BinWidth   float64  `yaml:"bin_width"`
	Jiffy      float64  `yaml:"jiffy"`
	Rows       int      `yaml:"rows"`
	RowWidth   float64  `yaml:"row_width"`
	YMax       string   `yaml:"ymax"`
	Start      *float64 `yaml:"start"`
	Output     string   `yaml:"output"`
	AutoOutput bool     `yaml:"auto_output"`
	DSN        string   `yaml:"dsn"`
	Listen     string   `yaml:"listen"`
	Workers    int      `yaml:"workers"`
	LogLevel   string   `yaml:"log_level"`

	ConfigFile string   `yaml:"-"`
	Inputs     []string `yaml:"-"`
}

func Default() Config {
	return Config{
		Channels: []string{"0=donor", "1=acceptor"},
		BinWidth: 0.010,
		Rows:     10,
		RowWidth: 10,
		YMax:     "max",
		Listen:   "127.0.0.1:8080",
		Workers:  4,
		LogLevel: "info",
	}
}

// LoadFile overlays the YAML file at path onto c. Keys missing from the file
// keep their current value.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if dsn := getenv(EnvDSN); dsn != "" {
		c.DSN = dsn
	}
}

// Parse builds the plotbins configuration. The flags are read twice: once
// to find -config, then on top of the file and environment values.
func Parse(args []string, getenv func(string) string, output io.Writer) (*Config, error) {
	scratch := Default()
	// errors surface in the second pass
	_ = newFlagSet(&scratch, io.Discard).Parse(args)

	cfg := Default()
	if scratch.ConfigFile != "" {
		if err := cfg.LoadFile(scratch.ConfigFile); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv(getenv)

	fs := newFlagSet(&cfg, output)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Inputs = fs.Args()
	return &cfg, nil
}

func newFlagSet(c *Config, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("plotbins", flag.ContinueOnError)
	fs.SetOutput(output)

	channels := &channelList{specs: &c.Channels}
	fs.Var(channels, "c", "channel CH[=LABEL], repeatable (shorthand)")
	fs.Var(channels, "channel", "channel CH[=LABEL], repeatable")

	fs.Float64Var(&c.BinWidth, "w", c.BinWidth, "bin width in seconds (shorthand)")
	fs.Float64Var(&c.BinWidth, "bin-width", c.BinWidth, "bin width in seconds")
	fs.Float64Var(&c.Jiffy, "j", c.Jiffy, "tick resolution in seconds (shorthand)")
	fs.Float64Var(&c.Jiffy, "jiffy", c.Jiffy, "tick resolution in seconds, overrides file metadata")
	fs.IntVar(&c.Rows, "r", c.Rows, "number of rows (shorthand)")
	fs.IntVar(&c.Rows, "rows", c.Rows, "number of rows")
	fs.Float64Var(&c.RowWidth, "W", c.RowWidth, "row width in seconds (shorthand)")
	fs.Float64Var(&c.RowWidth, "row-width", c.RowWidth, "row width in seconds")
	fs.StringVar(&c.YMax, "y", c.YMax, "vertical scale (shorthand)")
	fs.StringVar(&c.YMax, "ymax", c.YMax, "vertical scale: max, avg, <n>, <n>/sec or <n>/bin")

	start := &optionalFloat{v: &c.Start}
	fs.Var(start, "s", "plot start in seconds (shorthand)")
	fs.Var(start, "start", "plot start in seconds on the run clock")

	fs.StringVar(&c.Output, "o", c.Output, "output file (shorthand)")
	fs.StringVar(&c.Output, "output", c.Output, "output file, format from the extension")
	fs.BoolVar(&c.AutoOutput, "O", c.AutoOutput, "write <input>-bins.pdf next to each input (shorthand)")
	fs.BoolVar(&c.AutoOutput, "auto-output", c.AutoOutput, "write <input>-bins.pdf next to each input")

	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "YAML config file")
	fs.StringVar(&c.DSN, "dsn", c.DSN, "Postgres DSN for pg: inputs (env "+EnvDSN+")")
	fs.StringVar(&c.Listen, "listen", c.Listen, "address of the interactive viewer")
	fs.IntVar(&c.Workers, "workers", c.Workers, "parallel channel workers")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: plotbins [flags] INPUT...\n       plotbins import [flags] FILE...\n\nflags:\n")
		fs.PrintDefaults()
	}
	return fs
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Inputs) == 0 {
		errs = append(errs, usecase.ErrNoInputs)
	}
	if _, err := domain.ParseChannelSet(c.Channels); err != nil {
		errs = append(errs, err)
	} else if len(c.Channels) == 0 {
		errs = append(errs, errors.New("no channels selected"))
	}
	if !(c.BinWidth > 0) {
		errs = append(errs, fmt.Errorf("bin width must be positive, got %g", c.BinWidth))
	}
	if err := validJiffy(c.Jiffy); err != nil {
		errs = append(errs, err)
	}
	if c.Rows < 1 || c.Rows > usecase.MaxRows {
		errs = append(errs, fmt.Errorf("rows must be between 1 and %d, got %d", usecase.MaxRows, c.Rows))
	}
	if !(c.RowWidth > 0) {
		errs = append(errs, fmt.Errorf("row width must be positive, got %g", c.RowWidth))
	}
	if _, err := usecase.ParseScale(c.YMax); err != nil {
		errs = append(errs, err)
	}
	if c.Output != "" && c.AutoOutput {
		errs = append(errs, errors.New("-output and -auto-output are mutually exclusive"))
	}
	if c.Output != "" {
		if _, err := render.ForPath(c.Output); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}

	return errors.Join(errs...)
}

// validJiffy accepts 0 (no override) or a positive finite value.
func validJiffy(j float64) error {
	if j < 0 || math.IsNaN(j) || math.IsInf(j, 0) {
		return fmt.Errorf("%w: jiffy must be a positive number of seconds, got %g", usecase.ErrInvalidJiffy, j)
	}
	return nil
}

// Viewer reports whether plots are served interactively instead of written.
func (c *Config) Viewer() bool {
	return c.Output == "" && !c.AutoOutput
}

// Template returns the per-input plot settings; Source is left for the
// batch to fill in.
func (c *Config) Template() (usecase.BuildPlotInput, error) {
	set, err := domain.ParseChannelSet(c.Channels)
	if err != nil {
		return usecase.BuildPlotInput{}, err
	}
	return usecase.BuildPlotInput{
		Channels: set,
		BinWidth: c.BinWidth,
		Jiffy:    c.Jiffy,
		Rows:     c.Rows,
		RowWidth: c.RowWidth,
		Scale:    c.YMax,
		Start:    c.Start,
	}, nil
}

// channelList collects repeated -c flags. The first one given on the
// command line replaces the default selection.
type channelList struct {
	specs *[]string
	set   bool
}

func (l *channelList) String() string {
	if l == nil || l.specs == nil {
		return ""
	}
	return strings.Join(*l.specs, ",")
}

func (l *channelList) Set(v string) error {
	if _, _, err := domain.ParseChannelSpec(v); err != nil {
		return err
	}
	if !l.set {
		*l.specs = nil
		l.set = true
	}
	*l.specs = append(*l.specs, v)
	return nil
}

type optionalFloat struct {
	v **float64
}

func (f *optionalFloat) String() string {
	if f == nil || f.v == nil || *f.v == nil {
		return ""
	}
	return strconv.FormatFloat(**f.v, 'g', -1, 64)
}

func (f *optionalFloat) Set(s string) error {
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	*f.v = &x
	return nil
}
