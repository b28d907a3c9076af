package config

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// ImportConfig configures `plotbins import`.
type ImportConfig struct {
	DSN      string
	RunID    string
	Jiffy    float64
	LogLevel string
	Files    []string
}

func ParseImport(args []string, getenv func(string) string, output io.Writer) (*ImportConfig, error) {
	c := &ImportConfig{DSN: getenv(EnvDSN), LogLevel: "info"}

	fs := flag.NewFlagSet("plotbins import", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&c.DSN, "dsn", c.DSN, "Postgres DSN (env "+EnvDSN+")")
	fs.StringVar(&c.RunID, "run", "", "run id, single file only (default: random)")
	fs.Float64Var(&c.Jiffy, "j", 0, "tick resolution in seconds (shorthand)")
	fs.Float64Var(&c.Jiffy, "jiffy", 0, "tick resolution in seconds, overrides file metadata")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "debug, info, warn or error")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: plotbins import [flags] FILE...\n\nflags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	c.Files = fs.Args()
	return c, nil
}

func (c *ImportConfig) Validate() error {
	var errs []error
	if c.DSN == "" {
		errs = append(errs, fmt.Errorf("no database: set -dsn or %s", EnvDSN))
	}
	if len(c.Files) == 0 {
		errs = append(errs, errors.New("no files to import"))
	}
	if c.RunID != "" && len(c.Files) > 1 {
		errs = append(errs, errors.New("-run needs exactly one file"))
	}
	if err := validJiffy(c.Jiffy); err != nil {
		errs = append(errs, err)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil || c.LogLevel == "" {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}
