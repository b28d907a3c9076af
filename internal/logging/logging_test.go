package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestNew_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("warn", &buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logger.Info().Msg("hidden")
	logger.Warn().Str("input", "a.timetag").Msg("channel skipped")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message should be filtered: %q", out)
	}
	if !strings.Contains(out, "channel skipped") || !strings.Contains(out, "input=a.timetag") {
		t.Fatalf("expected warn line with fields, got %q", out)
	}
}

func TestNew_InstallsGlobal(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New("debug", &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log.Debug().Msg("from global")
	if !strings.Contains(buf.String(), "from global") {
		t.Fatalf("global logger not installed: %q", buf.String())
	}
}

func TestNew_UnknownLevel(t *testing.T) {
	for _, level := range []string{"", "loud"} {
		if _, err := New(level, &bytes.Buffer{}); err == nil {
			t.Fatalf("expected error for level %q", level)
		}
	}
}
