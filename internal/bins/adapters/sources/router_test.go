package sources

import (
	"context"
	"errors"
	"testing"

	"photon-bins/internal/bins/core/domain"
	"photon-bins/internal/bins/core/ports"
)

type namedSource string

func (n namedSource) Name() string { return string(n) }
func (n namedSource) Jiffy(ctx context.Context) (float64, error) { return 1, nil }
func (n namedSource) ReadChannel(ctx context.Context, ch domain.ChannelID) ([]domain.Tick, error) {
	return nil, nil
}

type fakeOpener struct {
	kind      string
	lastInput string
}

func (f *fakeOpener) Open(ctx context.Context, input string) (ports.TimestampSourcePort, error) {
	f.lastInput = input
	return namedSource(f.kind), nil
}

func TestRouter(t *testing.T) {
	files := &fakeOpener{kind: "file"}
	runs := &fakeOpener{kind: "run"}
	r := NewRouter(files, runs)

	src, err := r.Open(context.Background(), "pg:abc")
	if err != nil || src.Name() != "run" {
		t.Fatalf("expected run source, got %v (%v)", src, err)
	}
	if runs.lastInput != "pg:abc" {
		t.Fatalf("unexpected run input %q", runs.lastInput)
	}

	src, err = r.Open(context.Background(), "data/pg.timetag")
	if err != nil || src.Name() != "file" {
		t.Fatalf("expected file source, got %v (%v)", src, err)
	}
}

func TestRouter_NoDatabase(t *testing.T) {
	r := NewRouter(&fakeOpener{kind: "file"}, nil)

	if _, err := r.Open(context.Background(), "pg:abc"); !errors.Is(err, ErrNoDatabase) {
		t.Fatalf("expected ErrNoDatabase, got %v", err)
	}
}
