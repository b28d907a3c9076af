// Package timetagfile reads recorded timetag files for import.
package timetagfile

import (
	"context"
	"fmt"
	"sort"

	"photon-bins/internal/bins/adapters/timetag"
	bdomain "photon-bins/internal/bins/core/domain"
	"photon-bins/internal/timetags/core/domain"
	"photon-bins/internal/timetags/core/ports"
)

type Reader struct{}

func NewReader() *Reader { return &Reader{} }

var _ ports.RunFilePort = (*Reader)(nil)

// ReadRun loads every channel of the file. Unlike plotting, a broken
// channel fails the whole import so that a stored run is never partial.
func (r *Reader) ReadRun(ctx context.Context, path string) (*domain.Run, error) {
	src, err := timetag.Open(ctx, path)
	if err != nil {
		return nil, err
	}

	jiffy, err := src.Jiffy(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0)
	for id := range src.Channels() {
		ids = append(ids, int(id))
	}
	sort.Ints(ids)

	run := &domain.Run{Jiffy: jiffy, Source: src.Name()}
	for _, id := range ids {
		ticks, err := src.ReadChannel(ctx, bdomain.ChannelID(id))
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", id, err)
		}
		run.Channels = append(run.Channels, domain.ChannelTicks{Channel: id, Ticks: ticks})
	}
	if len(run.Channels) == 0 {
		// Surfaces a file-level decode error, if any.
		if _, err := src.ReadChannel(ctx, 0); err != nil {
			return nil, err
		}
	}
	return run, nil
}
