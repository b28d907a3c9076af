package usecase

import (
	"context"
	"errors"
	"fmt"
	"math"

	"photon-bins/internal/timetags/core/domain"
	"photon-bins/internal/timetags/core/ports"

	"github.com/google/uuid"
)

const (
	maxChannel = 15
	// Ticks are stored as bigint.
	maxTick = uint64(math.MaxInt64)
)

var (
	ErrInvalidRun     = errors.New("invalid run")
	ErrEmptyRun       = errors.New("run has no events")
	ErrTicksNotSorted = errors.New("ticks not in ascending order")
)

type StoreRunUseCase struct {
	repo ports.RunRepositoryPort
}

func NewStoreRunUseCase(repo ports.RunRepositoryPort) *StoreRunUseCase {
	return &StoreRunUseCase{repo: repo}
}

type ChannelInput struct {
	Channel int
	Ticks   []uint64
}

type StoreRunInput struct {
	RunID    string // generated when empty
	Jiffy    float64
	Source   string
	Channels []ChannelInput
}

type StoreRunResult struct {
	RunID   string
	Created bool
	Events  int
}

func (uc *StoreRunUseCase) Execute(ctx context.Context, in StoreRunInput) (StoreRunResult, error) {
	if err := validateInput(in); err != nil {
		return StoreRunResult{}, err
	}

	runID := in.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	run := &domain.Run{
		ID:       runID,
		Jiffy:    in.Jiffy,
		Source:   in.Source,
		Channels: make([]domain.ChannelTicks, 0, len(in.Channels)),
	}
	for _, c := range in.Channels {
		run.Channels = append(run.Channels, domain.ChannelTicks{Channel: c.Channel, Ticks: c.Ticks})
	}

	created, err := uc.repo.InsertRun(ctx, run)
	if err != nil {
		return StoreRunResult{}, err
	}

	return StoreRunResult{RunID: runID, Created: created, Events: run.EventCount()}, nil
}

func validateInput(in StoreRunInput) error {
	if !(in.Jiffy > 0) || math.IsInf(in.Jiffy, 0) {
		return fmt.Errorf("%w: jiffy must be a positive number, got %g", ErrInvalidRun, in.Jiffy)
	}

	seen := make(map[int]bool, len(in.Channels))
	events := 0
	for _, c := range in.Channels {
		if c.Channel < 0 || c.Channel > maxChannel {
			return fmt.Errorf("%w: channel %d out of range [0, %d]", ErrInvalidRun, c.Channel, maxChannel)
		}
		if seen[c.Channel] {
			return fmt.Errorf("%w: channel %d given twice", ErrInvalidRun, c.Channel)
		}
		seen[c.Channel] = true

		for i, t := range c.Ticks {
			if t > maxTick {
				return fmt.Errorf("%w: channel %d tick %d too large", ErrInvalidRun, c.Channel, t)
			}
			if i > 0 && t < c.Ticks[i-1] {
				return fmt.Errorf("%w: channel %d at index %d", ErrTicksNotSorted, c.Channel, i)
			}
		}
		events += len(c.Ticks)
	}
	if events == 0 {
		return ErrEmptyRun
	}
	return nil
}
