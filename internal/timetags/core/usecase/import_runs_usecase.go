package usecase

import (
	"context"
	"errors"
	"fmt"

	"photon-bins/internal/timetags/core/ports"

	"github.com/rs/zerolog"
)

var ErrRunIDNeedsSingleFile = errors.New("a run id can only be given for a single file")

type RunStorer interface {
	Execute(ctx context.Context, in StoreRunInput) (StoreRunResult, error)
}

type ImportRunsInput struct {
	Paths []string
	RunID string
	Jiffy float64 // override, 0 = from file
}

type ImportResult struct {
	Path   string
	Result StoreRunResult
	Err    error
}

type ImportRunsUseCase struct {
	files ports.RunFilePort
	store RunStorer
	log   zerolog.Logger
}

func NewImportRunsUseCase(files ports.RunFilePort, store RunStorer, log zerolog.Logger) *ImportRunsUseCase {
	return &ImportRunsUseCase{files: files, store: store, log: log}
}

// Execute imports every path in order. A failing file does not stop the
// others; the returned error joins all failures.
func (uc *ImportRunsUseCase) Execute(ctx context.Context, in ImportRunsInput) ([]ImportResult, error) {
	if in.RunID != "" && len(in.Paths) != 1 {
		return nil, ErrRunIDNeedsSingleFile
	}

	results := make([]ImportResult, 0, len(in.Paths))
	var failures []error
	for _, path := range in.Paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := ImportResult{Path: path}
		res.Result, res.Err = uc.importOne(ctx, path, in)
		if res.Err != nil {
			uc.log.Error().Str("input", path).Err(res.Err).Msg("import failed")
			failures = append(failures, res.Err)
		} else {
			uc.log.Info().
				Str("input", path).
				Str("run", res.Result.RunID).
				Bool("created", res.Result.Created).
				Int("events", res.Result.Events).
				Msg("run imported")
		}
		results = append(results, res)
	}
	return results, errors.Join(failures...)
}

func (uc *ImportRunsUseCase) importOne(ctx context.Context, path string, in ImportRunsInput) (StoreRunResult, error) {
	run, err := uc.files.ReadRun(ctx, path)
	if err != nil {
		return StoreRunResult{}, fmt.Errorf("%s: %w", path, err)
	}

	jiffy := run.Jiffy
	if in.Jiffy != 0 {
		jiffy = in.Jiffy
	}

	store := StoreRunInput{
		RunID:    in.RunID,
		Jiffy:    jiffy,
		Source:   run.Source,
		Channels: make([]ChannelInput, 0, len(run.Channels)),
	}
	for _, c := range run.Channels {
		store.Channels = append(store.Channels, ChannelInput{Channel: c.Channel, Ticks: c.Ticks})
	}

	res, err := uc.store.Execute(ctx, store)
	if err != nil {
		return StoreRunResult{}, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}
