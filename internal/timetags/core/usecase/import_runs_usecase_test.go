package usecase_test

import (
	"context"
	"errors"
	"testing"

	"photon-bins/internal/timetags/core/domain"
	"photon-bins/internal/timetags/core/usecase"

	"github.com/rs/zerolog"
)

type fakeRunFiles struct {
	ReadFn func(ctx context.Context, path string) (*domain.Run, error)
	read   []string
}

func (f *fakeRunFiles) ReadRun(ctx context.Context, path string) (*domain.Run, error) {
	f.read = append(f.read, path)
	return f.ReadFn(ctx, path)
}

type fakeStorer struct {
	inputs []usecase.StoreRunInput
	err    error
}

func (f *fakeStorer) Execute(ctx context.Context, in usecase.StoreRunInput) (usecase.StoreRunResult, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return usecase.StoreRunResult{}, f.err
	}
	return usecase.StoreRunResult{RunID: "id-" + in.Source, Created: true}, nil
}

func fileRun(path string, jiffy float64) *domain.Run {
	return &domain.Run{
		Jiffy:    jiffy,
		Source:   path,
		Channels: []domain.ChannelTicks{{Channel: 0, Ticks: []uint64{1, 2}}},
	}
}

func TestImportRuns_Success(t *testing.T) {
	files := &fakeRunFiles{
		ReadFn: func(ctx context.Context, path string) (*domain.Run, error) { return fileRun(path, 1e-9), nil },
	}
	store := &fakeStorer{}
	uc := usecase.NewImportRunsUseCase(files, store, zerolog.Nop())

	results, err := uc.Execute(context.Background(), usecase.ImportRunsInput{Paths: []string{"a.timetag", "b.timetag"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 || results[1].Result.RunID != "id-b.timetag" {
		t.Fatalf("unexpected results: %+v", results)
	}
	if store.inputs[0].Jiffy != 1e-9 || store.inputs[0].RunID != "" {
		t.Fatalf("unexpected store input: %+v", store.inputs[0])
	}
	if len(store.inputs[0].Channels) != 1 || len(store.inputs[0].Channels[0].Ticks) != 2 {
		t.Fatalf("expected channels to be carried over: %+v", store.inputs[0].Channels)
	}
}

func TestImportRuns_JiffyOverrideAndRunID(t *testing.T) {
	files := &fakeRunFiles{
		ReadFn: func(ctx context.Context, path string) (*domain.Run, error) { return fileRun(path, 0), nil },
	}
	store := &fakeStorer{}
	uc := usecase.NewImportRunsUseCase(files, store, zerolog.Nop())

	_, err := uc.Execute(context.Background(), usecase.ImportRunsInput{Paths: []string{"a.timetag"}, RunID: "day1", Jiffy: 5e-9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.inputs[0].Jiffy != 5e-9 || store.inputs[0].RunID != "day1" {
		t.Fatalf("unexpected store input: %+v", store.inputs[0])
	}
}

func TestImportRuns_RunIDNeedsSingleFile(t *testing.T) {
	uc := usecase.NewImportRunsUseCase(&fakeRunFiles{}, &fakeStorer{}, zerolog.Nop())

	_, err := uc.Execute(context.Background(), usecase.ImportRunsInput{Paths: []string{"a", "b"}, RunID: "x"})
	if !errors.Is(err, usecase.ErrRunIDNeedsSingleFile) {
		t.Fatalf("expected ErrRunIDNeedsSingleFile, got %v", err)
	}
}

func TestImportRuns_FailureContinues(t *testing.T) {
	readErr := errors.New("truncated record")
	files := &fakeRunFiles{
		ReadFn: func(ctx context.Context, path string) (*domain.Run, error) {
			if path == "bad.timetag" {
				return nil, readErr
			}
			return fileRun(path, 1e-9), nil
		},
	}
	store := &fakeStorer{}
	uc := usecase.NewImportRunsUseCase(files, store, zerolog.Nop())

	results, err := uc.Execute(context.Background(), usecase.ImportRunsInput{Paths: []string{"bad.timetag", "good.timetag"}})
	if !errors.Is(err, readErr) {
		t.Fatalf("expected read error in result, got %v", err)
	}
	if len(results) != 2 || results[0].Err == nil || results[1].Err != nil {
		t.Fatalf("unexpected results: %+v", results)
	}
	if len(store.inputs) != 1 {
		t.Fatalf("expected only the good file stored, got %d", len(store.inputs))
	}
}
