package usecase_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"photon-bins/internal/timetags/core/domain"
	"photon-bins/internal/timetags/core/usecase"
)

// Fake repository implementing RunRepositoryPort
type fakeRunRepo struct {
	InsertFn func(ctx context.Context, r *domain.Run) (bool, error)
	called   bool
}

func (f *fakeRunRepo) InsertRun(ctx context.Context, r *domain.Run) (bool, error) {
	f.called = true
	if f.InsertFn != nil {
		return f.InsertFn(ctx, r)
	}
	return true, nil
}

func validInput() usecase.StoreRunInput {
	return usecase.StoreRunInput{
		RunID:  "run-1",
		Jiffy:  1e-9,
		Source: "day1.timetag",
		Channels: []usecase.ChannelInput{
			{Channel: 0, Ticks: []uint64{10, 20, 20, 35}},
			{Channel: 1, Ticks: []uint64{12}},
		},
	}
}

// ------------------------------------------------------------
// SUCCESS TEST
// ------------------------------------------------------------
func TestStoreRun_Success(t *testing.T) {
	repo := &fakeRunRepo{
		InsertFn: func(ctx context.Context, r *domain.Run) (bool, error) {
			if r.ID != "run-1" || r.Jiffy != 1e-9 || r.Source != "day1.timetag" {
				t.Fatalf("unexpected run: %+v", r)
			}
			if len(r.Channels) != 2 || r.Channels[0].Channel != 0 {
				t.Fatalf("unexpected channels: %+v", r.Channels)
			}
			return true, nil
		},
	}

	uc := usecase.NewStoreRunUseCase(repo)

	res, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Created || res.RunID != "run-1" || res.Events != 5 {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestStoreRun_GeneratesRunID(t *testing.T) {
	var stored string
	repo := &fakeRunRepo{
		InsertFn: func(ctx context.Context, r *domain.Run) (bool, error) {
			stored = r.ID
			return true, nil
		},
	}
	in := validInput()
	in.RunID = ""

	res, err := usecase.NewStoreRunUseCase(repo).Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.RunID == "" || res.RunID != stored {
		t.Fatalf("expected generated id to be stored and returned, got %q / %q", res.RunID, stored)
	}
}

// ------------------------------------------------------------
// DUPLICATE
// ------------------------------------------------------------
func TestStoreRun_Duplicate(t *testing.T) {
	repo := &fakeRunRepo{
		InsertFn: func(ctx context.Context, r *domain.Run) (bool, error) { return false, nil },
	}

	res, err := usecase.NewStoreRunUseCase(repo).Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created {
		t.Fatalf("expected created=false for duplicate")
	}
}

// ------------------------------------------------------------
// VALIDATION
// ------------------------------------------------------------
func TestStoreRun_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(in *usecase.StoreRunInput)
		want   error
	}{
		{"zero jiffy", func(in *usecase.StoreRunInput) { in.Jiffy = 0 }, usecase.ErrInvalidRun},
		{"nan jiffy", func(in *usecase.StoreRunInput) { in.Jiffy = math.NaN() }, usecase.ErrInvalidRun},
		{"channel too high", func(in *usecase.StoreRunInput) { in.Channels[1].Channel = 16 }, usecase.ErrInvalidRun},
		{"negative channel", func(in *usecase.StoreRunInput) { in.Channels[1].Channel = -1 }, usecase.ErrInvalidRun},
		{"duplicate channel", func(in *usecase.StoreRunInput) { in.Channels[1].Channel = 0 }, usecase.ErrInvalidRun},
		{"tick too large", func(in *usecase.StoreRunInput) { in.Channels[1].Ticks = []uint64{1 << 63} }, usecase.ErrInvalidRun},
		{"unsorted", func(in *usecase.StoreRunInput) { in.Channels[0].Ticks = []uint64{5, 4} }, usecase.ErrTicksNotSorted},
		{"no events", func(in *usecase.StoreRunInput) { in.Channels = []usecase.ChannelInput{{Channel: 0}} }, usecase.ErrEmptyRun},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRunRepo{}
			in := validInput()
			tc.mutate(&in)

			_, err := usecase.NewStoreRunUseCase(repo).Execute(context.Background(), in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if repo.called {
				t.Fatalf("repository should not be called for invalid input")
			}
		})
	}
}

// ------------------------------------------------------------
// REPO ERROR
// ------------------------------------------------------------
func TestStoreRun_RepoError(t *testing.T) {
	repo := &fakeRunRepo{
		InsertFn: func(ctx context.Context, r *domain.Run) (bool, error) {
			return false, errors.New("db down")
		},
	}

	_, err := usecase.NewStoreRunUseCase(repo).Execute(context.Background(), validInput())
	if err == nil || err.Error() != "db down" {
		t.Fatalf("expected repo error, got %v", err)
	}
}
