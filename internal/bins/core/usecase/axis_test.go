package usecase_test

import (
	"testing"

	"photon-bins/internal/bins/core/usecase"
)

func TestRowOffsetFormatter_OffsetTextIgnoresMagnitude(t *testing.T) {
	for _, rows := range []int{1, 2, 10, 500} {
		f := usecase.RowOffsetFormatter{Rows: rows, RowWidth: 30}
		if got := f.OffsetText(); got != "+30r" {
			t.Fatalf("rows=%d: expected +30r, got %q", rows, got)
		}
		if want := 30 * float64(rows-1); f.Offset() != want {
			t.Fatalf("rows=%d: expected offset %g, got %g", rows, want, f.Offset())
		}
	}
}

func TestRowOffsetFormatter_FractionalWidth(t *testing.T) {
	f := usecase.RowOffsetFormatter{Rows: 4, RowWidth: 2.5}
	if got := f.OffsetText(); got != "+2.5r" {
		t.Fatalf("expected +2.5r, got %q", got)
	}
}

func TestRowOffsetFormatter_TickLabel(t *testing.T) {
	f := usecase.RowOffsetFormatter{Rows: 10, RowWidth: 10}
	tests := map[float64]string{
		0:                   "0",
		2.5:                 "2.5",
		10:                  "10",
		0.30000000000000004: "0.3",
	}
	for v, want := range tests {
		if got := f.TickLabel(v); got != want {
			t.Fatalf("TickLabel(%v) = %q, want %q", v, got, want)
		}
	}
}
