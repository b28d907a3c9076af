package usecase

import (
	"errors"
	"fmt"
	"strings"

	"photon-bins/internal/bins/core/domain"
)

var (
	ErrBinWidthBelowTick  = errors.New("bin width below one tick")
	ErrInvalidLayout      = errors.New("invalid row layout")
	ErrEmptyScaleWindow   = errors.New("no binned events in scale window")
	ErrEmptyChannel       = errors.New("channel has no events")
	ErrNoEventsAfterStart = errors.New("channel has no events at or after the plot start")
	ErrNoInputs           = errors.New("no inputs given")
	ErrInvalidJiffy       = errors.New("invalid jiffy")
)

// ScaleSpecError reports a vertical-scale token that cannot be understood.
type ScaleSpecError struct {
	Token  string
	Reason string
}

func (e *ScaleSpecError) Error() string {
	return fmt.Sprintf("invalid scale %q: %s (want max, avg, <n>, <n>/sec or <n>/bin)", e.Token, e.Reason)
}

// UnresolvedTimeBaseError means neither the source nor the configuration
// provides a jiffy.
type UnresolvedTimeBaseError struct {
	Source string
}

func (e *UnresolvedTimeBaseError) Error() string {
	return fmt.Sprintf("%s: tick resolution unknown; no jiffy in metadata and no override given", e.Source)
}

// ChannelReadError wraps the failure of a single channel.
type ChannelReadError struct {
	Source  string
	Channel domain.Channel
	Err     error
}

func (e *ChannelReadError) Error() string {
	return fmt.Sprintf("%s: channel %d (%s): %v", e.Source, e.Channel.ID, e.Channel.Label, e.Err)
}

func (e *ChannelReadError) Unwrap() error { return e.Err }

// NoUsableChannelError is returned when every requested channel failed or was empty.
type NoUsableChannelError struct {
	Source   string
	Failures []domain.ChannelFailure
}

func (e *NoUsableChannelError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%d (%s): %s", f.Channel.ID, f.Channel.Label, f.Reason))
	}
	return fmt.Sprintf("%s: no usable channels [%s]", e.Source, strings.Join(parts, "; "))
}

// IsConfigError reports whether err comes from bad user input rather than
// from reading data.
func IsConfigError(err error) bool {
	var scaleErr *ScaleSpecError
	var timeBaseErr *UnresolvedTimeBaseError
	return errors.As(err, &scaleErr) ||
		errors.As(err, &timeBaseErr) ||
		errors.Is(err, ErrInvalidJiffy) ||
		errors.Is(err, ErrBinWidthBelowTick) ||
		errors.Is(err, ErrInvalidLayout)
}
