package timetag

import (
	"bufio"
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"photon-bins/internal/bins/core/domain"
)

// Source is one timetag file, decoded in a single pass when it is opened.
// It satisfies ports.TimestampSourcePort and ports.Fingerprinter.
type Source struct {
	path        string
	format      Format
	compression Compression
	fingerprint string

	data    *decoded
	fileErr error // set when the whole file is unreadable as records

	jiffy   float64
	metaErr error
}

// Open reads path. I/O failures are returned directly; a malformed file
// yields a Source whose every channel reports the problem.
func Open(ctx context.Context, path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && hasMeta(path) {
			return nil, fmt.Errorf("%w: %s", ErrNoMatch, path)
		}
		return nil, err
	}
	defer f.Close()

	h, err := newFingerprintHash()
	if err != nil {
		return nil, err
	}
	// Everything read from the file also feeds the fingerprint.
	raw := io.TeeReader(f, h)
	br := bufio.NewReader(raw)

	s := &Source{path: path, format: FormatFor(path)}

	s.compression, err = DetectCompression(br)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r, closeDecomp, err := decompress(br, s.compression)
	if err != nil {
		s.fileErr = err
	} else {
		if s.format == FormatText {
			s.data, s.fileErr = decodeText(ctx, r)
		} else {
			s.data, s.fileErr = decodeBinary(ctx, r)
		}
		closeDecomp()
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	// Hash whatever the decoder did not consume.
	if _, err := io.Copy(io.Discard, br); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.fingerprint = hex.EncodeToString(h.Sum(nil))

	if j, ok, err := readSidecarJiffy(path); err != nil {
		s.metaErr = err
	} else if ok {
		s.jiffy = j
	} else if s.data != nil {
		s.jiffy = s.data.jiffy
	}

	return s, nil
}

func (s *Source) Name() string { return filepath.Base(s.path) }

func (s *Source) Path() string { return s.path }

func (s *Source) Fingerprint() string { return s.fingerprint }

func (s *Source) Compression() Compression { return s.compression }

func (s *Source) Format() Format { return s.format }

// Jiffy prefers the metadata sidecar over an in-file comment and returns 0
// when neither is present.
func (s *Source) Jiffy(ctx context.Context) (float64, error) {
	if s.metaErr != nil {
		return 0, s.metaErr
	}
	return s.jiffy, nil
}

// ReadChannel returns the ticks of ch in file order. An absent channel is
// empty, not an error.
func (s *Source) ReadChannel(ctx context.Context, ch domain.ChannelID) ([]domain.Tick, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.fileErr != nil {
		return nil, s.fileErr
	}
	if err := s.data.chanErrs[ch]; err != nil {
		return nil, err
	}
	return s.data.ticks[ch], nil
}

// Channels lists the channel ids present in the file with their event
// counts, broken channels included with a count of 0.
func (s *Source) Channels() map[domain.ChannelID]int {
	out := make(map[domain.ChannelID]int)
	if s.data == nil {
		return out
	}
	for ch, ts := range s.data.ticks {
		out[ch] = len(ts)
	}
	for ch := range s.data.chanErrs {
		out[ch] = 0
	}
	return out
}
