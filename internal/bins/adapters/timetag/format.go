package timetag

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"photon-bins/internal/bins/core/domain"
)

type Format int

const (
	FormatBinary Format = iota
	FormatText
)

func (f Format) String() string {
	if f == FormatText {
		return "text"
	}
	return "binary"
}

const (
	recordSize   = 8
	channelShift = 60
	tickMask     = uint64(1)<<channelShift - 1

	// ctx is polled once per this many records.
	cancelCheckEvery = 1 << 16
)

var ErrTruncatedRecord = errors.New("truncated record")

// FormatFor picks the record format from the file name, ignoring a
// compression suffix.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(trimCompressionSuffix(path))) {
	case ".txt", ".csv", ".tsv":
		return FormatText
	}
	return FormatBinary
}

// EncodeRecord packs a channel and tick into one binary record value.
func EncodeRecord(ch domain.ChannelID, tick domain.Tick) uint64 {
	return uint64(ch)<<channelShift | tick&tickMask
}

// DecodeRecord is the inverse of EncodeRecord.
func DecodeRecord(v uint64) (domain.ChannelID, domain.Tick) {
	return domain.ChannelID(v >> channelShift), v & tickMask
}

// decoded holds everything one pass over a file yields. A file-level error
// leaves every channel unusable; a channel error only that channel.
type decoded struct {
	ticks    map[domain.ChannelID][]domain.Tick
	chanErrs map[domain.ChannelID]error
	jiffy    float64 // from an in-file comment, 0 if none
	records  int
}

func newDecoded() *decoded {
	return &decoded{
		ticks:    make(map[domain.ChannelID][]domain.Tick),
		chanErrs: make(map[domain.ChannelID]error),
	}
}

// add appends tick to ch, marking the channel broken when ticks go
// backwards. Broken channels stop collecting.
func (d *decoded) add(ch domain.ChannelID, tick domain.Tick, where string) {
	if d.chanErrs[ch] != nil {
		return
	}
	ts := d.ticks[ch]
	if n := len(ts); n > 0 && tick < ts[n-1] {
		d.chanErrs[ch] = fmt.Errorf("tick %d after %d at %s: ticks out of order", tick, ts[n-1], where)
		delete(d.ticks, ch)
		return
	}
	d.ticks[ch] = append(ts, tick)
}

func decodeBinary(ctx context.Context, r io.Reader) (*decoded, error) {
	d := newDecoded()
	br := bufio.NewReaderSize(r, 1<<16)
	var buf [recordSize]byte

	for i := 0; ; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		_, err := io.ReadFull(br, buf[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("record %d: %w", i, ErrTruncatedRecord)
		}
		if err != nil {
			return nil, err
		}
		ch, tick := DecodeRecord(binary.LittleEndian.Uint64(buf[:]))
		d.add(ch, tick, "record "+strconv.Itoa(i))
		d.records++
	}
	return d, nil
}

func decodeText(ctx context.Context, r io.Reader) (*decoded, error) {
	d := newDecoded()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		if line%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		if comment, ok := strings.CutPrefix(text, "#"); ok {
			if j, ok, err := parseTimeBaseComment(comment); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			} else if ok {
				d.jiffy = j
			}
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ',' || r == '\t' || r == ' ' || r == ';'
		})
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want \"channel tick\", got %q", line, text)
		}
		chID, err := strconv.Atoi(fields[0])
		if err != nil || chID < 0 || chID > domain.MaxChannelID {
			return nil, fmt.Errorf("line %d: invalid channel %q", line, fields[0])
		}
		ch := domain.ChannelID(chID)
		tick, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			if d.chanErrs[ch] == nil {
				d.chanErrs[ch] = fmt.Errorf("line %d: invalid tick %q", line, fields[1])
				delete(d.ticks, ch)
			}
			continue
		}
		d.add(ch, tick, "line "+strconv.Itoa(line))
		d.records++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

// parseTimeBaseComment understands "jiffy=<seconds>" and "clockrate=<Hz>"
// inside a comment line. Other comments are ignored.
func parseTimeBaseComment(comment string) (float64, bool, error) {
	key, value, ok := strings.Cut(strings.TrimSpace(comment), "=")
	if !ok {
		return 0, false, nil
	}
	key = strings.ToLower(strings.TrimSpace(key))
	if key != "jiffy" && key != "clockrate" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || !(v > 0) {
		return 0, false, fmt.Errorf("invalid %s %q", key, strings.TrimSpace(value))
	}
	if key == "clockrate" {
		return 1 / v, true, nil
	}
	return v, true, nil
}
