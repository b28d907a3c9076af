package timetagfile

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"photon-bins/internal/bins/adapters/timetag"
	bdomain "photon-bins/internal/bins/core/domain"
)

func writeRecords(t *testing.T, name string, recs [][2]uint64) string {
	t.Helper()
	var buf bytes.Buffer
	for _, r := range recs {
		_ = binary.Write(&buf, binary.LittleEndian, timetag.EncodeRecord(bdomain.ChannelID(r[0]), r[1]))
	}
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return p
}

func TestReader_ReadRun(t *testing.T) {
	p := writeRecords(t, "day1.timetag", [][2]uint64{{2, 5}, {0, 7}, {2, 9}, {0, 8}})
	if err := os.WriteFile(p+".meta.json", []byte(`{"clockrate": 1e9}`), 0o644); err != nil {
		t.Fatalf("write meta: %v", err)
	}

	run, err := NewReader().ReadRun(context.Background(), p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Source != "day1.timetag" || run.Jiffy != 1e-9 {
		t.Fatalf("unexpected run header: %+v", run)
	}
	if len(run.Channels) != 2 || run.Channels[0].Channel != 0 || run.Channels[1].Channel != 2 {
		t.Fatalf("expected channels sorted by id, got %+v", run.Channels)
	}
	if run.EventCount() != 4 {
		t.Fatalf("expected 4 events, got %d", run.EventCount())
	}
}

func TestReader_BrokenChannelFailsImport(t *testing.T) {
	p := writeRecords(t, "bad.timetag", [][2]uint64{{0, 5}, {1, 9}, {1, 3}})

	if _, err := NewReader().ReadRun(context.Background(), p); err == nil {
		t.Fatalf("expected error for out of order channel")
	}
}

func TestReader_TruncatedFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "cut.timetag")
	if err := os.WriteFile(p, []byte{1, 2, 3}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewReader().ReadRun(context.Background(), p); !errors.Is(err, timetag.ErrTruncatedRecord) {
		t.Fatalf("expected ErrTruncatedRecord, got %v", err)
	}
}
