// Package xlsx exports the binned rows of a plot as a spreadsheet.
package xlsx

import (
	"context"
	"fmt"
	"io"
	"strings"

	"photon-bins/internal/bins/core/domain"

	"github.com/xuri/excelize/v2"
)

const (
	Format       = "xlsx"
	RowsSheet    = "rows"
	SummarySheet = "summary"
)

var rowsHeader = []any{"row", "window start (s)", "channel", "label", "bin start (s)", "count"}

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return Format }

func (e *Exporter) Render(ctx context.Context, p *domain.Plot, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", RowsSheet); err != nil {
		return err
	}
	if err := writeRows(ctx, f, p); err != nil {
		return err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	if err := writeSummary(f, p); err != nil {
		return err
	}

	return f.Write(w)
}

func writeRows(ctx context.Context, f *excelize.File, p *domain.Plot) error {
	if err := f.SetSheetRow(RowsSheet, "A1", &rowsHeader); err != nil {
		return err
	}
	line := 2
	for _, row := range p.Rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, s := range row.Series {
			for _, b := range s.Bins {
				cell, err := excelize.CoordinatesToCellName(1, line)
				if err != nil {
					return err
				}
				values := []any{
					row.Index,
					row.Window.Start,
					int(s.Channel.ID),
					s.Channel.Label,
					domain.Seconds(b.Start, p.Jiffy),
					b.Count,
				}
				if err := f.SetSheetRow(RowsSheet, cell, &values); err != nil {
					return err
				}
				line++
			}
		}
	}
	return nil
}

func writeSummary(f *excelize.File, p *domain.Plot) error {
	skipped := make([]string, 0, len(p.Skipped))
	for _, s := range p.Skipped {
		skipped = append(skipped, fmt.Sprintf("%d (%s): %s", s.Channel.ID, s.Channel.Label, s.Reason))
	}
	channels := make([]string, 0, len(p.Series))
	for _, s := range p.Series {
		channels = append(channels, fmt.Sprintf("%d=%s", s.Channel.ID, s.Channel.Label))
	}

	pairs := [][]any{
		{"source", p.Source},
		{"fingerprint", p.Fingerprint},
		{"jiffy (s)", p.Jiffy},
		{"bin width (ticks)", int64(p.BinWidth)},
		{"bin width (s)", p.BinWidthSeconds},
		{"origin (ticks)", int64(p.Origin)},
		{"row width (s)", p.RowWidth},
		{"rows", len(p.Rows)},
		{"scale", p.Scale},
		{"ymax", p.YMax},
		{"channels", strings.Join(channels, ", ")},
		{"skipped", strings.Join(skipped, "; ")},
	}
	for i, pair := range pairs {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SummarySheet, cell, &pair); err != nil {
			return err
		}
	}
	return nil
}
