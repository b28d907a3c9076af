package fiber

import "photon-bins/internal/bins/core/domain"

type BinResponse struct {
	Start float64 `json:"start" example:"12.34"`
	Count int     `json:"count" example:"7"`
}

type SeriesResponse struct {
	Channel int           `json:"channel" example:"0"`
	Label   string        `json:"label" example:"donor"`
	Bins    []BinResponse `json:"bins"`
}

type RowResponse struct {
	Index  int              `json:"index"`
	Start  float64          `json:"start"`
	End    float64          `json:"end"`
	Series []SeriesResponse `json:"series"`
}

type SkippedChannelResponse struct {
	Channel int    `json:"channel"`
	Label   string `json:"label"`
	Reason  string `json:"reason" example:"channel has no events"`
}

type PlotResponse struct {
	ID              string                   `json:"id"`
	Source          string                   `json:"source" example:"run7.timetag"`
	Fingerprint     string                   `json:"fingerprint,omitempty"`
	Jiffy           float64                  `json:"jiffy" example:"1e-9"`
	BinWidthTicks   uint64                   `json:"bin_width_ticks" example:"10000000"`
	BinWidthSeconds float64                  `json:"bin_width_seconds" example:"0.01"`
	Origin          uint64                   `json:"origin"`
	RowWidth        float64                  `json:"row_width" example:"10"`
	Scale           string                   `json:"scale" example:"max"`
	YMax            float64                  `json:"ymax"`
	Rows            []RowResponse            `json:"rows"`
	Skipped         []SkippedChannelResponse `json:"skipped,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_query"`
	Message string `json:"message" example:"invalid scale \"loud\""`
}

func toPlotResponse(p *domain.Plot) PlotResponse {
	resp := PlotResponse{
		ID:              p.ID,
		Source:          p.Source,
		Fingerprint:     p.Fingerprint,
		Jiffy:           p.Jiffy,
		BinWidthTicks:   p.BinWidth,
		BinWidthSeconds: p.BinWidthSeconds,
		Origin:          p.Origin,
		RowWidth:        p.RowWidth,
		Scale:           p.Scale,
		YMax:            p.YMax,
		Rows:            make([]RowResponse, 0, len(p.Rows)),
	}
	for _, r := range p.Rows {
		row := RowResponse{
			Index:  r.Index,
			Start:  r.Window.Start,
			End:    r.Window.End,
			Series: make([]SeriesResponse, 0, len(r.Series)),
		}
		for _, s := range r.Series {
			sr := SeriesResponse{
				Channel: int(s.Channel.ID),
				Label:   s.Channel.Label,
				Bins:    make([]BinResponse, 0, len(s.Bins)),
			}
			for _, b := range s.Bins {
				sr.Bins = append(sr.Bins, BinResponse{Start: domain.Seconds(b.Start, p.Jiffy), Count: b.Count})
			}
			row.Series = append(row.Series, sr)
		}
		resp.Rows = append(resp.Rows, row)
	}
	for _, f := range p.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedChannelResponse{
			Channel: int(f.Channel.ID),
			Label:   f.Channel.Label,
			Reason:  f.Reason,
		})
	}
	return resp
}
