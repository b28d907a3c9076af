package fiber

import (
	"bytes"
	"html/template"
	"net/http"

	"photon-bins/internal/bins/core/ports"

	"github.com/gofiber/fiber/v2"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>photon bins</title>
<style>body{font-family:sans-serif;margin:1em}figure{margin:0 0 2em 0}img{max-width:100%}</style>
</head>
<body>
{{- range .}}
<figure>
<figcaption>{{.Input}}{{if .Plot.Skipped}} (skipped:{{range .Plot.Skipped}} {{.Channel.ID}} {{.Channel.Label}}: {{.Reason}};{{end}}){{end}}
 <a href="/plots/{{.Plot.ID}}/rows">rows</a></figcaption>
<img src="/plots/{{.Plot.ID}}" alt="{{.Plot.Source}}">
</figure>
{{- else}}
<p>no plots</p>
{{- end}}
</body>
</html>
`))

// ViewerHandler serves the plots of a batch held in a PlotStore.
type ViewerHandler struct {
	store    *PlotStore
	renderer ports.ChartRendererPort
}

// NewViewerHandler serves images with renderer, which should produce SVG.
func NewViewerHandler(store *PlotStore, renderer ports.ChartRendererPort) *ViewerHandler {
	return &ViewerHandler{store: store, renderer: renderer}
}

func (h *ViewerHandler) Register(app fiber.Router) {
	app.Get("/", h.Index)
	app.Get("/plots/:id", h.GetPlot)
	app.Get("/plots/:id/rows", h.GetRows)
}

func (h *ViewerHandler) Index(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, h.store.List()); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
	c.Type("html", "utf-8")
	return c.Status(http.StatusOK).Send(buf.Bytes())
}

// GetPlot godoc
// @Summary Rendered plot
// @Description Returns one plot of the batch as SVG
// @Tags Viewer
// @Produce image/svg+xml
// @Param id path string true "Plot id"
// @Success 200 {string} string "SVG document"
// @Success 304 {string} string "Not modified"
// @Failure 404 {object} ErrorResponse
// @Router /plots/{id} [get]
func (h *ViewerHandler) GetPlot(c *fiber.Ctx) error {
	p, ok := h.store.Get(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "unknown plot",
		})
	}

	if p.Fingerprint != "" {
		etag := `"` + p.Fingerprint + `"`
		c.Set(fiber.HeaderETag, etag)
		if c.Get(fiber.HeaderIfNoneMatch) == etag {
			return c.SendStatus(http.StatusNotModified)
		}
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(c.UserContext(), p, &buf); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error:   "render_failed",
			Message: err.Error(),
		})
	}
	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Status(http.StatusOK).Send(buf.Bytes())
}

// GetRows godoc
// @Summary Plot rows
// @Description Returns the row layout of one plot of the batch
// @Tags Viewer
// @Produce json
// @Param id path string true "Plot id"
// @Success 200 {object} PlotResponse
// @Failure 404 {object} ErrorResponse
// @Router /plots/{id}/rows [get]
func (h *ViewerHandler) GetRows(c *fiber.Ctx) error {
	p, ok := h.store.Get(c.Params("id"))
	if !ok {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "not_found",
			Message: "unknown plot",
		})
	}
	return c.Status(http.StatusOK).JSON(toPlotResponse(p))
}
