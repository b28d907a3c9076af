package fiber

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strconv"

	"photon-bins/internal/bins/adapters/postgres"
	"photon-bins/internal/bins/core/domain"
	"photon-bins/internal/bins/core/ports"
	"photon-bins/internal/bins/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type BuildPlotUseCase interface {
	Execute(ctx context.Context, in usecase.BuildPlotInput) (*domain.Plot, error)
}

// RunDefaults fill the query parameters a request leaves out.
type RunDefaults struct {
	BinWidth float64
	Rows     int
	RowWidth float64
	Scale    string
}

type RunPlotHandler struct {
	runs     ports.SourceOpenerPort
	uc       BuildPlotUseCase
	renderer ports.ChartRendererPort
	defaults RunDefaults
}

func NewRunPlotHandler(runs ports.SourceOpenerPort, uc BuildPlotUseCase, renderer ports.ChartRendererPort, defaults RunDefaults) *RunPlotHandler {
	return &RunPlotHandler{runs: runs, uc: uc, renderer: renderer, defaults: defaults}
}

// GetRows godoc
// @Summary Binned rows of a stored run
// @Description Bins the stored ticks of a run and returns the row layout
// @Tags Runs
// @Produce json
// @Param run path string true "Run id"
// @Param bin_width query number false "Bin width in seconds"
// @Param rows query int false "Number of rows"
// @Param row_width query number false "Row width in seconds"
// @Param ymax query string false "max | avg | <n> | <n>/sec | <n>/bin"
// @Param start query number false "Plot start in seconds"
// @Param channel query []string false "CH or CH=LABEL, repeatable" collectionFormat(multi)
// @Success 200 {object} PlotResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /runs/{run}/rows [get]
func (h *RunPlotHandler) GetRows(c *fiber.Ctx) error {
	p, err := h.build(c)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toPlotResponse(p))
}

// GetPlot godoc
// @Summary Rendered plot of a stored run
// @Description Same parameters as /runs/{run}/rows, rendered as SVG
// @Tags Runs
// @Produce image/svg+xml
// @Param run path string true "Run id"
// @Param bin_width query number false "Bin width in seconds"
// @Param rows query int false "Number of rows"
// @Param row_width query number false "Row width in seconds"
// @Param ymax query string false "max | avg | <n> | <n>/sec | <n>/bin"
// @Param start query number false "Plot start in seconds"
// @Param channel query []string false "CH or CH=LABEL, repeatable" collectionFormat(multi)
// @Success 200 {string} string "SVG document"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /runs/{run}/plot [get]
func (h *RunPlotHandler) GetPlot(c *fiber.Ctx) error {
	p, err := h.build(c)
	if err != nil {
		return h.writeError(c, err)
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

// queryError marks malformed query parameters.
type queryError struct{ msg string }

func (e *queryError) Error() string { return e.msg }

func (h *RunPlotHandler) build(c *fiber.Ctx) (*domain.Plot, error) {
	in, err := h.parseQuery(c)
	if err != nil {
		return nil, err
	}

	src, err := h.runs.Open(c.UserContext(), postgres.RunPrefix+c.Params("run"))
	if err != nil {
		return nil, err
	}
	in.Source = src
	return h.uc.Execute(c.UserContext(), in)
}

func (h *RunPlotHandler) parseQuery(c *fiber.Ctx) (usecase.BuildPlotInput, error) {
	in := usecase.BuildPlotInput{
		BinWidth: h.defaults.BinWidth,
		Rows:     h.defaults.Rows,
		RowWidth: h.defaults.RowWidth,
		Scale:    c.Query("ymax", h.defaults.Scale),
	}

	if v := c.Query("bin_width"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, &queryError{"invalid 'bin_width' parameter"}
		}
		in.BinWidth = f
	}
	if v := c.Query("rows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, &queryError{"invalid 'rows' parameter"}
		}
		in.Rows = n
	}
	if v := c.Query("row_width"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, &queryError{"invalid 'row_width' parameter"}
		}
		in.RowWidth = f
	}
	if v := c.Query("start"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return in, &queryError{"invalid 'start' parameter"}
		}
		in.Start = &f
	}

	var specs []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("channel") {
		specs = append(specs, string(raw))
	}
	if len(specs) > 0 {
		set, err := domain.ParseChannelSet(specs)
		if err != nil {
			return in, &queryError{err.Error()}
		}
		in.Channels = set
	}
	return in, nil
}

func (h *RunPlotHandler) writeError(c *fiber.Ctx, err error) error {
	var (
		qErr     *queryError
		noUsable *usecase.NoUsableChannelError
	)
	switch {
	case errors.As(err, &qErr), usecase.IsConfigError(err):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
		})
	case errors.Is(err, postgres.ErrRunNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error:   "run_not_found",
			Message: err.Error(),
		})
	case errors.As(err, &noUsable), errors.Is(err, usecase.ErrEmptyScaleWindow):
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   "no_data",
			Message: err.Error(),
		})
	default:
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
