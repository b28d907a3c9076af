package fiber

import (
	"context"
	"errors"
	"net/http"

	"photon-bins/internal/timetags/core/usecase"

	"github.com/gofiber/fiber/v2"
)

type StoreRunUseCase interface {
	Execute(ctx context.Context, in usecase.StoreRunInput) (usecase.StoreRunResult, error)
}

type RunHandler struct {
	storeUC StoreRunUseCase
}

func NewRunHandler(storeUC StoreRunUseCase) *RunHandler {
	return &RunHandler{storeUC: storeUC}
}

// CreateRun godoc
// @Summary Store a run
// @Description Stores the ticks of a recorded run; a known run_id is not stored again
// @Tags Runs
// @Accept json
// @Produce json
// @Param request body CreateRunRequest true "Run payload"
// @Success 201 {object} CreateRunResponse
// @Success 200 {object} CreateRunResponse "Duplicate run"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /runs [post]
func (h *RunHandler) CreateRun(c *fiber.Ctx) error {
	var req CreateRunRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid_json",
		})
	}

	input := usecase.StoreRunInput{
		RunID:    req.RunID,
		Jiffy:    req.Jiffy,
		Source:   req.Source,
		Channels: make([]usecase.ChannelInput, 0, len(req.Channels)),
	}
	for _, ch := range req.Channels {
		input.Channels = append(input.Channels, usecase.ChannelInput{Channel: ch.Channel, Ticks: ch.Ticks})
	}

	res, err := h.storeUC.Execute(c.UserContext(), input)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidRun),
			errors.Is(err, usecase.ErrEmptyRun),
			errors.Is(err, usecase.ErrTicksNotSorted):
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_run",
				Message: err.Error(),
			})
		default:
			return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
				Error: "internal_server_error",
			})
		}
	}

	resp := CreateRunResponse{
		RunID:  res.RunID,
		Events: res.Events,
	}
	if !res.Created {
		resp.Status = "duplicate"
		return c.Status(http.StatusOK).JSON(resp)
	}

	resp.Status = "created"
	return c.Status(http.StatusCreated).JSON(resp)
}
