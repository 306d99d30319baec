package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/isaktapper/klaralyze/internal/api/dto"
	"github.com/isaktapper/klaralyze/internal/service"
	apperrors "github.com/isaktapper/klaralyze/pkg/util/errorutil"
)

// ImportHandler triggers snapshot imports.
type ImportHandler struct {
	service *service.ImportService
}

// NewImportHandler constructs handler.
func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{service: importService}
}

// Run POST /orgs/:slug/import.
func (h *ImportHandler) Run(c *fiber.Ctx) error {
	var req dto.ImportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}

	var startTime *time.Time
	if req.StartTime != nil && *req.StartTime != "" {
		parsed, err := parseStartTime(*req.StartTime)
		if err != nil {
			return apperrors.NewValidationError("invalid start_time", map[string]any{"start_time": *req.StartTime})
		}
		startTime = parsed
	}

	run, err := h.service.Run(c.UserContext(), c.Params("slug"), startTime)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ImportResponse{
		RunID:       run.ID,
		TicketCount: run.TicketCount,
		AgentCount:  run.AgentCount,
		StartedAt:   run.StartedAt,
		FinishedAt:  run.FinishedAt,
	}})
}
