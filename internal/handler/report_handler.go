package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/thealbion75/sport-community-api/internal/dto"
	"github.com/thealbion75/sport-community-api/internal/service"
	"github.com/thealbion75/sport-community-api/internal/utils"
)

// ReportHandler exposes the public content-report endpoint.
type ReportHandler struct {
	service service.ModerationService
	logger  zerolog.Logger
}

// NewReportHandler constructs the handler.
func NewReportHandler(service service.ModerationService, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{
		service: service,
		logger:  logger.With().Str("component", "report_handler").Logger(),
	}
}

// Register attaches routes.
func (h *ReportHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
}

func (h *ReportHandler) submit(c *fiber.Ctx) error {
	var payload dto.ReportCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	report, err := h.service.SubmitReport(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, "invalid report payload")
		}
		h.logger.Error().Err(err).Msg("failed to submit report")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit report")
	}

	return utils.Created(c, report, "report submitted for moderation")
}
