package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/thealbion75/sport-community-api/internal/dto"
	"github.com/thealbion75/sport-community-api/internal/service"
	"github.com/thealbion75/sport-community-api/internal/utils"
)

// ClubHandler exposes the public club surface: registration, the approved
// directory and volunteer opportunities.
type ClubHandler struct {
	service service.ClubService
	logger  zerolog.Logger
}

// NewClubHandler constructs the handler.
func NewClubHandler(service service.ClubService, logger zerolog.Logger) *ClubHandler {
	return &ClubHandler{
		service: service,
		logger:  logger.With().Str("component", "club_handler").Logger(),
	}
}

// Register attaches routes.
func (h *ClubHandler) Register(clubs fiber.Router, opportunities fiber.Router) {
	clubs.Post("", h.register)
	clubs.Get("", h.directory)
	opportunities.Post("", h.submitOpportunity)
	opportunities.Get("", h.openOpportunities)
}

func (h *ClubHandler) register(c *fiber.Ctx) error {
	var payload dto.ClubRegistrationRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	club, err := h.service.Register(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid registration payload")
		case errors.Is(err, service.ErrDuplicateClubEmail):
			return utils.SendError(c, fiber.StatusConflict, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to register club")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to register club")
		}
	}

	return utils.Created(c, club, "registration received and awaiting review")
}

func (h *ClubHandler) directory(c *fiber.Ctx) error {
	req, err := parseReviewListRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	clubs, meta, err := h.service.Directory(c.Context(), req)
	if err != nil {
		status, message := reviewErrorStatus(err)
		if status >= fiber.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to list club directory")
		}
		return utils.SendError(c, status, message)
	}

	return utils.OK(c, clubs, "club directory retrieved", fiber.Map{"pagination": meta})
}

func (h *ClubHandler) submitOpportunity(c *fiber.Ctx) error {
	var payload dto.OpportunityCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	opportunity, err := h.service.SubmitOpportunity(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, "invalid opportunity payload")
		case errors.Is(err, service.ErrReviewTargetNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "club not found")
		case errors.Is(err, service.ErrClubNotApproved):
			return utils.SendError(c, fiber.StatusUnprocessableEntity, err.Error())
		default:
			h.logger.Error().Err(err).Msg("failed to submit opportunity")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to submit opportunity")
		}
	}

	return utils.Created(c, opportunity, "opportunity submitted and awaiting review")
}

func (h *ClubHandler) openOpportunities(c *fiber.Ctx) error {
	req, err := parseReviewListRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	opportunities, meta, err := h.service.OpenOpportunities(c.Context(), req)
	if err != nil {
		status, message := reviewErrorStatus(err)
		if status >= fiber.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to list opportunities")
		}
		return utils.SendError(c, status, message)
	}

	return utils.OK(c, opportunities, "opportunities retrieved", fiber.Map{"pagination": meta})
}
