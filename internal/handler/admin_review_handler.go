package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/thealbion75/sport-community-api/internal/dto"
	"github.com/thealbion75/sport-community-api/internal/models"
	"github.com/thealbion75/sport-community-api/internal/service"
	"github.com/thealbion75/sport-community-api/internal/utils"
)

// AdminReviewHandler exposes the review surface for one entity kind: the
// filtered queue, single and bulk decisions, per-target history and the
// status breakdown. Instantiated per kind with that kind's response mapper.
type AdminReviewHandler[T models.Reviewable, R any] struct {
	engine     *service.ReviewEngine[T]
	toResponse func(T) R
	scopeKeys  map[string]string
	validator  *validator.Validate
	logger     zerolog.Logger
}

// NewAdminReviewHandler constructs the handler. scopeKeys maps query
// parameters onto storage columns for scoped listings and stats (for
// opportunities, club_id).
func NewAdminReviewHandler[T models.Reviewable, R any](
	engine *service.ReviewEngine[T],
	toResponse func(T) R,
	scopeKeys map[string]string,
	validate *validator.Validate,
	logger zerolog.Logger,
) *AdminReviewHandler[T, R] {
	return &AdminReviewHandler[T, R]{
		engine:     engine,
		toResponse: toResponse,
		scopeKeys:  scopeKeys,
		validator:  validate,
		logger:     logger.With().Str("component", engine.Kind()+"_review_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminReviewHandler[T, R]) Register(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/stats", h.stats)
	router.Post("/bulk-status", h.bulkDecide)
	router.Get("/:id", h.get)
	router.Get("/:id/history", h.history)
	router.Patch("/:id/status", h.decide)
}

func (h *AdminReviewHandler[T, R]) list(c *fiber.Ctx) error {
	req, err := parseReviewListRequest(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	items, meta, err := h.engine.List(c.Context(), req, h.scopeFromQuery(c))
	if err != nil {
		status, message := reviewErrorStatus(err)
		if status >= fiber.StatusInternalServerError {
			h.logger.Error().Err(err).Msg("failed to list review queue")
		}
		return utils.SendError(c, status, message)
	}

	responses := make([]R, 0, len(items))
	for _, item := range items {
		responses = append(responses, h.toResponse(item))
	}

	return utils.OK(c, responses, h.engine.Kind()+" listing retrieved", fiber.Map{
		"pagination": meta,
		"filters": fiber.Map{
			"status": req.Status,
			"search": req.Search,
		},
	})
}

func (h *AdminReviewHandler[T, R]) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	entity, err := h.engine.Get(c.Context(), id)
	if err != nil {
		status, message := reviewErrorStatus(err)
		return utils.SendError(c, status, message)
	}

	return utils.OK(c, h.toResponse(entity), h.engine.Kind()+" retrieved", nil)
}

func (h *AdminReviewHandler[T, R]) decide(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.DecisionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid decision payload")
	}

	entity, err := h.engine.Transition(c.Context(), id, models.ReviewStatus(payload.Status), reviewActorFromContext(c), payload.Notes)
	if err != nil {
		status, message := reviewErrorStatus(err)
		if status >= fiber.StatusInternalServerError {
			h.logger.Error().Err(err).Uint("target_id", id).Msg("failed to apply decision")
		}
		return utils.SendError(c, status, message)
	}

	return utils.OK(c, h.toResponse(entity), "decision applied", nil)
}

func (h *AdminReviewHandler[T, R]) bulkDecide(c *fiber.Ctx) error {
	var payload dto.BulkDecisionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if err := h.validator.Struct(payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid bulk decision payload")
	}

	result, err := h.engine.BulkTransition(c.Context(), payload.IDs, models.ReviewStatus(payload.Status), reviewActorFromContext(c), payload.Notes)
	if err != nil {
		status, message := reviewErrorStatus(err)
		if status >= fiber.StatusInternalServerError {
			h.logger.Error().Err(err).Int("batch_size", len(payload.IDs)).Msg("bulk decision aborted")
		}
		return utils.SendError(c, status, message)
	}

	return utils.OK(c, result, "bulk decision processed", fiber.Map{
		"succeeded": len(result.Successful),
		"failed":    len(result.Failed),
	})
}

func (h *AdminReviewHandler[T, R]) history(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	entries, err := h.engine.History(c.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Uint("target_id", id).Msg("failed to load history")
		status, message := reviewErrorStatus(err)
		return utils.SendError(c, status, message)
	}

	return utils.OK(c, entries, "history retrieved", nil)
}

func (h *AdminReviewHandler[T, R]) stats(c *fiber.Ctx) error {
	counts, total, err := h.engine.StatusCounts(c.Context(), h.scopeFromQuery(c))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to compute stats")
		status, message := reviewErrorStatus(err)
		return utils.SendError(c, status, message)
	}

	breakdown := fiber.Map{"total": total}
	for status, count := range counts {
		breakdown[string(status)] = count
	}

	return utils.OK(c, breakdown, h.engine.Kind()+" stats computed", nil)
}

func (h *AdminReviewHandler[T, R]) scopeFromQuery(c *fiber.Ctx) map[string]interface{} {
	if len(h.scopeKeys) == 0 {
		return nil
	}

	scope := make(map[string]interface{})
	for query, column := range h.scopeKeys {
		if value, err := parseQueryInt(c, query); err == nil && value > 0 {
			scope[column] = value
		}
	}
	if len(scope) == 0 {
		return nil
	}

	return scope
}
