package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/thealbion75/sport-community-api/internal/dto"
	"github.com/thealbion75/sport-community-api/internal/service"
	"github.com/thealbion75/sport-community-api/internal/utils"
)

// AdminAuditHandler exposes the cross-kind audit trail to administrators.
type AdminAuditHandler struct {
	service service.ModerationService
	logger  zerolog.Logger
}

// NewAdminAuditHandler constructs the handler.
func NewAdminAuditHandler(service service.ModerationService, logger zerolog.Logger) *AdminAuditHandler {
	return &AdminAuditHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_audit_handler").Logger(),
	}
}

// Register attaches routes.
func (h *AdminAuditHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *AdminAuditHandler) list(c *fiber.Ctx) error {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid page size")
	}
	actorID, err := parseQueryInt(c, "actor_id")
	if err != nil || actorID < 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid actor id")
	}

	req := dto.ReviewLogListRequest{
		Page:       page,
		PageSize:   pageSize,
		ActorID:    uint(actorID),
		Action:     c.Query("action"),
		TargetType: c.Query("target_type"),
	}

	entries, meta, err := h.service.AuditTrail(c.Context(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list audit trail")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list audit trail")
	}

	return utils.OK(c, entries, "audit trail retrieved", fiber.Map{"pagination": meta})
}
