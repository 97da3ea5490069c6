package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/thealbion75/sport-community-api/internal/dto"
	"github.com/thealbion75/sport-community-api/internal/service"
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Params(key))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid " + key)
	}
	return uint(parsed), nil
}

// parseQueryTime accepts RFC3339 timestamps or bare dates. A bare date used
// as a range end covers the whole day.
func parseQueryTime(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}

	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return &parsed, nil
	}

	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, errors.New("invalid " + key)
	}
	if endOfDay {
		parsed = parsed.Add(24*time.Hour - time.Nanosecond)
	}

	return &parsed, nil
}

func parseReviewListRequest(c *fiber.Ctx) (dto.ReviewListRequest, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return dto.ReviewListRequest{}, errors.New("invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return dto.ReviewListRequest{}, errors.New("invalid page size")
	}
	if pageSize == 0 {
		pageSize = 20
	}

	dateFrom, err := parseQueryTime(c, "date_from", false)
	if err != nil {
		return dto.ReviewListRequest{}, err
	}
	dateTo, err := parseQueryTime(c, "date_to", true)
	if err != nil {
		return dto.ReviewListRequest{}, err
	}

	return dto.ReviewListRequest{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
		Search:   c.Query("search"),
		DateFrom: dateFrom,
		DateTo:   dateTo,
	}, nil
}

func reviewActorFromContext(c *fiber.Ctx) service.ReviewActor {
	actor := service.ReviewActor{}
	if v := c.Locals("user_id"); v != nil {
		if id, ok := v.(uint); ok {
			actor.ID = id
		}
	}
	if v := c.Locals("user_role"); v != nil {
		if role, ok := v.(string); ok {
			actor.Role = role
		}
	}
	return actor
}

// reviewErrorStatus maps engine errors to the HTTP status and client message
// for single-item decision endpoints.
func reviewErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrReviewTargetNotFound):
		return fiber.StatusNotFound, "target not found"
	case errors.Is(err, service.ErrReviewUnauthorized):
		return fiber.StatusForbidden, "not authorized to review"
	case errors.Is(err, service.ErrReviewConflict):
		return fiber.StatusConflict, "already decided by another administrator"
	case errors.Is(err, service.ErrInvalidReviewStatus):
		return fiber.StatusBadRequest, "invalid status"
	case errors.Is(err, service.ErrEmptyBulkRequest):
		return fiber.StatusBadRequest, "no target ids provided"
	case errors.Is(err, service.ErrInvalidPageSize):
		return fiber.StatusBadRequest, "invalid page size"
	default:
		return fiber.StatusServiceUnavailable, "store unavailable, retry later"
	}
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
