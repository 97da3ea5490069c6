package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/thealbion75/sport-community-api/internal/dto"
	"github.com/thealbion75/sport-community-api/internal/models"
	"github.com/thealbion75/sport-community-api/internal/repository"
)

// ModerationService covers report intake and the admin audit trail listing.
// Report decisions and user suspensions go through the review engines.
type ModerationService interface {
	SubmitReport(ctx context.Context, req dto.ReportCreateRequest) (dto.ReportResponse, error)
	AuditTrail(ctx context.Context, req dto.ReviewLogListRequest) ([]dto.ReviewLogResponse, dto.PaginationMeta, error)
}

type moderationService struct {
	reports   repository.ReviewStore[models.ContentReport]
	logs      repository.ReviewLogRepository
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
}

// NewModerationService constructs the moderation intake service.
func NewModerationService(
	reports repository.ReviewStore[models.ContentReport],
	logs repository.ReviewLogRepository,
	validate *validator.Validate,
	logger zerolog.Logger,
) ModerationService {
	return &moderationService{
		reports:   reports,
		logs:      logs,
		validator: validate,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", "moderation_service").Logger(),
	}
}

func (s *moderationService) SubmitReport(ctx context.Context, req dto.ReportCreateRequest) (dto.ReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.ReportResponse{}, err
	}

	report := models.ContentReport{
		ReporterID:  req.ReporterID,
		ContentType: strings.ToLower(strings.TrimSpace(req.ContentType)),
		ContentID:   req.ContentID,
		Reason:      s.sanitizer.Sanitize(strings.TrimSpace(req.Reason)),
		Status:      models.StatusPending,
	}

	if err := s.reports.Create(ctx, &report); err != nil {
		s.logger.Error().Err(err).Msg("failed to create content report")
		return dto.ReportResponse{}, fmt.Errorf("create content report: %w", err)
	}

	return dto.NewReportResponse(report), nil
}

func (s *moderationService) AuditTrail(ctx context.Context, req dto.ReviewLogListRequest) ([]dto.ReviewLogResponse, dto.PaginationMeta, error) {
	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > maxReviewPageSize {
		pageSize = maxReviewPageSize
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	filter := repository.ReviewLogFilter{
		Action:     strings.TrimSpace(strings.ToLower(req.Action)),
		TargetType: strings.TrimSpace(strings.ToLower(req.TargetType)),
		Page:       page,
		PageSize:   pageSize,
	}
	if req.ActorID > 0 {
		actorID := req.ActorID
		filter.ActorID = &actorID
	}

	entries, total, err := s.logs.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, fmt.Errorf("list audit trail: %w", err)
	}

	items := make([]dto.ReviewLogResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, dto.NewReviewLogResponse(entry))
	}

	meta := dto.PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}

	return items, meta, nil
}
