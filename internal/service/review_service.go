package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/thealbion75/sport-community-api/internal/dto"
	"github.com/thealbion75/sport-community-api/internal/models"
	"github.com/thealbion75/sport-community-api/internal/observability"
	"github.com/thealbion75/sport-community-api/internal/repository"
)

// ErrReviewTargetNotFound indicates the target entity does not exist.
var ErrReviewTargetNotFound = errors.New("review target not found")

// ErrReviewUnauthorized indicates the actor is not an active administrator.
var ErrReviewUnauthorized = errors.New("actor is not authorized to review")

// ErrReviewConflict indicates another administrator decided the target first.
var ErrReviewConflict = errors.New("target was decided by another administrator")

// ErrInvalidReviewStatus indicates the requested status is outside the
// target kind's status set.
var ErrInvalidReviewStatus = errors.New("status is not valid for this target kind")

// ErrEmptyBulkRequest indicates a bulk decision carried no target ids.
var ErrEmptyBulkRequest = errors.New("bulk decision requires at least one target id")

// ErrInvalidPageSize indicates a non-positive page size.
var ErrInvalidPageSize = errors.New("page size must be positive")

const maxReviewPageSize = 100

// ReviewActor is the authenticated administrator performing a decision.
type ReviewActor struct {
	ID   uint
	Role string
}

// FailureKind maps an engine error to the stable per-item error label used in
// bulk results and client-facing summaries.
func FailureKind(err error) string {
	switch {
	case errors.Is(err, ErrReviewTargetNotFound):
		return "not_found"
	case errors.Is(err, ErrReviewUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrReviewConflict):
		return "conflict"
	case errors.Is(err, ErrInvalidReviewStatus), errors.Is(err, ErrEmptyBulkRequest), errors.Is(err, ErrInvalidPageSize):
		return "validation"
	default:
		return "store_unavailable"
	}
}

// ReviewEngine applies audited status transitions to one kind of reviewable
// entity. It is instantiated per entity kind with that kind's status set; all
// status writes in the codebase flow through Transition so that exactly one
// audit entry exists per transition.
type ReviewEngine[T models.Reviewable] struct {
	kind      string
	allowed   map[models.ReviewStatus]struct{}
	ordered   []models.ReviewStatus
	store     repository.ReviewStore[T]
	logs      repository.ReviewLogRepository
	users     repository.UserRepository
	notifier  Notifier
	cache     *redis.Client
	cacheTTL  time.Duration
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewReviewEngine constructs a review engine for one entity kind.
func NewReviewEngine[T models.Reviewable](
	kind string,
	statuses []models.ReviewStatus,
	store repository.ReviewStore[T],
	logs repository.ReviewLogRepository,
	users repository.UserRepository,
	notifier Notifier,
	cache *redis.Client,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) *ReviewEngine[T] {
	allowed := make(map[models.ReviewStatus]struct{}, len(statuses))
	for _, status := range statuses {
		allowed[status] = struct{}{}
	}

	if cacheTTL <= 0 {
		cacheTTL = 30 * time.Second
	}

	return &ReviewEngine[T]{
		kind:      kind,
		allowed:   allowed,
		ordered:   statuses,
		store:     store,
		logs:      logs,
		users:     users,
		notifier:  notifier,
		cache:     cache,
		cacheTTL:  cacheTTL,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger.With().Str("component", kind+"_review_engine").Logger(),
		now:       time.Now,
	}
}

// Kind returns the entity kind this engine governs.
func (e *ReviewEngine[T]) Kind() string { return e.kind }

// Get fetches one target.
func (e *ReviewEngine[T]) Get(ctx context.Context, id uint) (T, error) {
	entity, err := e.store.GetByID(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, ErrReviewTargetNotFound
		}
		return zero, fmt.Errorf("load %s %d: %w", e.kind, id, err)
	}

	return entity, nil
}

// Transition applies one status decision to one target. The status update and
// its audit entry commit atomically; a concurrent decision on the same target
// surfaces as ErrReviewConflict. Re-applying the current status succeeds and
// still appends an audit entry, so every decision is logged.
func (e *ReviewEngine[T]) Transition(ctx context.Context, id uint, status models.ReviewStatus, actor ReviewActor, notes string) (T, error) {
	tracer := otel.Tracer("github.com/thealbion75/sport-community-api/internal/service/review")
	ctx, span := tracer.Start(ctx, "review.transition")
	span.SetAttributes(
		attribute.String("review.kind", e.kind),
		attribute.Int64("review.target_id", int64(id)),
		attribute.String("review.status", string(status)),
		attribute.Int64("review.actor_id", int64(actor.ID)),
	)
	defer span.End()

	var zero T

	if _, ok := e.allowed[status]; !ok {
		span.SetStatus(codes.Error, "invalid_status")
		e.countDecision(status, "validation")
		return zero, fmt.Errorf("%w: %q", ErrInvalidReviewStatus, status)
	}

	if err := e.authorize(ctx, actor); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unauthorized")
		e.countDecision(status, FailureKind(err))
		return zero, err
	}

	updated, err := e.apply(ctx, id, status, actor, notes)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, FailureKind(err))
		e.countDecision(status, FailureKind(err))
		return zero, err
	}

	e.countDecision(status, "applied")
	return updated, nil
}

// BulkTransition applies the same decision to each target id in input order.
// Per-item failures are recorded without aborting the rest of the batch; the
// returned result partitions the de-duplicated input exactly. Only a failure
// that precedes the iteration (invalid status, authorization, store outage)
// aborts the whole call.
func (e *ReviewEngine[T]) BulkTransition(ctx context.Context, ids []uint, status models.ReviewStatus, actor ReviewActor, notes string) (dto.BulkReviewResult, error) {
	tracer := otel.Tracer("github.com/thealbion75/sport-community-api/internal/service/review")
	ctx, span := tracer.Start(ctx, "review.bulk_transition")
	span.SetAttributes(
		attribute.String("review.kind", e.kind),
		attribute.Int("review.batch_size", len(ids)),
		attribute.String("review.status", string(status)),
	)
	defer span.End()

	if _, ok := e.allowed[status]; !ok {
		span.SetStatus(codes.Error, "invalid_status")
		return dto.BulkReviewResult{}, fmt.Errorf("%w: %q", ErrInvalidReviewStatus, status)
	}

	targets := dedupIDs(ids)
	if len(targets) == 0 {
		span.SetStatus(codes.Error, "empty_batch")
		return dto.BulkReviewResult{}, ErrEmptyBulkRequest
	}

	if err := e.authorize(ctx, actor); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "unauthorized")
		return dto.BulkReviewResult{}, err
	}

	observability.ReviewBulkBatchSize().WithLabelValues(e.kind).Observe(float64(len(targets)))

	result := dto.BulkReviewResult{
		Successful: make([]uint, 0, len(targets)),
		Failed:     make([]dto.BulkItemFailure, 0),
	}

	for _, id := range targets {
		if _, err := e.apply(ctx, id, status, actor, notes); err != nil {
			kind := FailureKind(err)
			result.Failed = append(result.Failed, dto.BulkItemFailure{ID: id, Error: kind})
			e.countDecision(status, kind)
			e.logger.Warn().Err(err).Uint("target_id", id).Msg("bulk decision item failed")
			continue
		}
		result.Successful = append(result.Successful, id)
		e.countDecision(status, "applied")
	}

	span.SetAttributes(
		attribute.Int("review.succeeded", len(result.Successful)),
		attribute.Int("review.failed", len(result.Failed)),
	)

	return result, nil
}

// List returns one page of targets matching the filter, newest first. A page
// beyond the last returns an empty page with the correct totals.
func (e *ReviewEngine[T]) List(ctx context.Context, req dto.ReviewListRequest, scope map[string]interface{}) ([]T, dto.PaginationMeta, error) {
	if req.PageSize <= 0 {
		return nil, dto.PaginationMeta{}, ErrInvalidPageSize
	}

	pageSize := req.PageSize
	if pageSize > maxReviewPageSize {
		pageSize = maxReviewPageSize
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	filter := repository.ReviewListFilter{
		Search:   strings.TrimSpace(req.Search),
		DateFrom: req.DateFrom,
		DateTo:   req.DateTo,
		Scope:    scope,
		Page:     page,
		PageSize: pageSize,
	}

	if status := strings.TrimSpace(strings.ToLower(req.Status)); status != "" && status != "all" {
		parsed := models.ReviewStatus(status)
		if _, ok := e.allowed[parsed]; !ok {
			return nil, dto.PaginationMeta{}, fmt.Errorf("%w: %q", ErrInvalidReviewStatus, parsed)
		}
		filter.Status = parsed
	}

	entities, total, err := e.store.List(ctx, filter)
	if err != nil {
		return nil, dto.PaginationMeta{}, fmt.Errorf("list %s: %w", e.kind, err)
	}

	meta := dto.PaginationMeta{
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}

	return entities, meta, nil
}

// StatusCounts recomputes the per-status breakdown from the live entity set,
// optionally scoped (e.g. one club's opportunities). The result is cached for
// a short TTL; cache failures degrade to a direct recompute.
func (e *ReviewEngine[T]) StatusCounts(ctx context.Context, scope map[string]interface{}) (map[models.ReviewStatus]int64, int64, error) {
	cacheKey := e.statsCacheKey(scope)
	if e.cache != nil && cacheKey != "" {
		if cached, err := e.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var counts map[models.ReviewStatus]int64
			if err := json.Unmarshal([]byte(cached), &counts); err == nil {
				return counts, sumCounts(counts), nil
			}
		} else if err != nil && err != redis.Nil {
			e.logger.Warn().Err(err).Msg("failed to read stats cache")
		}
	}

	counts, err := e.store.CountByStatus(ctx, scope)
	if err != nil {
		return nil, 0, fmt.Errorf("count %s by status: %w", e.kind, err)
	}

	// Absent statuses still appear as zero so dashboards get a stable shape.
	for _, status := range e.ordered {
		if _, ok := counts[status]; !ok {
			counts[status] = 0
		}
	}

	if e.cache != nil && cacheKey != "" {
		if payload, err := json.Marshal(counts); err == nil {
			if err := e.cache.Set(ctx, cacheKey, payload, e.cacheTTL).Err(); err != nil {
				e.logger.Warn().Err(err).Msg("failed to write stats cache")
			}
		}
	}

	return counts, sumCounts(counts), nil
}

// History returns the full audit trail for one target, oldest first.
func (e *ReviewEngine[T]) History(ctx context.Context, id uint) ([]dto.ReviewLogResponse, error) {
	entries, err := e.logs.ListByTarget(ctx, e.kind, id)
	if err != nil {
		return nil, fmt.Errorf("load %s history: %w", e.kind, err)
	}

	responses := make([]dto.ReviewLogResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, dto.NewReviewLogResponse(entry))
	}

	return responses, nil
}

func (e *ReviewEngine[T]) authorize(ctx context.Context, actor ReviewActor) error {
	if actor.ID == 0 {
		return ErrReviewUnauthorized
	}

	user, err := e.users.GetByID(ctx, actor.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewUnauthorized
		}
		return fmt.Errorf("authorize actor %d: %w", actor.ID, err)
	}

	if !user.IsAdmin() {
		return ErrReviewUnauthorized
	}

	return nil
}

// apply performs one authorized transition: read the current status, then
// conditionally write the new one with its audit entry in one transaction.
func (e *ReviewEngine[T]) apply(ctx context.Context, id uint, status models.ReviewStatus, actor ReviewActor, notes string) (T, error) {
	var zero T

	current, err := e.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return zero, ErrReviewTargetNotFound
		}
		return zero, fmt.Errorf("load %s %d: %w", e.kind, id, err)
	}

	from := current.CurrentStatus()
	entry := models.ReviewLog{
		TargetType: e.kind,
		TargetID:   id,
		ActorID:    actor.ID,
		Action:     string(status),
		Notes:      e.sanitizer.Sanitize(strings.TrimSpace(notes)),
		Metadata: datatypes.JSONMap{
			"previous_status": string(from),
			"actor_role":      actor.Role,
		},
	}

	updated, err := e.store.ApplyTransition(ctx, id, from, status, &entry)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return zero, ErrReviewTargetNotFound
		case errors.Is(err, repository.ErrStatusConflict):
			return zero, ErrReviewConflict
		default:
			return zero, fmt.Errorf("apply %s transition: %w", e.kind, err)
		}
	}

	if e.notifier != nil {
		e.notifier.DecisionApplied(ctx, ReviewEvent{
			TargetType:     e.kind,
			TargetID:       id,
			Action:         string(status),
			PreviousStatus: string(from),
			ActorID:        actor.ID,
			DecidedAt:      e.now(),
		})
	}

	return updated, nil
}

func (e *ReviewEngine[T]) countDecision(status models.ReviewStatus, outcome string) {
	observability.ReviewDecisions().WithLabelValues(e.kind, string(status), outcome).Inc()
}

func (e *ReviewEngine[T]) statsCacheKey(scope map[string]interface{}) string {
	if e.cache == nil {
		return ""
	}

	if len(scope) == 0 {
		return fmt.Sprintf("review:stats:v1:%s", e.kind)
	}

	keys := make([]string, 0, len(scope))
	for key, value := range scope {
		keys = append(keys, fmt.Sprintf("%s=%v", key, value))
	}
	sort.Strings(keys)

	return fmt.Sprintf("review:stats:v1:%s:%s", e.kind, strings.Join(keys, ","))
}

func sumCounts(counts map[models.ReviewStatus]int64) int64 {
	var total int64
	for _, count := range counts {
		total += count
	}
	return total
}

func dedupIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	result := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
