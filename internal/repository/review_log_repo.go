package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/thealbion75/sport-community-api/internal/models"
)

// ReviewLogFilter narrows audit trail queries.
type ReviewLogFilter struct {
	ActorID    *uint
	Action     string
	TargetType string
	Page       int
	PageSize   int
}

// ReviewLogRepository persists the append-only audit trail. There is
// deliberately no update or delete method.
type ReviewLogRepository interface {
	Append(ctx context.Context, entry *models.ReviewLog) error
	ListByTarget(ctx context.Context, targetType string, targetID uint) ([]models.ReviewLog, error)
	List(ctx context.Context, filter ReviewLogFilter) ([]models.ReviewLog, int64, error)
}

type reviewLogRepository struct {
	db *gorm.DB
}

// NewReviewLogRepository constructs the audit trail repository.
func NewReviewLogRepository(db *gorm.DB) ReviewLogRepository {
	return &reviewLogRepository{db: db}
}

func (r *reviewLogRepository) Append(ctx context.Context, entry *models.ReviewLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *reviewLogRepository) ListByTarget(ctx context.Context, targetType string, targetID uint) ([]models.ReviewLog, error) {
	var entries []models.ReviewLog
	err := r.db.WithContext(ctx).
		Where("target_type = ?", targetType).
		Where("target_id = ?", targetID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *reviewLogRepository) List(ctx context.Context, filter ReviewLogFilter) ([]models.ReviewLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ReviewLog{})

	if filter.ActorID != nil {
		query = query.Where("actor_id = ?", *filter.ActorID)
	}

	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}

	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	var entries []models.ReviewLog
	if err := query.Order("created_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
