package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/thealbion75/sport-community-api/internal/models"
)

// ErrStatusConflict indicates the row's status changed between the caller's
// read and the conditional write, i.e. another administrator decided first.
var ErrStatusConflict = errors.New("status changed concurrently")

// ReviewListFilter narrows reviewable listings.
type ReviewListFilter struct {
	Status   models.ReviewStatus
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Scope    map[string]interface{}
	Page     int
	PageSize int
}

// ReviewStore persists one kind of reviewable entity. The status column is
// only ever written through ApplyTransition so that the one-audit-row-per-
// transition invariant holds in a single place.
type ReviewStore[T models.Reviewable] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id uint) (T, error)
	ApplyTransition(ctx context.Context, id uint, from, to models.ReviewStatus, entry *models.ReviewLog) (T, error)
	List(ctx context.Context, filter ReviewListFilter) ([]T, int64, error)
	CountByStatus(ctx context.Context, scope map[string]interface{}) (map[models.ReviewStatus]int64, error)
}

type reviewStore[T models.Reviewable] struct {
	db            *gorm.DB
	searchColumns []string
}

// NewReviewStore constructs a review store over the given table. The search
// columns are matched case-insensitively by the List free-text filter.
func NewReviewStore[T models.Reviewable](db *gorm.DB, searchColumns ...string) ReviewStore[T] {
	return &reviewStore[T]{db: db, searchColumns: searchColumns}
}

func (r *reviewStore[T]) Create(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

func (r *reviewStore[T]) GetByID(ctx context.Context, id uint) (T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		var zero T
		return zero, err
	}

	return entity, nil
}

// ApplyTransition performs the conditional status write and appends the audit
// entry in one transaction. The WHERE clause on the previously observed
// status is the optimistic-concurrency check: zero affected rows on an
// existing record means a concurrent writer won the race.
func (r *reviewStore[T]) ApplyTransition(ctx context.Context, id uint, from, to models.ReviewStatus, entry *models.ReviewLog) (T, error) {
	var updated T
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(new(T)).
			Where("id = ?", id).
			Where("status = ?", from).
			Updates(map[string]interface{}{
				"status":     to,
				"updated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return gorm.ErrRecordNotFound
			}
			return ErrStatusConflict
		}

		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		return tx.First(&updated, "id = ?", id).Error
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return updated, nil
}

func (r *reviewStore[T]) List(ctx context.Context, filter ReviewListFilter) ([]T, int64, error) {
	query := r.db.WithContext(ctx).Model(new(T))

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if filter.Search != "" && len(r.searchColumns) > 0 {
		like := "%" + strings.ToLower(filter.Search) + "%"
		clauses := make([]string, 0, len(r.searchColumns))
		args := make([]interface{}, 0, len(r.searchColumns))
		for _, column := range r.searchColumns {
			clauses = append(clauses, "LOWER("+column+") LIKE ?")
			args = append(args, like)
		}
		query = query.Where(strings.Join(clauses, " OR "), args...)
	}

	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}

	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}

	if len(filter.Scope) > 0 {
		query = query.Where(filter.Scope)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Secondary id ordering keeps pages stable when rows share a timestamp.
	query = query.Order("created_at DESC, id DESC")

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var entities []T
	if err := query.Find(&entities).Error; err != nil {
		return nil, 0, err
	}

	return entities, total, nil
}

func (r *reviewStore[T]) CountByStatus(ctx context.Context, scope map[string]interface{}) (map[models.ReviewStatus]int64, error) {
	type statusCount struct {
		Status models.ReviewStatus
		Count  int64
	}

	query := r.db.WithContext(ctx).Model(new(T)).
		Select("status, COUNT(*) AS count").
		Group("status")
	if len(scope) > 0 {
		query = query.Where(scope)
	}

	var rows []statusCount
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[models.ReviewStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
