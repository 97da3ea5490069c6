package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/thealbion75/sport-community-api/internal/models"
)

// ClubRepository covers the intake-side club operations that fall outside the
// review store (registration and public lookups).
type ClubRepository interface {
	Create(ctx context.Context, club *models.Club) error
	GetByReferenceID(ctx context.Context, referenceID string) (models.Club, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type clubRepository struct {
	db *gorm.DB
}

// NewClubRepository constructs the club intake repository.
func NewClubRepository(db *gorm.DB) ClubRepository {
	return &clubRepository{db: db}
}

func (r *clubRepository) Create(ctx context.Context, club *models.Club) error {
	return r.db.WithContext(ctx).Create(club).Error
}

func (r *clubRepository) GetByReferenceID(ctx context.Context, referenceID string) (models.Club, error) {
	var club models.Club
	if err := r.db.WithContext(ctx).First(&club, "reference_id = ?", referenceID).Error; err != nil {
		return models.Club{}, err
	}

	return club, nil
}

func (r *clubRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Club{}).
		Where("LOWER(contact_email) = ?", strings.ToLower(strings.TrimSpace(email))).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
