package dto

import (
	"time"

	"github.com/thealbion75/sport-community-api/internal/models"
)

// ReportCreateRequest is the public content-report payload.
type ReportCreateRequest struct {
	ReporterID  uint   `json:"reporter_id" validate:"required,gt=0"`
	ContentType string `json:"content_type" validate:"required,max=64"`
	ContentID   uint   `json:"content_id" validate:"required,gt=0"`
	Reason      string `json:"reason" validate:"required,max=1000"`
}

// ReportResponse serializes a content report for the moderation queue.
type ReportResponse struct {
	ID          uint      `json:"id"`
	ReporterID  uint      `json:"reporter_id"`
	ContentType string    `json:"content_type"`
	ContentID   uint      `json:"content_id"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewReportResponse maps a content report model to its response shape.
func NewReportResponse(report models.ContentReport) ReportResponse {
	return ReportResponse{
		ID:          report.ID,
		ReporterID:  report.ReporterID,
		ContentType: report.ContentType,
		ContentID:   report.ContentID,
		Reason:      report.Reason,
		Status:      string(report.Status),
		CreatedAt:   report.CreatedAt,
		UpdatedAt:   report.UpdatedAt,
	}
}

// UserResponse serializes an account for the admin moderation surface.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUserResponse maps a user model to its response shape.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// ReviewLogListRequest defines the filters for the admin audit trail listing.
type ReviewLogListRequest struct {
	Page       int
	PageSize   int
	ActorID    uint
	Action     string
	TargetType string
}
