package dto

import (
	"time"

	"github.com/thealbion75/sport-community-api/internal/models"
)

// ClubRegistrationRequest is the public self-registration payload.
type ClubRegistrationRequest struct {
	Name         string `json:"name" validate:"required,max=255"`
	ContactName  string `json:"contact_name" validate:"required,max=255"`
	ContactEmail string `json:"contact_email" validate:"required,email"`
	Description  string `json:"description" validate:"max=4000"`
	Website      string `json:"website" validate:"omitempty,url,max=512"`
}

// ClubResponse serializes a club for both the public directory and the admin
// review queue.
type ClubResponse struct {
	ID           uint      `json:"id"`
	ReferenceID  string    `json:"reference_id"`
	Name         string    `json:"name"`
	ContactName  string    `json:"contact_name"`
	ContactEmail string    `json:"contact_email"`
	Description  string    `json:"description"`
	Website      string    `json:"website,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewClubResponse maps a club model to its response shape.
func NewClubResponse(club models.Club) ClubResponse {
	return ClubResponse{
		ID:           club.ID,
		ReferenceID:  club.ReferenceID,
		Name:         club.Name,
		ContactName:  club.ContactName,
		ContactEmail: club.ContactEmail,
		Description:  club.Description,
		Website:      club.Website,
		Status:       string(club.Status),
		CreatedAt:    club.CreatedAt,
		UpdatedAt:    club.UpdatedAt,
	}
}

// OpportunityCreateRequest is the payload a club contact submits to advertise
// a volunteer role.
type OpportunityCreateRequest struct {
	ClubID      uint   `json:"club_id" validate:"required,gt=0"`
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
	Commitment  string `json:"commitment" validate:"max=255"`
}

// OpportunityResponse serializes a volunteer opportunity.
type OpportunityResponse struct {
	ID          uint      `json:"id"`
	ClubID      uint      `json:"club_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Commitment  string    `json:"commitment,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewOpportunityResponse maps an opportunity model to its response shape.
func NewOpportunityResponse(opportunity models.VolunteerOpportunity) OpportunityResponse {
	return OpportunityResponse{
		ID:          opportunity.ID,
		ClubID:      opportunity.ClubID,
		Title:       opportunity.Title,
		Description: opportunity.Description,
		Commitment:  opportunity.Commitment,
		Status:      string(opportunity.Status),
		CreatedAt:   opportunity.CreatedAt,
		UpdatedAt:   opportunity.UpdatedAt,
	}
}
