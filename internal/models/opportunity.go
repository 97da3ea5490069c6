package models

import "time"

// VolunteerOpportunity is a role a club advertises to volunteers. Listings
// submitted by club contacts are held pending until approved.
type VolunteerOpportunity struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ClubID      uint         `gorm:"not null;index" json:"club_id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	Commitment  string       `gorm:"size:255" json:"commitment"`
	Status      ReviewStatus `gorm:"size:32;not null;default:pending;index" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ReviewID implements Reviewable.
func (o VolunteerOpportunity) ReviewID() uint { return o.ID }

// CurrentStatus implements Reviewable.
func (o VolunteerOpportunity) CurrentStatus() ReviewStatus { return o.Status }
