package models

import "time"

// Club represents a club's self-registration. New registrations start pending
// and stay invisible to the public directory until an administrator approves
// them.
type Club struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	ReferenceID  string       `gorm:"size:64;uniqueIndex;not null" json:"reference_id"`
	Name         string       `gorm:"size:255;not null" json:"name"`
	ContactName  string       `gorm:"size:255;not null" json:"contact_name"`
	ContactEmail string       `gorm:"size:255;uniqueIndex;not null" json:"contact_email"`
	Description  string       `gorm:"type:text" json:"description"`
	Website      string       `gorm:"size:512" json:"website"`
	Status       ReviewStatus `gorm:"size:32;not null;default:pending;index" json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// ReviewID implements Reviewable.
func (c Club) ReviewID() uint { return c.ID }

// CurrentStatus implements Reviewable.
func (c Club) CurrentStatus() ReviewStatus { return c.Status }
