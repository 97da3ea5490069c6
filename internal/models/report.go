package models

import "time"

// ContentReport is a member's report against a piece of user-generated
// content. Pending reports form the moderation queue; approving a report marks
// it actioned, rejecting dismisses it.
type ContentReport struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ReporterID  uint         `gorm:"not null;index" json:"reporter_id"`
	ContentType string       `gorm:"size:64;not null" json:"content_type"`
	ContentID   uint         `gorm:"not null;index" json:"content_id"`
	Reason      string       `gorm:"size:1000;not null" json:"reason"`
	Status      ReviewStatus `gorm:"size:32;not null;default:pending;index" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ReviewID implements Reviewable.
func (r ContentReport) ReviewID() uint { return r.ID }

// CurrentStatus implements Reviewable.
func (r ContentReport) CurrentStatus() ReviewStatus { return r.Status }
