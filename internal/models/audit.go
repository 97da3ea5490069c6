package models

import (
	"time"

	"gorm.io/datatypes"
)

// ReviewLog is one immutable audit entry for one status transition. Rows are
// only ever appended; nothing in the codebase updates or deletes them.
type ReviewLog struct {
	ID         uint              `gorm:"primaryKey" json:"id"`
	TargetType string            `gorm:"size:64;not null;index:idx_review_logs_target" json:"target_type"`
	TargetID   uint              `gorm:"not null;index:idx_review_logs_target" json:"target_id"`
	ActorID    uint              `gorm:"not null;index" json:"actor_id"`
	Action     string            `gorm:"size:64;not null" json:"action"`
	Notes      string            `gorm:"type:text" json:"notes"`
	Metadata   datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	CreatedAt  time.Time         `json:"created_at"`
}
