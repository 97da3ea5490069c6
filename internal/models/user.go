package models

import "time"

// User roles.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// User is a site account. Account status is governed by the review engine so
// that suspensions carry the same audit trail as application decisions.
type User struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"size:255;not null" json:"name"`
	Email     string       `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Role      string       `gorm:"size:32;not null;default:member" json:"role"`
	Status    ReviewStatus `gorm:"size:32;not null;default:active;index" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ReviewID implements Reviewable.
func (u User) ReviewID() uint { return u.ID }

// CurrentStatus implements Reviewable.
func (u User) CurrentStatus() ReviewStatus { return u.Status }

// IsAdmin reports whether the account may perform review decisions.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin && u.Status == StatusActive
}
