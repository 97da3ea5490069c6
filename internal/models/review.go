package models

// ReviewStatus is the lifecycle status of a record governed by the review
// engine. Each entity kind admits a fixed subset of these values; the engine
// rejects anything outside that subset.
type ReviewStatus string

const (
	// Application lifecycle.
	StatusPending  ReviewStatus = "pending"
	StatusApproved ReviewStatus = "approved"
	StatusRejected ReviewStatus = "rejected"

	// Account lifecycle.
	StatusActive    ReviewStatus = "active"
	StatusSuspended ReviewStatus = "suspended"
)

// ApplicationStatuses is the status set for club applications, volunteer
// opportunities and content reports. All three states are mutually reachable;
// the admin UI, not the engine, decides which transitions to offer.
var ApplicationStatuses = []ReviewStatus{StatusPending, StatusApproved, StatusRejected}

// AccountStatuses is the status set for user accounts under moderation.
var AccountStatuses = []ReviewStatus{StatusActive, StatusSuspended}

// Reviewable is implemented by every model whose status the review engine
// owns.
type Reviewable interface {
	ReviewID() uint
	CurrentStatus() ReviewStatus
}
