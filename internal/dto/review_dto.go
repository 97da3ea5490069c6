package dto

import (
	"time"

	"github.com/thealbion75/sport-community-api/internal/models"
)

// ReviewListRequest defines the filters accepted by review listings.
type ReviewListRequest struct {
	Page     int
	PageSize int
	Status   string
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
}

// DecisionRequest carries one status decision for one target.
type DecisionRequest struct {
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// BulkDecisionRequest applies the same decision to many targets.
type BulkDecisionRequest struct {
	IDs    []uint `json:"ids" validate:"required,min=1,dive,gt=0"`
	Status string `json:"status" validate:"required"`
	Notes  string `json:"notes" validate:"max=2000"`
}

// BulkItemFailure records why one target in a batch was not transitioned.
type BulkItemFailure struct {
	ID    uint   `json:"id"`
	Error string `json:"error"`
}

// BulkReviewResult partitions a batch into succeeded and failed targets. The
// two sets are disjoint and together cover every requested id exactly once.
type BulkReviewResult struct {
	Successful []uint            `json:"successful"`
	Failed     []BulkItemFailure `json:"failed"`
}

// ReviewLogResponse serializes one audit entry.
type ReviewLogResponse struct {
	ID         uint                   `json:"id"`
	TargetType string                 `json:"target_type"`
	TargetID   uint                   `json:"target_id"`
	ActorID    uint                   `json:"actor_id"`
	Action     string                 `json:"action"`
	Notes      string                 `json:"notes,omitempty"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
}

// NewReviewLogResponse maps an audit entry model to its response shape.
func NewReviewLogResponse(entry models.ReviewLog) ReviewLogResponse {
	return ReviewLogResponse{
		ID:         entry.ID,
		TargetType: entry.TargetType,
		TargetID:   entry.TargetID,
		ActorID:    entry.ActorID,
		Action:     entry.Action,
		Notes:      entry.Notes,
		Metadata:   map[string]interface{}(entry.Metadata),
		CreatedAt:  entry.CreatedAt,
	}
}
