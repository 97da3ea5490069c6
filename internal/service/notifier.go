package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
)

// ReviewEvent describes one applied decision for downstream consumers
// (mail-out jobs, dashboards). Delivery is best-effort.
type ReviewEvent struct {
	TargetType     string    `json:"target_type"`
	TargetID       uint      `json:"target_id"`
	Action         string    `json:"action"`
	PreviousStatus string    `json:"previous_status"`
	ActorID        uint      `json:"actor_id"`
	DecidedAt      time.Time `json:"decided_at"`
}

// Notifier publishes decision events. Implementations must never fail the
// transition that triggered them.
type Notifier interface {
	DecisionApplied(ctx context.Context, event ReviewEvent)
}

type natsNotifier struct {
	conn          *nats.Conn
	subjectPrefix string
	logger        zerolog.Logger
}

// NewNATSNotifier builds a notifier that publishes decision events to
// "<prefix>.<target_type>.<action>". A nil connection yields a no-op notifier.
func NewNATSNotifier(conn *nats.Conn, subjectPrefix string, logger zerolog.Logger) Notifier {
	if subjectPrefix == "" {
		subjectPrefix = "review.decisions"
	}

	return &natsNotifier{
		conn:          conn,
		subjectPrefix: subjectPrefix,
		logger:        logger.With().Str("component", "review_notifier").Logger(),
	}
}

func (n *natsNotifier) DecisionApplied(_ context.Context, event ReviewEvent) {
	if n.conn == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		n.logger.Warn().Err(err).Msg("failed to encode decision event")
		return
	}

	subject := n.subjectPrefix + "." + event.TargetType + "." + event.Action
	if err := n.conn.Publish(subject, payload); err != nil {
		n.logger.Warn().Err(err).Str("subject", subject).Msg("failed to publish decision event")
	}
}
