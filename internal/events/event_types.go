package events

import (
	"time"

	"github.com/spec-kit/field-activity-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventActivityLogged  EventType = "activity_logged"
	EventUserProvisioned EventType = "user_provisioned"
)

// Event represents a domain event emitted by services. Delivery is
// best-effort; no request correctness depends on it.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ActivityLoggedPayload payload.
type ActivityLoggedPayload struct {
	ActivityID   string              `json:"activity_id"`
	ActivityType domain.ActivityType `json:"activity_type"`
	Username     string              `json:"username"`
	HasLocation  bool                `json:"has_location"`
}

// UserProvisionedPayload payload.
type UserProvisionedPayload struct {
	Username string      `json:"username"`
	Role     domain.Role `json:"role"`
}
