package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/field-activity-service/internal/events"
	"github.com/spec-kit/field-activity-service/internal/observability"
)

// AuditService emits a structured audit trail for domain events and
// keeps per-event counters. It carries no request correctness; a lost
// event changes nothing a caller can observe.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventActivityLogged, a.handleActivityLogged)
	a.dispatcher.Subscribe(events.EventUserProvisioned, a.handleUserProvisioned)
}

func (a *AuditService) handleActivityLogged(ctx context.Context, event events.Event) error {
	a.metrics.RecordEvent(string(event.Type))
	payload, ok := event.Payload.(events.ActivityLoggedPayload)
	if !ok {
		a.logger.Warn("ActivityLogged with unexpected payload", zap.String("event_id", event.ID))
		return nil
	}
	a.logger.Info("ActivityLogged",
		zap.String("activity_id", payload.ActivityID),
		zap.String("activity_type", string(payload.ActivityType)),
		zap.String("username", payload.Username),
		zap.Bool("has_location", payload.HasLocation))
	return nil
}

func (a *AuditService) handleUserProvisioned(ctx context.Context, event events.Event) error {
	a.metrics.RecordEvent(string(event.Type))
	payload, ok := event.Payload.(events.UserProvisionedPayload)
	if !ok {
		a.logger.Warn("UserProvisioned with unexpected payload", zap.String("event_id", event.ID))
		return nil
	}
	a.logger.Info("UserProvisioned",
		zap.String("username", payload.Username),
		zap.String("role", string(payload.Role)))
	return nil
}
