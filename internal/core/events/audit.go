package events

import (
	"context"
	"log/slog"
)

// AuditHandler writes every dashboard event to the log as a structured audit line.
type AuditHandler struct {
	logger *slog.Logger
}

func NewAuditHandler(logger *slog.Logger) *AuditHandler {
	return &AuditHandler{logger: logger.With("component", "audit")}
}

func (h *AuditHandler) Handle(ctx context.Context, event Event) error {
	h.logger.InfoContext(ctx, "audit",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"occurred_at", event.OccurredAt(),
		"data", event.Payload())
	return nil
}

// AuditedEventTypes lists every event the audit log records.
var AuditedEventTypes = []string{
	EventTypeSessionCreated,
	EventTypeSessionCleared,
	EventTypeFeedbackSubmitted,
	EventTypeRoleAssigned,
}

func (h *AuditHandler) RegisterEventHandlers(eventBus *EventBus) {
	for _, t := range AuditedEventTypes {
		eventBus.Subscribe(t, h.Handle)
	}
}
