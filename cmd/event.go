package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/interview-dashboard/internal/core/events"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/frahmantamala/interview-dashboard/pkg/logger"
	"github.com/spf13/cobra"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Inspect the audit events",
	Long:  `List the audited event types or publish a sample one to check the audit log output`,
}

var listEventsCmd = &cobra.Command{
	Use:   "list",
	Short: "List audited event types",
	Run: func(cmd *cobra.Command, args []string) {
		for _, t := range events.AuditedEventTypes {
			fmt.Fprintln(cmd.OutOrStdout(), t)
		}
	},
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a sample event through the audit handler",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(cmd.Context(), args[0])
	},
}

var eventUserID int64

func sampleEvent(eventType string, userID int64) (events.Event, error) {
	switch eventType {
	case events.EventTypeSessionCreated:
		return events.NewSessionCreatedEvent("cli", userID, "cli-user", string(rbac.DefaultRole)), nil
	case events.EventTypeSessionCleared:
		return events.NewSessionClearedEvent("cli", events.ClearReasonLogout), nil
	case events.EventTypeFeedbackSubmitted:
		return events.NewFeedbackSubmittedEvent(0, userID, 0, 8), nil
	case events.EventTypeRoleAssigned:
		return events.NewRoleAssignedEvent(userID, string(rbac.RoleCoordinator), 0), nil
	default:
		return nil, fmt.Errorf("unknown event type %q, expected one of %v", eventType, events.AuditedEventTypes)
	}
}

func publishSampleEvent(ctx context.Context, eventType string) error {
	event, err := sampleEvent(eventType, eventUserID)
	if err != nil {
		return err
	}

	lg := logger.LoggerWrapper()
	bus := events.NewEventBus(lg)
	events.NewAuditHandler(lg).RegisterEventHandlers(bus)

	lg.Info("publishing sample event", "event_type", eventType, "event_id", event.EventID())
	return bus.PublishSync(ctx, event)
}

func init() {
	publishEventCmd.Flags().Int64Var(&eventUserID, "user-id", 1, "user id carried by the sample event")

	eventCmd.AddCommand(listEventsCmd)
	eventCmd.AddCommand(publishEventCmd)
}
