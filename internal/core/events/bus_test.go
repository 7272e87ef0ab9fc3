package events_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/frahmantamala/interview-dashboard/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestEvents(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Events Suite")
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

var _ = Describe("EventBus", func() {
	var (
		bus *events.EventBus
		ctx context.Context
	)

	BeforeEach(func() {
		bus = events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
		ctx = context.Background()
	})

	It("delivers synchronously to subscribers of the event type", func() {
		var got []string
		bus.Subscribe(events.EventTypeSessionCreated, func(_ context.Context, e events.Event) error {
			got = append(got, e.EventType())
			return nil
		})

		err := bus.PublishSync(ctx, events.NewSessionCreatedEvent("scope", 1, "emilys", "admin"))
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal([]string{events.EventTypeSessionCreated}))
	})

	It("returns the handler failure from PublishSync", func() {
		bus.Subscribe(events.EventTypeSessionCleared, func(context.Context, events.Event) error {
			return errors.New("boom")
		})

		err := bus.PublishSync(ctx, events.NewSessionClearedEvent("scope", events.ClearReasonLogout))
		Expect(err).To(MatchError(ContainSubstring("boom")))
	})

	It("ignores events nobody listens to", func() {
		Expect(bus.Publish(ctx, events.NewRoleAssignedEvent(4, "admin", 1))).To(Succeed())
	})

	It("delivers asynchronously even after the publishing context ends", func() {
		received := make(chan events.Event, 1)
		ctxErrs := make(chan error, 1)
		bus.Subscribe(events.EventTypeFeedbackSubmitted, func(hctx context.Context, e events.Event) error {
			ctxErrs <- hctx.Err()
			received <- e
			return nil
		})

		pctx, cancel := context.WithCancel(ctx)
		Expect(bus.Publish(pctx, events.NewFeedbackSubmittedEvent(10, 3, 1, 8))).To(Succeed())
		cancel()

		var e events.Event
		Eventually(received).Should(Receive(&e))
		Expect(e.(*events.FeedbackSubmittedEvent).Score).To(Equal(8))
		Expect(<-ctxErrs).NotTo(HaveOccurred())
	})
})

var _ = Describe("AuditHandler", func() {
	It("logs every registered event type", func() {
		out := &syncBuffer{}
		logger := slog.New(slog.NewTextHandler(out, nil))
		bus := events.NewEventBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
		events.NewAuditHandler(logger).RegisterEventHandlers(bus)

		Expect(bus.PublishSync(context.Background(), events.NewSessionCreatedEvent("s", 1, "emilys", "interviewer"))).To(Succeed())
		Expect(bus.PublishSync(context.Background(), events.NewRoleAssignedEvent(2, "coordinator", 1))).To(Succeed())

		Expect(out.String()).To(ContainSubstring("event_type=session.created"))
		Expect(out.String()).To(ContainSubstring("event_type=role.assigned"))
	})
})
