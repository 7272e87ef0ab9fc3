package session_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/frahmantamala/interview-dashboard/internal/session"
	"github.com/frahmantamala/interview-dashboard/internal/storage/memory"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestSession(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Session Suite")
}

// failingRepository fails every call, like a full or unavailable store.
type failingRepository struct {
	err error
}

func (f *failingRepository) Get(context.Context, string, string) (string, bool, error) {
	return "", false, f.err
}

func (f *failingRepository) Set(context.Context, string, string, string) error {
	return f.err
}

func (f *failingRepository) Delete(context.Context, string, string) error {
	return f.err
}

var _ = Describe("Store", func() {
	var (
		ctx     context.Context
		slogger *slog.Logger
		sample  session.Session
	)

	BeforeEach(func() {
		ctx = context.Background()
		slogger = slog.New(slog.NewTextHandler(io.Discard, nil))
		sample = session.Session{
			UserID:    1,
			Username:  "emilys",
			Email:     "emily.johnson@x.dummyjson.com",
			Role:      rbac.RoleInterviewer,
			Token:     "tok",
			ExpiresAt: 1_700_000_000_000,
		}
	})

	It("round-trips a saved session", func() {
		store := session.NewStore(memory.NewStorageRepository(), slogger)
		store.Save(ctx, "scope-1", sample)

		loaded := store.Load(ctx, "scope-1")
		Expect(loaded).NotTo(BeNil())
		Expect(*loaded).To(Equal(sample))
	})

	It("returns nil for an empty scope", func() {
		store := session.NewStore(memory.NewStorageRepository(), slogger)
		Expect(store.Load(ctx, "scope-1")).To(BeNil())
	})

	It("clears a saved session", func() {
		store := session.NewStore(memory.NewStorageRepository(), slogger)
		store.Save(ctx, "scope-1", sample)
		store.Clear(ctx, "scope-1")

		Expect(store.Load(ctx, "scope-1")).To(BeNil())
	})

	It("writes JSON under the auth_session key", func() {
		repo := memory.NewStorageRepository()
		store := session.NewStore(repo, slogger)
		store.Save(ctx, "scope-1", sample)

		raw, found, err := repo.Get(ctx, "scope-1", session.StorageKey)
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(raw).To(MatchJSON(`{
			"userId": 1,
			"username": "emilys",
			"email": "emily.johnson@x.dummyjson.com",
			"role": "interviewer",
			"token": "tok",
			"expiresAt": 1700000000000
		}`))
	})

	It("treats unreadable data as absent", func() {
		repo := memory.NewStorageRepository()
		Expect(repo.Set(ctx, "scope-1", session.StorageKey, "{not json")).To(Succeed())

		store := session.NewStore(repo, slogger)
		Expect(store.Load(ctx, "scope-1")).To(BeNil())
	})

	It("swallows storage failures", func() {
		store := session.NewStore(&failingRepository{err: errors.New("quota exceeded")}, slogger)

		Expect(func() {
			store.Save(ctx, "scope-1", sample)
			store.Clear(ctx, "scope-1")
		}).NotTo(Panic())
		Expect(store.Load(ctx, "scope-1")).To(BeNil())
	})
})

var _ = Describe("Session", func() {
	It("expires only once now is past expiresAt", func() {
		expiresAt := time.UnixMilli(1_700_000_000_000)
		sess := session.Session{ExpiresAt: expiresAt.UnixMilli()}

		Expect(sess.Expired(expiresAt)).To(BeFalse())
		Expect(sess.Expired(expiresAt.Add(-time.Second))).To(BeFalse())
		Expect(sess.Expired(expiresAt.Add(time.Millisecond))).To(BeTrue())
	})

	It("derives initials from the username", func() {
		Expect((&session.Session{Username: "emilys"}).Initials()).To(Equal("EM"))
		Expect((&session.Session{Username: "a"}).Initials()).To(Equal("A"))
		Expect((&session.Session{}).Initials()).To(Equal("U"))
	})

	It("keeps the token out of the view", func() {
		sess := session.Session{UserID: 5, Username: "michaelw", Role: rbac.RoleAdmin, Token: "secret"}
		view := sess.ToView()

		Expect(view.RoleLabel).To(Equal("Admin"))
		Expect(view.Initials).To(Equal("MI"))
		Expect(view.UserID).To(Equal(int64(5)))
	})
})
