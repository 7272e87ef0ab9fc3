package auth

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/core/events"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/frahmantamala/interview-dashboard/internal/session"
)

// Service owns the session lifecycle of a scope: login, lazy expiry, logout.
type Service struct {
	upstream  UpstreamAPI
	store     SessionStore
	publisher events.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

type Option func(*Service)

// WithClock replaces time.Now, for tests that need to move past the TTL.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

func NewService(upstream UpstreamAPI, store SessionStore, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		upstream:  upstream,
		store:     store,
		publisher: events.NopPublisher{},
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login exchanges the credentials upstream and persists a fresh one-hour session
// carrying the client-chosen role. Every failure collapses to ErrLoginFailed.
func (s *Service) Login(ctx context.Context, scope, username, password string, role rbac.Role) (*session.Session, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)

	resp, err := s.upstream.Login(ctx, username, password)
	if err != nil {
		s.logger.Warn("login: upstream rejected credentials", "username", username, "error", err)
		return nil, internal.ErrLoginFailed
	}
	if resp == nil {
		s.logger.Warn("login: empty upstream response", "username", username)
		return nil, internal.ErrLoginFailed
	}

	sess := session.Session{
		UserID:    resp.ID,
		Username:  resp.Username,
		Email:     resp.Email,
		Role:      role,
		Token:     resp.BearerToken(),
		ExpiresAt: s.now().Add(session.TTL).UnixMilli(),
	}
	s.store.Save(ctx, scope, sess)

	s.logger.Info("login: session created", "user_id", sess.UserID, "role", sess.Role)
	_ = s.publisher.Publish(ctx, events.NewSessionCreatedEvent(scope, sess.UserID, sess.Username, string(sess.Role)))

	return &sess, nil
}

// GetSession returns the scope's session, or nil if there is none. An expired
// session is cleared on the way out.
func (s *Service) GetSession(ctx context.Context, scope string) *session.Session {
	sess := s.store.Load(ctx, scope)
	if sess == nil {
		return nil
	}
	if sess.Expired(s.now()) {
		s.logger.Info("session expired", "user_id", sess.UserID, "expires_at", sess.ExpiresAt)
		s.store.Clear(ctx, scope)
		_ = s.publisher.Publish(ctx, events.NewSessionClearedEvent(scope, events.ClearReasonExpired))
		return nil
	}
	return sess
}

// Logout clears the scope unconditionally. The upstream token is not revoked.
func (s *Service) Logout(ctx context.Context, scope string) {
	s.store.Clear(ctx, scope)
	_ = s.publisher.Publish(ctx, events.NewSessionClearedEvent(scope, events.ClearReasonLogout))
}
