package access

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/frahmantamala/interview-dashboard/internal/session"
	"github.com/frahmantamala/interview-dashboard/pkg/logger"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// SessionSource resolves the current session for a scope, applying expiry.
type SessionSource interface {
	GetSession(ctx context.Context, scope string) *session.Session
}

// Hydrate reads the scope's session once per request and stores the view in
// the request context. It must run after the scope middleware.
func Hydrate(source SessionSource) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			var sess *session.Session
			if scope := internal.ScopeFromContext(ctx); scope != "" {
				sess = source.GetSession(ctx, scope)
			}
			ctx = WithView(ctx, View{Session: sess, Hydrated: true})
			if sess != nil {
				ctx = logger.With(ctx, "user_id", sess.UserID, "role", sess.Role)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorization turns guard outcomes into HTTP behaviour: pending writes an
// empty 204, fallback redirects, allow passes through.
type Authorization struct {
	logger *slog.Logger
}

func NewAuthorization(logger *slog.Logger) *Authorization {
	return &Authorization{logger: logger}
}

// Require redirects to fallback unless every requirement holds. Callers
// without a session always go to the login page.
func (a *Authorization) Require(fallback string, reqs ...Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			view := FromContext(r.Context())
			switch Decide(view, reqs...) {
			case OutcomePending:
				w.WriteHeader(http.StatusNoContent)
			case OutcomeFallback:
				target := fallback
				if view.Session == nil {
					target = LoginPath
				} else {
					a.logger.WarnContext(r.Context(), "access denied: requirement not met",
						"user_id", view.Session.UserID,
						"role", view.Session.Role,
						"path", r.URL.Path)
				}
				http.Redirect(w, r, target, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireSession sends anonymous callers to the login page.
func (a *Authorization) RequireSession() func(http.Handler) http.Handler {
	return a.Require(LoginPath)
}

// RequireRoute applies the route policy to the request path; denied callers
// with a session land on the dashboard.
func (a *Authorization) RequireRoute() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			view := FromContext(r.Context())
			if !view.Hydrated {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			if view.Session == nil {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}
			if !rbac.CanAccessRoute(view.Session.Role, r.URL.Path) {
				a.logger.WarnContext(r.Context(), "access denied: route not allowed for role",
					"user_id", view.Session.UserID,
					"role", view.Session.Role,
					"path", r.URL.Path)
				http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
