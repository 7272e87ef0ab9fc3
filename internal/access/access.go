package access

import (
	"context"
	"slices"

	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/frahmantamala/interview-dashboard/internal/session"
)

// View is what a request knows about its caller. Hydrated is false until the
// session store has been read for this request.
type View struct {
	Session  *session.Session
	Hydrated bool
}

func (v View) Authenticated() bool {
	return v.Hydrated && v.Session != nil
}

func (v View) Role() rbac.Role {
	if v.Session == nil {
		return ""
	}
	return v.Session.Role
}

// Requirement gates a protected section. Empty fields impose nothing; a
// zero Requirement only demands a session.
type Requirement struct {
	Permission rbac.Permission
	Roles      []rbac.Role
}

func RequirePermission(p rbac.Permission) Requirement {
	return Requirement{Permission: p}
}

func RequireRoles(roles ...rbac.Role) Requirement {
	return Requirement{Roles: roles}
}

type Outcome int

const (
	// OutcomePending renders nothing: the session has not been read yet.
	OutcomePending Outcome = iota
	OutcomeFallback
	OutcomeAllow
)

func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeFallback:
		return "fallback"
	case OutcomeAllow:
		return "allow"
	default:
		return "unknown"
	}
}

// Decide evaluates every requirement against the view; all must hold.
func Decide(v View, reqs ...Requirement) Outcome {
	if !v.Hydrated {
		return OutcomePending
	}
	if v.Session == nil {
		return OutcomeFallback
	}
	role := v.Session.Role
	for _, req := range reqs {
		if len(req.Roles) > 0 && !slices.Contains(req.Roles, role) {
			return OutcomeFallback
		}
		if req.Permission != "" && !rbac.HasPermission(role, req.Permission) {
			return OutcomeFallback
		}
	}
	return OutcomeAllow
}

func Allowed(v View, reqs ...Requirement) bool {
	return Decide(v, reqs...) == OutcomeAllow
}

type ctxKey string

const viewKey ctxKey = "accessView"

func WithView(ctx context.Context, v View) context.Context {
	return context.WithValue(ctx, viewKey, v)
}

// FromContext returns the request's view; without hydration it is the zero (pending) view.
func FromContext(ctx context.Context) View {
	if v, ok := ctx.Value(viewKey).(View); ok {
		return v
	}
	return View{}
}
