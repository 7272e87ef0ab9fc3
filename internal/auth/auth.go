package auth

import (
	"context"

	types "github.com/frahmantamala/interview-dashboard/internal/core/datamodel/dummyjson"
	"github.com/frahmantamala/interview-dashboard/internal/page"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/frahmantamala/interview-dashboard/internal/session"
)

// UpstreamAPI exchanges credentials for a profile and token.
type UpstreamAPI interface {
	Login(ctx context.Context, username, password string) (*types.LoginResponse, error)
}

// SessionStore is the persistence the service needs; session.Store satisfies it.
type SessionStore interface {
	Save(ctx context.Context, scope string, sess session.Session)
	Load(ctx context.Context, scope string) *session.Session
	Clear(ctx context.Context, scope string)
}

type RoleOption struct {
	Value rbac.Role `json:"value"`
	Label string    `json:"label"`
}

// LoginPage is the page model for GET /login.
type LoginPage struct {
	Title       string       `json:"title"`
	Roles       []RoleOption `json:"roles"`
	DefaultRole rbac.Role    `json:"defaultRole"`
}

type LoginResult struct {
	Session      session.View       `json:"session"`
	Redirect     string             `json:"redirect"`
	Notification *page.Notification `json:"notification"`
}

func NewLoginPage() LoginPage {
	roles := make([]RoleOption, 0, len(rbac.AllRoles))
	for _, r := range rbac.AllRoles {
		roles = append(roles, RoleOption{Value: r, Label: r.Label()})
	}
	return LoginPage{
		Title:       "Interview Management Dashboard",
		Roles:       roles,
		DefaultRole: rbac.DefaultRole,
	}
}
