package session

import (
	"strings"
	"time"

	"github.com/frahmantamala/interview-dashboard/internal/rbac"
)

// StorageKey is the only key this service writes into a scope.
const StorageKey = "auth_session"

// TTL is fixed and starts at login. The upstream token lifetime is not consulted.
const TTL = time.Hour

type Session struct {
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      rbac.Role `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt int64     `json:"expiresAt"`
}

// Expired reports whether now is strictly past ExpiresAt (epoch milliseconds).
func (s *Session) Expired(now time.Time) bool {
	return now.UnixMilli() > s.ExpiresAt
}

// Initials is the avatar fallback: the first two characters of the username, upper-cased.
func (s *Session) Initials() string {
	if s == nil || s.Username == "" {
		return "U"
	}
	runes := []rune(s.Username)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return strings.ToUpper(string(runes))
}

// View is the subset of a session exposed in page models. The token stays server-side.
type View struct {
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      rbac.Role `json:"role"`
	RoleLabel string    `json:"roleLabel"`
	Initials  string    `json:"initials"`
	ExpiresAt int64     `json:"expiresAt"`
}

func (s *Session) ToView() View {
	return View{
		UserID:    s.UserID,
		Username:  s.Username,
		Email:     s.Email,
		Role:      s.Role,
		RoleLabel: s.Role.Label(),
		Initials:  s.Initials(),
		ExpiresAt: s.ExpiresAt,
	}
}
