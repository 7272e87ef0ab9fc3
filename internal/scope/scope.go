package scope

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const cookieMaxAge = 365 * 24 * time.Hour

var ErrInvalidScope = errors.New("invalid scope cookie")

// Manager issues and verifies the cookie that names a client's storage scope.
// The cookie holds only a signed random id; session data stays server-side.
type Manager struct {
	secret     []byte
	cookieName string
	secure     bool
	logger     *slog.Logger
	now        func() time.Time
}

func NewManager(secret, cookieName string, secure bool, logger *slog.Logger) *Manager {
	return &Manager{
		secret:     []byte(secret),
		cookieName: cookieName,
		secure:     secure,
		logger:     logger,
		now:        time.Now,
	}
}

// Issue creates a new scope id and its signed token.
func (m *Manager) Issue() (id string, token string, err error) {
	id = uuid.NewString()
	claims := jwt.RegisteredClaims{
		Subject:  id,
		IssuedAt: jwt.NewNumericDate(m.now()),
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign scope: %w", err)
	}
	return id, token, nil
}

// Verify returns the scope id carried by a token.
func (m *Manager) Verify(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidScope
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrInvalidScope
	}
	return claims.Subject, nil
}

// Middleware binds every request to a scope, issuing a fresh cookie when the
// request has none or carries one that fails verification.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(m.cookieName); err == nil && c.Value != "" {
			if verified, verr := m.Verify(c.Value); verr == nil {
				id = verified
			} else {
				m.logger.Warn("scope: rejecting cookie", "error", verr)
			}
		}

		if id == "" {
			newID, token, err := m.Issue()
			if err != nil {
				m.logger.Error("scope: failed to issue cookie", "error", err)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			id = newID
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    token,
				Path:     "/",
				MaxAge:   int(cookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   m.secure,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(internal.ContextWithScope(r.Context(), id)))
	})
}
