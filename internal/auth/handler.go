package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/access"
	"github.com/frahmantamala/interview-dashboard/internal/page"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/frahmantamala/interview-dashboard/internal/session"
	"github.com/frahmantamala/interview-dashboard/internal/transport"
)

type ServiceAPI interface {
	Login(ctx context.Context, scope, username, password string, role rbac.Role) (*session.Session, error)
	GetSession(ctx context.Context, scope string) *session.Session
	Logout(ctx context.Context, scope string)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, svc ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     svc,
	}
}

type loginFailure struct {
	Error        *internal.AppError `json:"error"`
	Notification *page.Notification `json:"notification,omitempty"`
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, NewLoginPage())
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	scope := internal.ScopeFromContext(r.Context())
	if scope == "" {
		h.Logger.Error("Login: request has no scope")
		h.HandleError(w, internal.NewInternalError("Something went wrong", nil))
		return
	}

	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if verr := dto.Validate(); verr != nil {
		h.WriteJSON(w, verr.StatusCode, loginFailure{Error: verr})
		return
	}

	username, password, role := dto.Normalize()
	sess, err := h.Service.Login(r.Context(), scope, username, password, role)
	if err != nil {
		appErr, ok := internal.IsAppError(err)
		if !ok {
			appErr = internal.ErrLoginFailed
		}
		h.Logger.Warn("Login: authentication failed", "username", username, "error", err)
		h.WriteJSON(w, appErr.StatusCode, loginFailure{
			Error:        appErr,
			Notification: page.Failure("Login Failed", appErr.Message),
		})
		return
	}

	h.WriteJSON(w, http.StatusOK, LoginResult{
		Session:      sess.ToView(),
		Redirect:     access.DashboardPath,
		Notification: page.Success("Login Successful", fmt.Sprintf("Welcome back, %s!", sess.Username)),
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if scope := internal.ScopeFromContext(r.Context()); scope != "" {
		h.Service.Logout(r.Context(), scope)
	}
	h.Redirect(w, r, access.LoginPath)
}
