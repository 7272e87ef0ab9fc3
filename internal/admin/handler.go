package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/access"
	"github.com/frahmantamala/interview-dashboard/internal/core/common/validation"
	"github.com/frahmantamala/interview-dashboard/internal/page"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/frahmantamala/interview-dashboard/internal/transport"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Users(ctx context.Context) ([]Assignment, error)
	Assign(ctx context.Context, userID int64, role rbac.Role, assignedBy int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

type RoleOption struct {
	Value rbac.Role `json:"value"`
	Label string    `json:"label"`
}

type Matrix struct {
	Roles []RoleOption     `json:"roles"`
	Rows  []rbac.MatrixRow `json:"rows"`
}

type RolesPage struct {
	Nav          page.Nav           `json:"nav"`
	Title        string             `json:"title"`
	Notice       string             `json:"notice"`
	Users        []Assignment       `json:"users"`
	Options      []RoleOption       `json:"options"`
	Matrix       Matrix             `json:"matrix"`
	Notification *page.Notification `json:"notification,omitempty"`
}

type AssignDTO struct {
	Role string `json:"role" validate:"notblank,role"`
}

func (d AssignDTO) ValidationMessages() map[string]string {
	return map[string]string{
		"role.notblank": "Please select a role",
		"role.role":     "Please select a valid role",
	}
}

type AssignResult struct {
	Assignment   Assignment         `json:"assignment"`
	Notification *page.Notification `json:"notification"`
}

func roleOptions() []RoleOption {
	out := make([]RoleOption, 0, len(rbac.AllRoles))
	for _, r := range rbac.AllRoles {
		out = append(out, RoleOption{Value: r, Label: r.Label()})
	}
	return out
}

func (h *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	options := roleOptions()
	p := RolesPage{
		Nav:     page.NewNav(access.FromContext(r.Context()), page.AdminRolesPath),
		Title:   "Role Management",
		Notice:  "This page is only accessible to administrators. Role changes are simulated and are not saved upstream.",
		Users:   []Assignment{},
		Options: options,
		Matrix:  Matrix{Roles: options, Rows: rbac.Rows()},
	}

	users, err := h.Service.Users(r.Context())
	if err != nil {
		h.Logger.Error("GetRoles: service error", "error", err)
		appErr, ok := internal.IsAppError(err)
		if !ok {
			appErr = internal.NewInternalError("Something went wrong", err)
		}
		p.Notification = page.Failure("Error", appErr.Message)
		h.WriteJSON(w, appErr.StatusCode, p)
		return
	}
	p.Users = users

	h.WriteJSON(w, http.StatusOK, p)
}

func (h *Handler) AssignRole(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "userId")
	userID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("AssignRole: invalid user ID", "id", idStr)
		h.HandleError(w, internal.NewValidationFieldError("userId", "invalid user ID", internal.ErrCodeInvalidID))
		return
	}

	var dto AssignDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if verr := validation.Struct(dto); verr != nil {
		h.HandleError(w, verr)
		return
	}
	role, _ := rbac.ParseRole(dto.Role)

	var assignedBy int64
	if s := access.FromContext(r.Context()).Session; s != nil {
		assignedBy = s.UserID
	}
	if err := h.Service.Assign(r.Context(), userID, role, assignedBy); err != nil {
		h.HandleError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, AssignResult{
		Assignment: Assignment{
			UserID:    userID,
			Role:      role,
			RoleLabel: role.Label(),
		},
		Notification: page.Success("Role Updated", fmt.Sprintf("User role has been changed to %s", role.Label())),
	})
}
