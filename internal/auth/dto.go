package auth

import (
	"strings"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/core/common/validation"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
)

// LoginDTO is the login form. Role is optional and trusted as sent.
type LoginDTO struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"notblank"`
	Role     string `json:"role" validate:"omitempty,role"`
}

func (d LoginDTO) ValidationMessages() map[string]string {
	return map[string]string{
		"username.notblank": "Username is required",
		"password.notblank": "Password is required",
		"role.role":         "Please select a valid role",
	}
}

// Validate checks the form before any upstream call is made.
func (d LoginDTO) Validate() *internal.AppError {
	return validation.Struct(d)
}

// Normalize trims the credentials and resolves the role, falling back to the default role.
func (d LoginDTO) Normalize() (username, password string, role rbac.Role) {
	role, ok := rbac.ParseRole(d.Role)
	if !ok {
		role = rbac.DefaultRole
	}
	return strings.TrimSpace(d.Username), strings.TrimSpace(d.Password), role
}
