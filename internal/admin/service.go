package admin

import (
	"context"
	"log/slog"
	"sync"

	"github.com/frahmantamala/interview-dashboard/internal"
	types "github.com/frahmantamala/interview-dashboard/internal/core/datamodel/dummyjson"
	"github.com/frahmantamala/interview-dashboard/internal/core/events"
	"github.com/frahmantamala/interview-dashboard/internal/dummyjson"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
)

// UsersLimit is how many users the role page lists.
const UsersLimit = 20

type UpstreamAPI interface {
	ListUsers(ctx context.Context, q dummyjson.UsersQuery) (*types.UsersPage, error)
}

type Assignment struct {
	UserID     int64     `json:"userId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Department string    `json:"department"`
	Role       rbac.Role `json:"role"`
	RoleLabel  string    `json:"roleLabel"`
}

// Service simulates role assignment. The upstream has no roles, so every
// user starts with a role derived from the id and changes live in memory
// until the process exits.
type Service struct {
	upstream  UpstreamAPI
	publisher events.Publisher
	logger    *slog.Logger

	mu        sync.RWMutex
	overrides map[int64]rbac.Role
}

func NewService(upstream UpstreamAPI, publisher events.Publisher, logger *slog.Logger) *Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &Service{
		upstream:  upstream,
		publisher: publisher,
		logger:    logger,
		overrides: make(map[int64]rbac.Role),
	}
}

// InitialRole cycles admin, coordinator, interviewer by id.
func InitialRole(userID int64) rbac.Role {
	i := userID % int64(len(rbac.AllRoles))
	if i < 0 {
		i = -i
	}
	return rbac.AllRoles[i]
}

func (s *Service) RoleOf(userID int64) rbac.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if role, ok := s.overrides[userID]; ok {
		return role
	}
	return InitialRole(userID)
}

func (s *Service) Users(ctx context.Context) ([]Assignment, error) {
	resp, err := s.upstream.ListUsers(ctx, dummyjson.UsersQuery{Limit: UsersLimit})
	if err != nil {
		s.logger.Error("failed to fetch users for role management", "error", err)
		return nil, internal.NewExternalError("Failed to fetch candidates", internal.ErrCodeUsersUnavailable, err)
	}

	out := make([]Assignment, 0, len(resp.Users))
	for _, u := range resp.Users {
		role := s.RoleOf(u.ID)
		department := u.Company.Department
		if department == "" {
			department = "N/A"
		}
		out = append(out, Assignment{
			UserID:     u.ID,
			Name:       u.FirstName + " " + u.LastName,
			Email:      u.Email,
			Department: department,
			Role:       role,
			RoleLabel:  role.Label(),
		})
	}
	return out, nil
}

// Assign records the new role for userID. Nothing is sent upstream.
func (s *Service) Assign(ctx context.Context, userID int64, role rbac.Role, assignedBy int64) error {
	if !role.Valid() {
		return internal.NewValidationFieldError("role", "Please select a valid role", internal.ErrCodeInvalidRole)
	}

	s.mu.Lock()
	s.overrides[userID] = role
	s.mu.Unlock()

	s.logger.Info("role assigned", "user_id", userID, "role", role, "assigned_by", assignedBy)
	_ = s.publisher.Publish(ctx, events.NewRoleAssignedEvent(userID, string(role), assignedBy))
	return nil
}
