package rbac

import (
	"strings"
)

type Role string

const (
	RoleAdmin       Role = "admin"
	RoleCoordinator Role = "coordinator"
	RoleInterviewer Role = "interviewer"
)

// DefaultRole is assumed when a login form leaves the role empty.
const DefaultRole = RoleInterviewer

type Permission string

const (
	CanViewDashboard        Permission = "canViewDashboard"
	CanViewCandidates       Permission = "canViewCandidates"
	CanViewCandidateDetails Permission = "canViewCandidateDetails"
	CanSubmitFeedback       Permission = "canSubmitFeedback"
	CanManageRoles          Permission = "canManageRoles"
	CanViewAllFeedback      Permission = "canViewAllFeedback"
)

// AdminRoutePrefix marks the route subtree reserved for RoleAdmin.
const AdminRoutePrefix = "/admin"

var (
	AllRoles       = []Role{RoleAdmin, RoleCoordinator, RoleInterviewer}
	AllPermissions = []Permission{
		CanViewDashboard,
		CanViewCandidates,
		CanViewCandidateDetails,
		CanSubmitFeedback,
		CanManageRoles,
		CanViewAllFeedback,
	}
)

type PermissionSet map[Permission]bool

// every role carries every permission key; nothing mutates this after init.
var table = map[Role]PermissionSet{
	RoleAdmin: {
		CanViewDashboard:        true,
		CanViewCandidates:       true,
		CanViewCandidateDetails: true,
		CanSubmitFeedback:       false,
		CanManageRoles:          true,
		CanViewAllFeedback:      true,
	},
	RoleCoordinator: {
		CanViewDashboard:        true,
		CanViewCandidates:       true,
		CanViewCandidateDetails: true,
		CanSubmitFeedback:       false,
		CanManageRoles:          false,
		CanViewAllFeedback:      true,
	},
	RoleInterviewer: {
		CanViewDashboard:        true,
		CanViewCandidates:       true,
		CanViewCandidateDetails: true,
		CanSubmitFeedback:       true,
		CanManageRoles:          false,
		CanViewAllFeedback:      false,
	},
}

// aliases accepted on input; ta_member and panelist are the names older
// clients still send.
var aliases = map[string]Role{
	"admin":       RoleAdmin,
	"coordinator": RoleCoordinator,
	"ta_member":   RoleCoordinator,
	"interviewer": RoleInterviewer,
	"panelist":    RoleInterviewer,
}

// ParseRole normalizes a role name. ok is false for anything unknown.
func ParseRole(name string) (Role, bool) {
	role, ok := aliases[strings.ToLower(strings.TrimSpace(name))]
	return role, ok
}

func (r Role) Valid() bool {
	_, ok := table[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// Label is the human readable name shown in navigation and role pickers.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleCoordinator:
		return "Coordinator"
	case RoleInterviewer:
		return "Interviewer"
	default:
		return ""
	}
}

func HasPermission(role Role, permission Permission) bool {
	perms, ok := table[role]
	if !ok {
		return false
	}
	return perms[permission]
}

func CanAccessRoute(role Role, path string) bool {
	if !role.Valid() {
		return false
	}
	if strings.HasPrefix(path, AdminRoutePrefix) {
		return role == RoleAdmin
	}
	return true
}

// Matrix returns a copy of the permission table.
func Matrix() map[Role]PermissionSet {
	out := make(map[Role]PermissionSet, len(table))
	for role, perms := range table {
		cp := make(PermissionSet, len(perms))
		for p, v := range perms {
			cp[p] = v
		}
		out[role] = cp
	}
	return out
}

// MatrixRow is one permission across all roles, in AllRoles order.
type MatrixRow struct {
	Permission Permission `json:"permission"`
	Label      string     `json:"label"`
	Granted    []bool     `json:"granted"`
}

func Rows() []MatrixRow {
	rows := make([]MatrixRow, 0, len(AllPermissions))
	for _, p := range AllPermissions {
		granted := make([]bool, len(AllRoles))
		for i, role := range AllRoles {
			granted[i] = HasPermission(role, p)
		}
		rows = append(rows, MatrixRow{Permission: p, Label: p.Label(), Granted: granted})
	}
	return rows
}

func (p Permission) Label() string {
	switch p {
	case CanViewDashboard:
		return "View Dashboard"
	case CanViewCandidates:
		return "View Candidates"
	case CanViewCandidateDetails:
		return "View Candidate Details"
	case CanSubmitFeedback:
		return "Submit Feedback"
	case CanManageRoles:
		return "Manage Roles"
	case CanViewAllFeedback:
		return "View All Feedback"
	default:
		return string(p)
	}
}
