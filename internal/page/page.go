package page

import (
	"net/url"
	"strconv"

	"github.com/frahmantamala/interview-dashboard/internal/access"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
)

const (
	DashboardPath  = access.DashboardPath
	CandidatesPath = "/candidates"
	AdminRolesPath = "/admin/roles"
	LogoutPath     = "/logout"
)

// CandidateLink is the detail page of a candidate, opened on tab when set.
func CandidateLink(id int64, tab string) string {
	link := CandidatesPath + "/" + strconv.FormatInt(id, 10)
	if tab != "" {
		link += "?" + url.Values{"tab": {tab}}.Encode()
	}
	return link
}

// Notification is a transient toast shown by the client.
type Notification struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant,omitempty"`
}

const VariantDestructive = "destructive"

func Success(title, description string) *Notification {
	return &Notification{Title: title, Description: description}
}

func Failure(title, description string) *Notification {
	return &Notification{Title: title, Description: description, Variant: VariantDestructive}
}

type NavItem struct {
	Label  string `json:"label"`
	Href   string `json:"href"`
	Active bool   `json:"active"`
}

type Badge struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      rbac.Role `json:"role"`
	RoleLabel string    `json:"roleLabel"`
	Initials  string    `json:"initials"`
}

// Nav is the top navigation every dashboard page carries.
type Nav struct {
	Items  []NavItem `json:"items"`
	User   *Badge    `json:"user,omitempty"`
	Logout string    `json:"logout"`
}

// NewNav builds the navigation for the caller. Role Management is listed for
// admins only.
func NewNav(v access.View, active string) Nav {
	items := []NavItem{
		{Label: "Dashboard", Href: DashboardPath},
		{Label: "Candidates", Href: CandidatesPath},
	}
	if access.Allowed(v, access.RequireRoles(rbac.RoleAdmin)) {
		items = append(items, NavItem{Label: "Role Management", Href: AdminRolesPath})
	}
	for i := range items {
		items[i].Active = items[i].Href == active
	}

	nav := Nav{Items: items, Logout: LogoutPath}
	if s := v.Session; s != nil {
		nav.User = &Badge{
			Username:  s.Username,
			Email:     s.Email,
			Role:      s.Role,
			RoleLabel: s.Role.Label(),
			Initials:  s.Initials(),
		}
	}
	return nav
}
