package candidate

import (
	"strings"
	"unicode/utf8"

	types "github.com/frahmantamala/interview-dashboard/internal/core/datamodel/dummyjson"
)

const (
	StatusScheduled = "Scheduled"
	StatusPending   = "Pending"

	notAvailable     = "N/A"
	placeholderImage = "/placeholder.svg"
)

type Company struct {
	Department string `json:"department"`
	Name       string `json:"name"`
	Title      string `json:"title"`
}

type Candidate struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Image      string  `json:"image"`
	Company    Company `json:"company"`
	Role       string  `json:"role,omitempty"`
	University string  `json:"university,omitempty"`
}

func (c Candidate) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Initials is the first letter of each name, upper-cased.
func (c Candidate) Initials() string {
	return strings.ToUpper(firstRune(c.FirstName) + firstRune(c.LastName))
}

// Status is simulated from the id; the upstream has no interview state.
func (c Candidate) Status() string {
	if c.ID%3 == 0 {
		return StatusScheduled
	}
	return StatusPending
}

func (c Candidate) Department() string {
	return orNA(c.Company.Department)
}

func (c Candidate) Title() string {
	return orNA(c.Company.Title)
}

func (c Candidate) Avatar() string {
	if c.Image == "" {
		return placeholderImage
	}
	return c.Image
}

// Field returns a string-typed field by its JSON name for sorting.
func (c Candidate) Field(name string) (string, bool) {
	switch name {
	case "firstName":
		return c.FirstName, true
	case "lastName":
		return c.LastName, true
	case "email":
		return c.Email, true
	case "phone":
		return c.Phone, true
	case "image":
		return c.Image, true
	case "role":
		return c.Role, true
	case "university":
		return c.University, true
	default:
		return "", false
	}
}

func FromUpstream(u *types.User) *Candidate {
	return &Candidate{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Phone:     u.Phone,
		Image:     u.Image,
		Company: Company{
			Department: u.Company.Department,
			Name:       u.Company.Name,
			Title:      u.Company.Title,
		},
		Role:       u.Role,
		University: u.University,
	}
}

func firstRune(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(r)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
