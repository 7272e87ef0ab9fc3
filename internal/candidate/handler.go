package candidate

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/access"
	"github.com/frahmantamala/interview-dashboard/internal/dummyjson"
	"github.com/frahmantamala/interview-dashboard/internal/feedback"
	"github.com/frahmantamala/interview-dashboard/internal/listview"
	"github.com/frahmantamala/interview-dashboard/internal/page"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/frahmantamala/interview-dashboard/internal/schedule"
	"github.com/frahmantamala/interview-dashboard/internal/transport"
	"github.com/go-chi/chi"
	"golang.org/x/sync/errgroup"
)

const (
	TabProfile  = "profile"
	TabSchedule = "schedule"
	TabFeedback = "feedback"
)

var tabs = []string{TabProfile, TabSchedule, TabFeedback}

type ServiceAPI interface {
	List(ctx context.Context, st listview.State) (*List, error)
	Get(ctx context.Context, id int64) (*Candidate, error)
}

type ScheduleAPI interface {
	ForCandidate(ctx context.Context, candidateID int64) ([]schedule.Item, error)
}

type FeedbackAPI interface {
	ForCandidate(ctx context.Context, candidateID int64) ([]feedback.Feedback, error)
}

type Handler struct {
	*transport.BaseHandler
	Service  ServiceAPI
	Schedule ScheduleAPI
	Feedback FeedbackAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI, sched ScheduleAPI, fb FeedbackAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
		Schedule:    sched,
		Feedback:    fb,
	}
}

// sortable columns offered as toggle links; any string field sorts via ?sort=.
var columns = []struct{ key, label string }{
	{"firstName", "Name"},
	{"email", "Email"},
	{"university", "University"},
}

type Column struct {
	Key       string             `json:"key"`
	Label     string             `json:"label"`
	Link      string             `json:"link"`
	Direction listview.Direction `json:"direction,omitempty"`
}

type RowLinks struct {
	View     string `json:"view"`
	Feedback string `json:"feedback,omitempty"`
}

type Row struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Department string   `json:"department"`
	Title      string   `json:"title"`
	Status     string   `json:"status"`
	Links      RowLinks `json:"links"`
}

// Search describes the query form. Params are submitted alongside q so a new
// term keeps the sort and always starts from page 1.
type Search struct {
	Action string            `json:"action"`
	Query  string            `json:"query"`
	Params map[string]string `json:"params"`
}

func newSearch(st listview.State) Search {
	s := Search{Action: page.CandidatesPath, Query: st.Query, Params: map[string]string{}}
	values := st.Search("").Values()
	for k := range values {
		s.Params[k] = values.Get(k)
	}
	return s
}

type ListPage struct {
	Nav          page.Nav             `json:"nav"`
	Title        string               `json:"title"`
	State        listview.State       `json:"state"`
	Search       Search               `json:"search"`
	Columns      []Column             `json:"columns"`
	Rows         []Row                `json:"rows"`
	Pagination   *listview.Pagination `json:"pagination,omitempty"`
	Previous     string               `json:"previous,omitempty"`
	Next         string               `json:"next,omitempty"`
	Notification *page.Notification   `json:"notification,omitempty"`
}

func (h *Handler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	view := access.FromContext(r.Context())
	st := listview.ParseState(r.URL.Query())

	p := ListPage{
		Nav:   page.NewNav(view, page.CandidatesPath),
		Title: "Candidates",
		State:  st,
		Search: newSearch(st),
		Rows:   []Row{},
	}
	for _, c := range columns {
		col := Column{Key: c.key, Label: c.label, Link: st.SortBy(c.key).Link(page.CandidatesPath)}
		if st.Sort.Field == c.key {
			col.Direction = st.Sort.Dir
		}
		p.Columns = append(p.Columns, col)
	}

	list, err := h.Service.List(r.Context(), st)
	if err != nil {
		h.Logger.Error("ListCandidates: service error", "error", err)
		status := http.StatusBadGateway
		message := msgListFailed
		if appErr, ok := internal.IsAppError(err); ok {
			status, message = appErr.StatusCode, appErr.Message
		}
		p.Notification = page.Failure("Error", message)
		h.WriteJSON(w, status, p)
		return
	}

	canFeedback := access.Allowed(view, access.RequirePermission(rbac.CanSubmitFeedback))
	for _, c := range list.Candidates {
		row := Row{
			ID:         c.ID,
			Name:       c.FullName(),
			Email:      c.Email,
			Department: c.Department(),
			Title:      c.Title(),
			Status:     c.Status(),
			Links:      RowLinks{View: page.CandidateLink(c.ID, "")},
		}
		if canFeedback {
			row.Links.Feedback = page.CandidateLink(c.ID, TabFeedback)
		}
		p.Rows = append(p.Rows, row)
	}

	if len(p.Rows) > 0 {
		pg := listview.Paginate(st.Page, list.Total)
		p.Pagination = &pg
		if pg.HasPrevious {
			p.Previous = st.GoTo(st.Page - 1).Link(page.CandidatesPath)
		}
		if pg.HasNext {
			p.Next = st.GoTo(st.Page + 1).Link(page.CandidatesPath)
		}
	}

	h.WriteJSON(w, http.StatusOK, p)
}

type Profile struct {
	Candidate
	FullName string `json:"fullName"`
	Initials string `json:"initials"`
	Avatar   string `json:"avatar"`
	Status   string `json:"status"`
}

type ScheduleSection struct {
	Items []schedule.Item `json:"items"`
	Error string          `json:"error,omitempty"`
}

type FeedbackSection struct {
	Items []feedback.Feedback `json:"items"`
	Error string              `json:"error,omitempty"`
	// Form is present only for callers allowed to submit feedback.
	Form *feedback.Form `json:"form,omitempty"`
}

type DetailPage struct {
	Nav       page.Nav        `json:"nav"`
	Back      string          `json:"back"`
	Tab       string          `json:"tab"`
	Tabs      []string        `json:"tabs"`
	Candidate Profile         `json:"candidate"`
	Schedule  ScheduleSection `json:"schedule"`
	Feedback  FeedbackSection `json:"feedback"`
}

type notFoundPage struct {
	Nav   page.Nav           `json:"nav"`
	Back  string             `json:"back"`
	Error *internal.AppError `json:"error"`
}

func parseTab(raw string) string {
	for _, t := range tabs {
		if raw == t {
			return t
		}
	}
	return TabProfile
}

func (h *Handler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	view := access.FromContext(r.Context())

	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("GetCandidate: invalid candidate ID", "id", idStr)
		h.HandleError(w, internal.NewValidationFieldError("id", "invalid candidate ID", internal.ErrCodeInvalidID))
		return
	}

	c, err := h.Service.Get(r.Context(), id)
	if err != nil {
		appErr, ok := internal.IsAppError(err)
		if !ok {
			appErr = internal.NewExternalError(msgDetailFailed, internal.ErrCodeCandidateUnavailable, err)
		}
		if dummyjson.IsStatus(err, http.StatusNotFound) {
			h.Logger.Warn("GetCandidate: candidate not found", "id", id)
			appErr = internal.NewNotFoundError(msgDetailFailed, internal.ErrCodeCandidateNotFound)
		} else {
			h.Logger.Error("GetCandidate: service error", "id", id, "error", err)
		}
		h.WriteJSON(w, appErr.StatusCode, notFoundPage{
			Nav:   page.NewNav(view, page.CandidatesPath),
			Back:  page.CandidatesPath,
			Error: appErr,
		})
		return
	}

	p := DetailPage{
		Nav:  page.NewNav(view, page.CandidatesPath),
		Back: page.CandidatesPath,
		Tab:  parseTab(r.URL.Query().Get("tab")),
		Tabs: tabs,
		Candidate: Profile{
			Candidate: *c,
			FullName:  c.FullName(),
			Initials:  c.Initials(),
			Avatar:    c.Avatar(),
			Status:    c.Status(),
		},
		Schedule: ScheduleSection{Items: []schedule.Item{}},
		Feedback: FeedbackSection{Items: []feedback.Feedback{}},
	}

	// sections load side by side; a failed section is shown empty with its message
	var g errgroup.Group
	g.Go(func() error {
		items, err := h.Schedule.ForCandidate(r.Context(), id)
		if err != nil {
			p.Schedule.Error = sectionError(err)
			return nil
		}
		p.Schedule.Items = items
		return nil
	})
	g.Go(func() error {
		items, err := h.Feedback.ForCandidate(r.Context(), id)
		if err != nil {
			p.Feedback.Error = sectionError(err)
			return nil
		}
		p.Feedback.Items = items
		return nil
	})
	_ = g.Wait()

	if access.Allowed(view, access.RequirePermission(rbac.CanSubmitFeedback)) {
		p.Feedback.Form = feedback.NewForm(page.CandidateLink(id, "") + "/feedback")
	}

	h.WriteJSON(w, http.StatusOK, p)
}

func sectionError(err error) string {
	if appErr, ok := internal.IsAppError(err); ok {
		return appErr.Message
	}
	return err.Error()
}
