package dashboard

import (
	"net/http"

	"github.com/frahmantamala/interview-dashboard/internal/access"
	"github.com/frahmantamala/interview-dashboard/internal/page"
	"github.com/frahmantamala/interview-dashboard/internal/transport"
)

// Service answers dashboard queries over a fixed sample.
type Service struct {
	sample []Interview
}

func NewService(sample []Interview) *Service {
	return &Service{sample: sample}
}

type Overview struct {
	KPIs  KPIs         `json:"kpis"`
	Chart []ChartPoint `json:"chart"`
}

func (s *Service) Overview(f Filters) Overview {
	filtered := Apply(s.sample, f)
	return Overview{
		KPIs:  Summarize(filtered),
		Chart: Chart(filtered),
	}
}

type Option struct {
	Value Track  `json:"value"`
	Label string `json:"label"`
}

type FilterSection struct {
	Values  Filters  `json:"values"`
	Roles   []Option `json:"roles"`
	Active  bool     `json:"active"`
	ResetTo string   `json:"resetTo"`
}

type ChartSection struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Points      []ChartPoint `json:"points"`
}

type Page struct {
	Nav     page.Nav      `json:"nav"`
	Title   string        `json:"title"`
	KPIs    KPIs          `json:"kpis"`
	Filters FilterSection `json:"filters"`
	Chart   ChartSection  `json:"chart"`
}

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(baseHandler *transport.BaseHandler, service *Service) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	f, verr := ParseFilters(r.URL.Query())
	if verr != nil {
		h.HandleError(w, verr)
		return
	}

	ov := h.Service.Overview(f)
	roles := make([]Option, 0, 4)
	for _, t := range []Track{TrackAll, TrackFrontend, TrackBackend, TrackFullstack} {
		roles = append(roles, Option{Value: t, Label: t.Label()})
	}

	h.WriteJSON(w, http.StatusOK, Page{
		Nav:   page.NewNav(access.FromContext(r.Context()), page.DashboardPath),
		Title: "Dashboard",
		KPIs:  ov.KPIs,
		Filters: FilterSection{
			Values:  f,
			Roles:   roles,
			Active:  f.Active(),
			ResetTo: page.DashboardPath,
		},
		Chart: ChartSection{
			Title:       "Weekly Interview Distribution",
			Description: "Number of interviews scheduled per day",
			Points:      ov.Chart,
		},
	})
}
