package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/access"
	"github.com/frahmantamala/interview-dashboard/internal/admin"
	"github.com/frahmantamala/interview-dashboard/internal/auth"
	"github.com/frahmantamala/interview-dashboard/internal/candidate"
	"github.com/frahmantamala/interview-dashboard/internal/dashboard"
	"github.com/frahmantamala/interview-dashboard/internal/feedback"
	"github.com/frahmantamala/interview-dashboard/internal/page"
	"github.com/frahmantamala/interview-dashboard/internal/transport/middleware"
	"github.com/frahmantamala/interview-dashboard/internal/transport/swagger"
	"github.com/go-chi/chi"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Routes collects everything the router mounts. Nil handlers leave their
// routes out, which keeps tests small.
type Routes struct {
	Config        *internal.Config
	Logger        *slog.Logger
	Scope         func(http.Handler) http.Handler
	Sessions      access.SessionSource
	Authorization *access.Authorization
	OpenAPI       []byte

	Health    *HealthHandler
	Auth      *auth.Handler
	Dashboard *dashboard.Handler
	Candidate *candidate.Handler
	Feedback  *feedback.Handler
	Admin     *admin.Handler
}

func RegisterAllRoutes(router *chi.Mux, rt Routes) {
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.Config.Server.Origins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.TraceHeader},
		ExposedHeaders:   []string{"Location", middleware.TraceHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(rt.Logger))
	router.Use(middleware.Logging(rt.Logger))
	router.Use(func(next http.Handler) http.Handler {
		return otelhttp.NewHandler(next, "interview-dashboard",
			otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
				return r.Method + " " + r.URL.Path
			}))
	})

	if rt.OpenAPI != nil {
		router.Get(swagger.DocumentPath, swagger.Document(rt.OpenAPI))
		router.Handle("/swagger/*", swagger.Handler())
	}

	router.Route("/api/v1", func(r chi.Router) {
		if rt.Health != nil {
			r.Get("/health", rt.Health.Health)
			r.Get("/ping", rt.Health.Ping)
		}
	})

	// Page routes share one scope cookie and one session read per request.
	router.Group(func(r chi.Router) {
		r.Use(rt.Scope)
		r.Use(access.Hydrate(rt.Sessions))

		r.Get("/", func(w http.ResponseWriter, req *http.Request) {
			http.Redirect(w, req, page.DashboardPath, http.StatusSeeOther)
		})

		if rt.Auth != nil {
			r.Get(access.LoginPath, rt.Auth.LoginPage)
			r.With(loginLimit(rt.Config.RateLimit.LoginPerMinute)).Post(access.LoginPath, rt.Auth.Login)
			r.Post(page.LogoutPath, rt.Auth.Logout)
		}

		r.Group(func(pr chi.Router) {
			pr.Use(rt.Authorization.RequireSession())

			if rt.Dashboard != nil {
				pr.Get(page.DashboardPath, rt.Dashboard.GetDashboard)
			}
			if rt.Candidate != nil {
				pr.Get(page.CandidatesPath, rt.Candidate.ListCandidates)
				pr.Get(page.CandidatesPath+"/{id}", rt.Candidate.GetCandidate)
			}
			if rt.Feedback != nil {
				pr.Post(page.CandidatesPath+"/{id}/feedback", rt.Feedback.Submit)
			}
		})

		if rt.Admin != nil {
			r.Group(func(ar chi.Router) {
				ar.Use(rt.Authorization.RequireRoute())
				ar.Get(page.AdminRolesPath, rt.Admin.GetRoles)
				ar.Post(page.AdminRolesPath+"/{userId}", rt.Admin.AssignRole)
			})
		}
	})
}

func loginLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.LimitByIP(perMinute, time.Minute)
}
