package access_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/access"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/frahmantamala/interview-dashboard/internal/session"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAccess(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Access Suite")
}

func viewFor(role rbac.Role) access.View {
	return access.View{Hydrated: true, Session: &session.Session{UserID: 1, Username: "emilys", Role: role}}
}

var _ = Describe("Decide", func() {
	It("renders nothing before hydration", func() {
		Expect(access.Decide(access.View{}, access.RequirePermission(rbac.CanViewDashboard))).To(Equal(access.OutcomePending))
	})

	It("falls back without a session", func() {
		Expect(access.Decide(access.View{Hydrated: true})).To(Equal(access.OutcomeFallback))
	})

	It("allows any session when nothing is required", func() {
		Expect(access.Decide(viewFor(rbac.RoleCoordinator))).To(Equal(access.OutcomeAllow))
	})

	It("shows the feedback form to interviewers only", func() {
		req := access.RequirePermission(rbac.CanSubmitFeedback)
		Expect(access.Allowed(viewFor(rbac.RoleInterviewer), req)).To(BeTrue())
		Expect(access.Decide(viewFor(rbac.RoleAdmin), req)).To(Equal(access.OutcomeFallback))
		Expect(access.Decide(viewFor(rbac.RoleCoordinator), req)).To(Equal(access.OutcomeFallback))
	})

	It("applies the role allow-list", func() {
		req := access.RequireRoles(rbac.RoleAdmin)
		Expect(access.Allowed(viewFor(rbac.RoleAdmin), req)).To(BeTrue())
		Expect(access.Allowed(viewFor(rbac.RoleInterviewer), req)).To(BeFalse())
	})

	It("combines role list and permission with AND", func() {
		roles := access.RequireRoles(rbac.RoleAdmin, rbac.RoleCoordinator)
		perm := access.RequirePermission(rbac.CanManageRoles)

		Expect(access.Allowed(viewFor(rbac.RoleAdmin), roles, perm)).To(BeTrue())
		Expect(access.Allowed(viewFor(rbac.RoleCoordinator), roles, perm)).To(BeFalse())
		Expect(access.Allowed(viewFor(rbac.RoleInterviewer), roles, perm)).To(BeFalse())

		both := access.Requirement{Roles: []rbac.Role{rbac.RoleCoordinator}, Permission: rbac.CanViewAllFeedback}
		Expect(access.Allowed(viewFor(rbac.RoleCoordinator), both)).To(BeTrue())
	})
})

type stubSource struct {
	sessions map[string]*session.Session
	calls    int
}

func (s *stubSource) GetSession(_ context.Context, scope string) *session.Session {
	s.calls++
	return s.sessions[scope]
}

var _ = Describe("Middleware", func() {
	var (
		authz   *access.Authorization
		reached bool
		next    http.Handler
	)

	BeforeEach(func() {
		authz = access.NewAuthorization(slog.New(slog.NewTextHandler(io.Discard, nil)))
		reached = false
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reached = true
			w.WriteHeader(http.StatusOK)
		})
	})

	serve := func(h http.Handler, path string, view *access.View) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if view != nil {
			req = req.WithContext(access.WithView(req.Context(), *view))
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	Describe("Hydrate", func() {
		It("loads the session for the request scope", func() {
			src := &stubSource{sessions: map[string]*session.Session{"scope-1": {UserID: 9, Role: rbac.RoleAdmin}}}
			var seen access.View
			h := access.Hydrate(src)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = access.FromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			req = req.WithContext(internal.ContextWithScope(req.Context(), "scope-1"))
			h.ServeHTTP(httptest.NewRecorder(), req)

			Expect(src.calls).To(Equal(1))
			Expect(seen.Hydrated).To(BeTrue())
			Expect(seen.Session.UserID).To(Equal(int64(9)))
		})

		It("marks the view hydrated even without a scope", func() {
			src := &stubSource{}
			var seen access.View
			h := access.Hydrate(src)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = access.FromContext(r.Context())
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			Expect(src.calls).To(BeZero())
			Expect(seen.Hydrated).To(BeTrue())
			Expect(seen.Session).To(BeNil())
		})
	})

	Describe("Require", func() {
		It("writes nothing while pending", func() {
			rec := serve(authz.RequireSession()(next), "/dashboard", nil)
			Expect(rec.Code).To(Equal(http.StatusNoContent))
			Expect(rec.Body.Len()).To(BeZero())
			Expect(reached).To(BeFalse())
		})

		It("redirects anonymous callers to login", func() {
			rec := serve(authz.RequireSession()(next), "/dashboard", &access.View{Hydrated: true})
			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(rec.Header().Get("Location")).To(Equal("/login"))
		})

		It("redirects a denied session to the fallback", func() {
			v := viewFor(rbac.RoleAdmin)
			h := authz.Require("/candidates/3?tab=feedback", access.RequirePermission(rbac.CanSubmitFeedback))(next)
			rec := serve(h, "/candidates/3/feedback", &v)
			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(rec.Header().Get("Location")).To(Equal("/candidates/3?tab=feedback"))
			Expect(reached).To(BeFalse())
		})

		It("passes an allowed session through", func() {
			v := viewFor(rbac.RoleInterviewer)
			h := authz.Require("/dashboard", access.RequirePermission(rbac.CanSubmitFeedback))(next)
			rec := serve(h, "/candidates/3/feedback", &v)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(reached).To(BeTrue())
		})
	})

	Describe("RequireRoute", func() {
		It("sends non-admins away from the admin subtree", func() {
			v := viewFor(rbac.RoleCoordinator)
			rec := serve(authz.RequireRoute()(next), "/admin/roles", &v)
			Expect(rec.Code).To(Equal(http.StatusSeeOther))
			Expect(rec.Header().Get("Location")).To(Equal("/dashboard"))
		})

		It("sends anonymous callers to login", func() {
			rec := serve(authz.RequireRoute()(next), "/admin/roles", &access.View{Hydrated: true})
			Expect(rec.Header().Get("Location")).To(Equal("/login"))
		})

		It("lets admins in", func() {
			v := viewFor(rbac.RoleAdmin)
			rec := serve(authz.RequireRoute()(next), "/admin/roles", &v)
			Expect(rec.Code).To(Equal(http.StatusOK))
		})
	})
})
