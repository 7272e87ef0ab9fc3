package page_test

import (
	"testing"

	"github.com/frahmantamala/interview-dashboard/internal/access"
	"github.com/frahmantamala/interview-dashboard/internal/page"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/frahmantamala/interview-dashboard/internal/session"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPage(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Page Suite")
}

func labels(nav page.Nav) []string {
	out := make([]string, 0, len(nav.Items))
	for _, item := range nav.Items {
		out = append(out, item.Label)
	}
	return out
}

var _ = Describe("NewNav", func() {
	view := func(role rbac.Role) access.View {
		return access.View{Hydrated: true, Session: &session.Session{Username: "emilys", Role: role}}
	}

	It("lists Role Management for admins", func() {
		nav := page.NewNav(view(rbac.RoleAdmin), page.CandidatesPath)
		Expect(labels(nav)).To(Equal([]string{"Dashboard", "Candidates", "Role Management"}))
		Expect(nav.Items[1].Active).To(BeTrue())
		Expect(nav.Items[0].Active).To(BeFalse())
	})

	It("hides Role Management from everyone else", func() {
		Expect(labels(page.NewNav(view(rbac.RoleCoordinator), page.DashboardPath))).To(Equal([]string{"Dashboard", "Candidates"}))
		Expect(labels(page.NewNav(view(rbac.RoleInterviewer), page.DashboardPath))).To(Equal([]string{"Dashboard", "Candidates"}))
	})

	It("carries the user badge", func() {
		nav := page.NewNav(view(rbac.RoleInterviewer), page.DashboardPath)
		Expect(nav.User).NotTo(BeNil())
		Expect(nav.User.Initials).To(Equal("EM"))
		Expect(nav.User.RoleLabel).To(Equal("Interviewer"))
		Expect(nav.Logout).To(Equal("/logout"))
	})

	It("has no badge without a session", func() {
		nav := page.NewNav(access.View{Hydrated: true}, page.DashboardPath)
		Expect(nav.User).To(BeNil())
	})
})

var _ = Describe("Notification", func() {
	It("marks failures destructive", func() {
		Expect(page.Failure("Login Failed", "x").Variant).To(Equal("destructive"))
		Expect(page.Success("Done", "x").Variant).To(BeEmpty())
	})
})

var _ = Describe("CandidateLink", func() {
	It("adds the tab only when set", func() {
		Expect(page.CandidateLink(7, "")).To(Equal("/candidates/7"))
		Expect(page.CandidateLink(7, "feedback")).To(Equal("/candidates/7?tab=feedback"))
	})
})
