package rbac_test

import (
	"testing"

	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRBAC(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "RBAC Suite")
}

var _ = Describe("Permission table", func() {
	DescribeTable("HasPermission",
		func(role rbac.Role, perm rbac.Permission, expected bool) {
			Expect(rbac.HasPermission(role, perm)).To(Equal(expected))
		},
		Entry("admin views dashboard", rbac.RoleAdmin, rbac.CanViewDashboard, true),
		Entry("admin views candidates", rbac.RoleAdmin, rbac.CanViewCandidates, true),
		Entry("admin views details", rbac.RoleAdmin, rbac.CanViewCandidateDetails, true),
		Entry("admin cannot submit feedback", rbac.RoleAdmin, rbac.CanSubmitFeedback, false),
		Entry("admin manages roles", rbac.RoleAdmin, rbac.CanManageRoles, true),
		Entry("admin views all feedback", rbac.RoleAdmin, rbac.CanViewAllFeedback, true),

		Entry("coordinator views dashboard", rbac.RoleCoordinator, rbac.CanViewDashboard, true),
		Entry("coordinator cannot submit feedback", rbac.RoleCoordinator, rbac.CanSubmitFeedback, false),
		Entry("coordinator cannot manage roles", rbac.RoleCoordinator, rbac.CanManageRoles, false),
		Entry("coordinator views all feedback", rbac.RoleCoordinator, rbac.CanViewAllFeedback, true),

		Entry("interviewer views details", rbac.RoleInterviewer, rbac.CanViewCandidateDetails, true),
		Entry("interviewer submits feedback", rbac.RoleInterviewer, rbac.CanSubmitFeedback, true),
		Entry("interviewer cannot manage roles", rbac.RoleInterviewer, rbac.CanManageRoles, false),
		Entry("interviewer cannot view all feedback", rbac.RoleInterviewer, rbac.CanViewAllFeedback, false),

		Entry("empty role", rbac.Role(""), rbac.CanViewDashboard, false),
		Entry("unknown role", rbac.Role("guest"), rbac.CanViewDashboard, false),
		Entry("unknown permission", rbac.RoleAdmin, rbac.Permission("canDeleteEverything"), false),
	)

	It("defines every permission for every role", func() {
		matrix := rbac.Matrix()
		Expect(matrix).To(HaveLen(len(rbac.AllRoles)))
		for _, role := range rbac.AllRoles {
			Expect(matrix[role]).To(HaveLen(len(rbac.AllPermissions)))
		}
	})

	It("returns a copy from Matrix", func() {
		matrix := rbac.Matrix()
		matrix[rbac.RoleInterviewer][rbac.CanManageRoles] = true

		Expect(rbac.HasPermission(rbac.RoleInterviewer, rbac.CanManageRoles)).To(BeFalse())
	})

	It("lays out rows in role order", func() {
		rows := rbac.Rows()
		Expect(rows).To(HaveLen(6))
		Expect(rows[3].Permission).To(Equal(rbac.CanSubmitFeedback))
		Expect(rows[3].Granted).To(Equal([]bool{false, false, true}))
	})
})

var _ = Describe("CanAccessRoute", func() {
	It("reserves the admin subtree for admins", func() {
		Expect(rbac.CanAccessRoute(rbac.RoleAdmin, "/admin/roles")).To(BeTrue())
		Expect(rbac.CanAccessRoute(rbac.RoleCoordinator, "/admin/roles")).To(BeFalse())
		Expect(rbac.CanAccessRoute(rbac.RoleInterviewer, "/admin")).To(BeFalse())
	})

	It("allows every other route for any defined role", func() {
		for _, role := range rbac.AllRoles {
			Expect(rbac.CanAccessRoute(role, "/dashboard")).To(BeTrue())
			Expect(rbac.CanAccessRoute(role, "/candidates/7")).To(BeTrue())
		}
	})

	It("denies an undefined role everywhere", func() {
		Expect(rbac.CanAccessRoute(rbac.Role(""), "/dashboard")).To(BeFalse())
		Expect(rbac.CanAccessRoute(rbac.Role("root"), "/candidates")).To(BeFalse())
	})
})

var _ = Describe("ParseRole", func() {
	It("accepts canonical names and legacy aliases", func() {
		role, ok := rbac.ParseRole("ta_member")
		Expect(ok).To(BeTrue())
		Expect(role).To(Equal(rbac.RoleCoordinator))

		role, ok = rbac.ParseRole(" Panelist ")
		Expect(ok).To(BeTrue())
		Expect(role).To(Equal(rbac.RoleInterviewer))

		role, ok = rbac.ParseRole("admin")
		Expect(ok).To(BeTrue())
		Expect(role).To(Equal(rbac.RoleAdmin))
	})

	It("rejects unknown names", func() {
		_, ok := rbac.ParseRole("owner")
		Expect(ok).To(BeFalse())
	})
})
