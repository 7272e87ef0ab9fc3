package cmd

import (
	"testing"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestCmd(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cmd Suite")
}

var _ = Describe("permissions", func() {
	It("renders every role and permission", func() {
		out := renderPermissions()
		for _, s := range []string{"Admin", "Coordinator", "Interviewer", "Submit Feedback", "Manage Roles"} {
			Expect(out).To(ContainSubstring(s))
		}
	})
})

var _ = Describe("event", func() {
	It("builds a sample for every audited type", func() {
		for _, t := range events.AuditedEventTypes {
			e, err := sampleEvent(t, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.EventType()).To(Equal(t))
		}
	})

	It("rejects unknown types", func() {
		_, err := sampleEvent("order.created", 7)
		Expect(err).To(MatchError(ContainSubstring("unknown event type")))
	})
})

var _ = Describe("storage wiring", func() {
	It("opens an in-memory sqlite database", func() {
		gdb, err := initDB(internal.DatabaseConfig{
			Driver:       internal.DriverSQLite,
			Source:       ":memory:",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, _ := gdb.DB()
		DeferCleanup(sqlDB.Close)
		Expect(sqlxDriverName(internal.DriverSQLite)).To(Equal("sqlite3"))
		Expect(sqlxDriverName(internal.DriverPostgres)).To(Equal("pgx"))
	})

	It("refuses unknown drivers", func() {
		_, err := initDB(internal.DatabaseConfig{Driver: "mysql"})
		Expect(err).To(HaveOccurred())
	})
})
