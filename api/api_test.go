package api_test

import (
	"context"
	"testing"

	"github.com/frahmantamala/interview-dashboard/api"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "API Suite")
}

var _ = Describe("Load", func() {
	It("validates the embedded document", func() {
		doc, err := api.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Info.Title).To(Equal("Interview Dashboard"))
	})

	It("describes every page route", func() {
		doc, err := api.Load(context.Background())
		Expect(err).NotTo(HaveOccurred())
		for _, path := range []string{
			"/login",
			"/logout",
			"/dashboard",
			"/candidates",
			"/candidates/{id}",
			"/candidates/{id}/feedback",
			"/admin/roles",
			"/admin/roles/{userId}",
			"/api/v1/health",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), path)
		}
		Expect(doc.Paths.Find("/candidates/{id}/feedback").Post).NotTo(BeNil())
	})
})
