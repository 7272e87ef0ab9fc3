package memory_test

import (
	"context"
	"testing"

	"github.com/frahmantamala/interview-dashboard/internal/storage/memory"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStorageMemory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Storage Memory Suite")
}

var _ = Describe("Memory storage", func() {
	ctx := context.Background()

	It("round-trips values per scope", func() {
		repo := memory.NewStorageRepository()
		Expect(repo.Set(ctx, "s1", "k", "v1")).To(Succeed())
		Expect(repo.Set(ctx, "s2", "k", "v2")).To(Succeed())

		v, found, err := repo.Get(ctx, "s1", "k")
		Expect(err).NotTo(HaveOccurred())
		Expect(found).To(BeTrue())
		Expect(v).To(Equal("v1"))

		Expect(repo.Delete(ctx, "s1", "k")).To(Succeed())
		_, found, _ = repo.Get(ctx, "s1", "k")
		Expect(found).To(BeFalse())

		v, _, _ = repo.Get(ctx, "s2", "k")
		Expect(v).To(Equal("v2"))
	})

	It("tolerates deleting from an unknown scope", func() {
		repo := memory.NewStorageRepository()
		Expect(repo.Delete(ctx, "nope", "k")).To(Succeed())
	})
})
