package postgres_test

import (
	"context"
	"testing"

	storageDatamodel "github.com/frahmantamala/interview-dashboard/internal/core/datamodel/storage"
	"github.com/frahmantamala/interview-dashboard/internal/storage"
	storagePostgres "github.com/frahmantamala/interview-dashboard/internal/storage/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestStoragePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Storage Postgres Suite")
}

var _ = Describe("Storage PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo storage.RepositoryAPI
		ctx  context.Context
	)

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&storageDatamodel.Entry{})
		Expect(err).NotTo(HaveOccurred())

		repo = storagePostgres.NewStorageRepository(db)
		ctx = context.Background()
	})

	Describe("Get", func() {
		It("should report a missing key as not found without error", func() {
			value, found, err := repo.Get(ctx, "scope-a", "auth_session")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())
			Expect(value).To(BeEmpty())
		})
	})

	Describe("Set", func() {
		It("should store and read back a value", func() {
			Expect(repo.Set(ctx, "scope-a", "auth_session", `{"userId":1}`)).To(Succeed())

			value, found, err := repo.Get(ctx, "scope-a", "auth_session")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeTrue())
			Expect(value).To(Equal(`{"userId":1}`))
		})

		It("should overwrite an existing value", func() {
			Expect(repo.Set(ctx, "scope-a", "auth_session", "first")).To(Succeed())
			Expect(repo.Set(ctx, "scope-a", "auth_session", "second")).To(Succeed())

			value, _, err := repo.Get(ctx, "scope-a", "auth_session")
			Expect(err).NotTo(HaveOccurred())
			Expect(value).To(Equal("second"))

			var count int64
			db.Model(&storageDatamodel.Entry{}).Count(&count)
			Expect(count).To(Equal(int64(1)))
		})

		It("should keep scopes apart", func() {
			Expect(repo.Set(ctx, "scope-a", "auth_session", "a")).To(Succeed())
			Expect(repo.Set(ctx, "scope-b", "auth_session", "b")).To(Succeed())

			value, _, _ := repo.Get(ctx, "scope-a", "auth_session")
			Expect(value).To(Equal("a"))
			value, _, _ = repo.Get(ctx, "scope-b", "auth_session")
			Expect(value).To(Equal("b"))
		})
	})

	Describe("Delete", func() {
		It("should remove only the addressed entry", func() {
			Expect(repo.Set(ctx, "scope-a", "auth_session", "a")).To(Succeed())
			Expect(repo.Set(ctx, "scope-b", "auth_session", "b")).To(Succeed())

			Expect(repo.Delete(ctx, "scope-a", "auth_session")).To(Succeed())

			_, found, err := repo.Get(ctx, "scope-a", "auth_session")
			Expect(err).NotTo(HaveOccurred())
			Expect(found).To(BeFalse())

			_, found, _ = repo.Get(ctx, "scope-b", "auth_session")
			Expect(found).To(BeTrue())
		})

		It("should succeed when nothing is stored", func() {
			Expect(repo.Delete(ctx, "scope-z", "auth_session")).To(Succeed())
		})
	})
})
