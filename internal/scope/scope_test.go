package scope_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/scope"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestScope(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Scope Suite")
}

const secret = "0123456789abcdef0123456789abcdef"

var _ = Describe("Manager", func() {
	var (
		manager *scope.Manager
		seen    string
		handler http.Handler
	)

	BeforeEach(func() {
		manager = scope.NewManager(secret, "scope", false, slog.New(slog.NewTextHandler(io.Discard, nil)))
		seen = ""
		handler = manager.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = internal.ScopeFromContext(r.Context())
		}))
	})

	It("round-trips an issued token", func() {
		id, token, err := manager.Issue()
		Expect(err).NotTo(HaveOccurred())

		verified, err := manager.Verify(token)
		Expect(err).NotTo(HaveOccurred())
		Expect(verified).To(Equal(id))
	})

	It("rejects tokens signed with another secret", func() {
		other := scope.NewManager("ffffffffffffffffffffffffffffffff", "scope", false, slog.New(slog.NewTextHandler(io.Discard, nil)))
		_, token, err := other.Issue()
		Expect(err).NotTo(HaveOccurred())

		_, err = manager.Verify(token)
		Expect(err).To(MatchError(scope.ErrInvalidScope))
	})

	It("issues a cookie on first contact", func() {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))

		Expect(seen).NotTo(BeEmpty())
		cookies := rec.Result().Cookies()
		Expect(cookies).To(HaveLen(1))
		Expect(cookies[0].Name).To(Equal("scope"))
		Expect(cookies[0].HttpOnly).To(BeTrue())
	})

	It("reuses the scope from a valid cookie", func() {
		id, token, _ := manager.Issue()
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: "scope", Value: token})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		Expect(seen).To(Equal(id))
		Expect(rec.Result().Cookies()).To(BeEmpty())
	})

	It("replaces a tampered cookie", func() {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: "scope", Value: "not-a-token"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		Expect(seen).NotTo(BeEmpty())
		Expect(rec.Result().Cookies()).To(HaveLen(1))
	})
})
