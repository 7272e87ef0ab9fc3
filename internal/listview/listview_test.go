package listview_test

import (
	"net/url"
	"testing"

	"github.com/frahmantamala/interview-dashboard/internal/listview"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestListView(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "List View Suite")
}

type row struct {
	ID   int
	Name string
}

func rowField(r row, field string) (string, bool) {
	if field == "name" {
		return r.Name, true
	}
	return "", false
}

func names(rows []row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}

var _ = Describe("Pagination", func() {
	It("rounds the page count up", func() {
		Expect(listview.TotalPages(25, 10)).To(Equal(3))
		Expect(listview.TotalPages(30, 10)).To(Equal(3))
		Expect(listview.TotalPages(0, 10)).To(Equal(0))
	})

	It("reports navigation around the current page", func() {
		p := listview.Paginate(1, 25)
		Expect(p.HasPrevious).To(BeFalse())
		Expect(p.HasNext).To(BeTrue())

		p = listview.Paginate(3, 25)
		Expect(p.HasPrevious).To(BeTrue())
		Expect(p.HasNext).To(BeFalse())
	})

	It("keeps a page past the end instead of clamping", func() {
		s := listview.NewState().GoTo(7)
		Expect(s.Page).To(Equal(7))
		Expect(s.Skip()).To(Equal(60))
		Expect(listview.Paginate(s.Page, 25).HasNext).To(BeFalse())
	})
})

var _ = Describe("State", func() {
	It("resets to the first page on search", func() {
		s := listview.NewState().GoTo(4).Search("john")
		Expect(s.Page).To(Equal(1))
		Expect(s.Query).To(Equal("john"))
		Expect(s.Skip()).To(BeZero())
	})

	It("toggles direction on the same field and restarts on a new one", func() {
		s := listview.NewState().SortBy("firstName")
		Expect(s.Sort).To(Equal(listview.Sort{Field: "firstName", Dir: listview.Asc}))

		s = s.SortBy("firstName")
		Expect(s.Sort.Dir).To(Equal(listview.Desc))

		s = s.SortBy("firstName")
		Expect(s.Sort.Dir).To(Equal(listview.Asc))

		s = s.SortBy("email")
		Expect(s.Sort).To(Equal(listview.Sort{Field: "email", Dir: listview.Asc}))
	})

	It("parses query parameters", func() {
		s := listview.ParseState(url.Values{"q": {"ann"}, "page": {"2"}, "sort": {"lastName"}, "dir": {"DESC"}})
		Expect(s).To(Equal(listview.State{Query: "ann", Page: 2, Sort: listview.Sort{Field: "lastName", Dir: listview.Desc}}))

		s = listview.ParseState(url.Values{"page": {"abc"}})
		Expect(s.Page).To(Equal(1))
		Expect(s.Sort.Active()).To(BeFalse())
	})

	It("renders links without defaults", func() {
		Expect(listview.NewState().Link("/candidates")).To(Equal("/candidates"))
		s := listview.NewState().Search("a b").GoTo(2)
		Expect(s.Link("/candidates")).To(Equal("/candidates?page=2&q=a+b"))
	})
})

var _ = Describe("Sorted", func() {
	rows := []row{{1, "charlie"}, {2, "Alice"}, {3, "bob"}}

	It("leaves order alone without a sort key", func() {
		Expect(names(listview.Sorted(rows, listview.Sort{}, rowField))).To(Equal([]string{"charlie", "Alice", "bob"}))
	})

	It("compares string fields with the collator", func() {
		asc := listview.Sorted(rows, listview.Sort{Field: "name", Dir: listview.Asc}, rowField)
		Expect(names(asc)).To(Equal([]string{"Alice", "bob", "charlie"}))

		desc := listview.Sorted(rows, listview.Sort{Field: "name", Dir: listview.Desc}, rowField)
		Expect(names(desc)).To(Equal([]string{"charlie", "bob", "Alice"}))
	})

	It("leaves order alone for non-string fields", func() {
		got := listview.Sorted(rows, listview.Sort{Field: "id", Dir: listview.Desc}, rowField)
		Expect(names(got)).To(Equal([]string{"charlie", "Alice", "bob"}))
	})

	It("does not modify the input", func() {
		_ = listview.Sorted(rows, listview.Sort{Field: "name", Dir: listview.Asc}, rowField)
		Expect(rows[0].Name).To(Equal("charlie"))
	})
})
