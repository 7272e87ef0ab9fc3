package listview

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageSize is fixed; the page size is not a client choice.
const PageSize = 10

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type Sort struct {
	Field string    `json:"field,omitempty"`
	Dir   Direction `json:"dir,omitempty"`
}

// Toggle flips the direction when field is already the sort key, otherwise
// starts ascending on the new field.
func (s Sort) Toggle(field string) Sort {
	if s.Field == field {
		if s.Dir == Asc {
			return Sort{Field: field, Dir: Desc}
		}
		return Sort{Field: field, Dir: Asc}
	}
	return Sort{Field: field, Dir: Asc}
}

func (s Sort) Active() bool {
	return s.Field != ""
}

// State is the list position a client is looking at.
type State struct {
	Query string `json:"query"`
	Page  int    `json:"page"`
	Sort  Sort   `json:"sort"`
}

func NewState() State {
	return State{Page: 1}
}

// Search replaces the query and goes back to the first page.
func (s State) Search(term string) State {
	s.Query = term
	s.Page = 1
	return s
}

func (s State) GoTo(page int) State {
	if page < 1 {
		page = 1
	}
	s.Page = page
	return s
}

func (s State) SortBy(field string) State {
	s.Sort = s.Sort.Toggle(field)
	return s
}

// Skip is the upstream offset of the current page.
func (s State) Skip() int {
	return (s.Page - 1) * PageSize
}

// Values encodes the state back into query parameters, leaving out defaults.
func (s State) Values() url.Values {
	v := url.Values{}
	if s.Query != "" {
		v.Set("q", s.Query)
	}
	if s.Page > 1 {
		v.Set("page", strconv.Itoa(s.Page))
	}
	if s.Sort.Active() {
		v.Set("sort", s.Sort.Field)
		v.Set("dir", string(s.Sort.Dir))
	}
	return v
}

// Link renders the state as a path with its query string.
func (s State) Link(path string) string {
	if enc := s.Values().Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}

// ParseState reads q, page, sort and dir. A missing or unparsable page is 1;
// pages past the end are kept as-is.
func ParseState(v url.Values) State {
	s := NewState()
	s.Query = v.Get("q")
	if p, err := strconv.Atoi(v.Get("page")); err == nil {
		s = s.GoTo(p)
	}
	if field := strings.TrimSpace(v.Get("sort")); field != "" {
		dir := Direction(strings.ToLower(v.Get("dir")))
		if dir != Desc {
			dir = Asc
		}
		s.Sort = Sort{Field: field, Dir: dir}
	}
	return s
}

func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

type Pagination struct {
	Page        int  `json:"page"`
	TotalPages  int  `json:"totalPages"`
	Total       int  `json:"total"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

func Paginate(page, total int) Pagination {
	pages := TotalPages(total, PageSize)
	return Pagination{
		Page:        page,
		TotalPages:  pages,
		Total:       total,
		HasPrevious: page > 1,
		HasNext:     page < pages,
	}
}

// StringField returns the named field of item when it is string-typed.
// ok is false for unknown or non-string fields.
type StringField[T any] func(item T, field string) (value string, ok bool)

// Sorted returns a sorted copy of items. Fields that are not string-typed
// compare equal, so the input order is kept.
func Sorted[T any](items []T, s Sort, field StringField[T]) []T {
	out := slices.Clone(items)
	if !s.Active() || len(out) < 2 {
		return out
	}

	// a Collator keeps iteration buffers and is not safe to share
	c := collate.New(language.English)
	slices.SortStableFunc(out, func(a, b T) int {
		av, aok := field(a, s.Field)
		bv, bok := field(b, s.Field)
		if !aok || !bok {
			return 0
		}
		if s.Dir == Desc {
			return c.CompareString(bv, av)
		}
		return c.CompareString(av, bv)
	})
	return out
}
