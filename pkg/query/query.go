// Package query implements the inventory list pipeline: normalize raw
// query-string parameters, then filter → sort → paginate a record slice in
// three total stages. The pipeline is pure — it never mutates its input and
// never fails; malformed parameters normalize to defaults.
//
// It is deliberately parameterized by field accessors instead of a concrete
// record type, so every caller shares one implementation of the category
// filter, the free-text search, and the sort semantics.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/stockroomhq/stockroom/pkg/collection"
)

const (
	SortByName     = "name"
	SortByPrice    = "price"
	SortByQuantity = "quantity"

	SortAsc  = "asc"
	SortDesc = "desc"

	// CategoryAll is the category sentinel that disables the filter.
	CategoryAll = "all"

	DefaultLimit = 5
	MaxLimit     = 100
)

// Params is the normalized set of list-query inputs. Build one with
// ParseParams; a zero Params is not valid (Page and Limit would be 0).
type Params struct {
	Search   string
	Category string
	SortBy   string
	SortDir  string
	Page     int
	Limit    int
}

// ParseParams normalizes raw query-string values:
//
//	search   trimmed, default ""
//	category lower-cased, default "all"
//	sortBy   name|price|quantity, anything else → "name"
//	sortDir  "desc" if exactly that, else "asc"
//	page     positive integer, else 1
//	limit    integer clamped to [1,100], unparseable → 5
//
// Every input becomes valid here, which is why the pipeline itself has no
// error path.
func ParseParams(q url.Values) Params {
	p := Params{
		Search:   strings.TrimSpace(q.Get("search")),
		Category: strings.ToLower(strings.TrimSpace(q.Get("category"))),
		SortBy:   strings.ToLower(strings.TrimSpace(q.Get("sortBy"))),
		SortDir:  SortAsc,
		Page:     1,
		Limit:    DefaultLimit,
	}

	if p.Category == "" {
		p.Category = CategoryAll
	}

	switch p.SortBy {
	case SortByName, SortByPrice, SortByQuantity:
	default:
		p.SortBy = SortByName
	}

	if strings.ToLower(strings.TrimSpace(q.Get("sortDir"))) == SortDesc {
		p.SortDir = SortDesc
	}

	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Page = n
	}

	if n, err := strconv.Atoi(q.Get("limit")); err == nil {
		p.Limit = clamp(n, 1, MaxLimit)
	}

	return p
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Fields supplies the accessors the pipeline needs from a record type.
type Fields[T any] struct {
	Name        func(T) string
	SKU         func(T) string
	Description func(T) string
	Category    func(T) string
	Price       func(T) float64
	Quantity    func(T) int
}

// Result is one page of matches plus the total match count.
type Result[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Apply runs the three-stage pipeline over records.
//
// Filter: a record survives iff its category equals p.Category (or the
// category is "all") AND the lower-cased search term is empty or a substring
// of its name, SKU, or description. Sort: by the chosen field — names
// compare case-folded lexicographically, price and quantity numerically —
// and stable, so equal keys keep their filtered order and pagination stays
// deterministic across repeated identical queries. Paginate: the
// (p.Page-1)*p.Limit offset; pages past the end yield empty items with
// Total unchanged.
func Apply[T any](records []T, p Params, f Fields[T]) Result[T] {
	matched := collection.Filter(records, func(r T) bool {
		return matchCategory(r, p.Category, f) && matchSearch(r, p.Search, f)
	})

	collection.SortByStable(matched, compare(p, f))

	items := collection.Paginate(matched, p.Page, p.Limit)
	if items == nil {
		items = []T{}
	}

	return Result[T]{
		Items: items,
		Total: len(matched),
		Page:  p.Page,
		Limit: p.Limit,
	}
}

func matchCategory[T any](r T, category string, f Fields[T]) bool {
	return category == CategoryAll || f.Category(r) == category
}

func matchSearch[T any](r T, search string, f Fields[T]) bool {
	term := strings.ToLower(search)
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(f.Name(r)), term) ||
		strings.Contains(strings.ToLower(f.SKU(r)), term) ||
		strings.Contains(strings.ToLower(f.Description(r)), term)
}

func compare[T any](p Params, f Fields[T]) func(a, b T) bool {
	var less func(a, b T) bool

	switch p.SortBy {
	case SortByPrice:
		less = func(a, b T) bool { return f.Price(a) < f.Price(b) }
	case SortByQuantity:
		less = func(a, b T) bool { return f.Quantity(a) < f.Quantity(b) }
	default:
		// Case-folded byte-wise comparison; no locale tables. Stability
		// comes from the stable sort, not from tie-breaking here.
		less = func(a, b T) bool {
			return strings.ToLower(f.Name(a)) < strings.ToLower(f.Name(b))
		}
	}

	if p.SortDir == SortDesc {
		asc := less
		return func(a, b T) bool { return asc(b, a) }
	}
	return less
}
