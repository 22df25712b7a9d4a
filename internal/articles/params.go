package articles

import (
	"math"
	"net/url"
	"strconv"

	"newsdesk/internal/store"
)

const (
	// DefaultPage is the first page number.
	DefaultPage = 1
	// DefaultLimit is the page size used when none is given.
	DefaultLimit = 10
	// FeaturedLimit caps the featured listing.
	FeaturedLimit = 5

	// allCategories disables the category filter.
	allCategories = "all"
)

// ListParams are the optional listing inputs after parsing.
type ListParams struct {
	Category string
	Featured string
	Search   string
	Page     int
	Limit    int
}

// ParseListParams reads listing parameters from a query string. Page and
// limit that are missing, unparseable or below one fall back to their
// defaults; there is no upper bound on limit.
func ParseListParams(q url.Values) ListParams {
	return ListParams{
		Category: q.Get("category"),
		Featured: q.Get("featured"),
		Search:   q.Get("search"),
		Page:     positiveInt(q.Get("page"), DefaultPage),
		Limit:    positiveInt(q.Get("limit"), DefaultLimit),
	}
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Filter builds the store predicate. Category "all" and any featured value
// other than the literal "true" impose no restriction.
func (p ListParams) Filter() store.Filter {
	f := store.Filter{Search: p.Search}
	if p.Category != "" && p.Category != allCategories {
		f.Category = p.Category
	}
	if p.Featured == "true" {
		f.FeaturedOnly = true
	}
	return f
}

// Query builds the page request for these parameters.
func (p ListParams) Query() store.Query {
	page, limit := p.normalized()
	return store.Query{
		Filter: p.Filter(),
		Offset: offset(page, limit),
		Limit:  limit,
	}
}

// offset returns (page-1)*limit, saturating at math.MaxInt so that pages
// past the end stay empty instead of wrapping around.
func offset(page, limit int) int {
	if page-1 > math.MaxInt/limit {
		return math.MaxInt
	}
	return (page - 1) * limit
}

// normalized clamps values for callers that built ListParams by hand.
func (p ListParams) normalized() (page, limit int) {
	page, limit = p.Page, p.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// TotalPages returns ceil(total/limit).
func TotalPages(total, limit int) int {
	if limit < 1 || total <= 0 {
		return 0
	}
	n := total / limit
	if total%limit != 0 {
		n++
	}
	return n
}
