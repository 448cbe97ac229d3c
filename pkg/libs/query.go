package libs

import (
	"net/url"
	"strconv"
)

// ListParams expresses the pagination and search options forwarded to list
// endpoints.
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// NewListParams creates empty list parameters.
func NewListParams() *ListParams {
	return &ListParams{}
}

// WithPage sets the page number.
func (p *ListParams) WithPage(page int) *ListParams {
	p.Page = page

	return p
}

// WithLimit sets the page size.
func (p *ListParams) WithLimit(limit int) *ListParams {
	p.Limit = limit

	return p
}

// WithSearch sets the free-text search filter.
func (p *ListParams) WithSearch(search string) *ListParams {
	p.Search = search

	return p
}

// ToValues converts the parameters to URL query values. Unset pagination
// falls back to the backend defaults (page 1, limit 10); an empty search is
// omitted entirely.
func (p *ListParams) ToValues() url.Values {
	values := url.Values{}

	page := p.Page
	if page <= 0 {
		page = 1
	}

	limit := p.Limit
	if limit <= 0 {
		limit = 10
	}

	values.Set("page", strconv.Itoa(page))
	values.Set("limit", strconv.Itoa(limit))

	if p.Search != "" {
		values.Set("search", p.Search)
	}

	return values
}

// GetOptions tunes a single detail read.
type GetOptions struct {
	// Short requests the reduced-field projection: identity and name only.
	Short bool

	// SkipCache bypasses the read-through cache for this call.
	SkipCache bool
}
