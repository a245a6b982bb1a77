package catalog

// Package catalog contains domain types for the product catalog. Products are
// never created or mutated locally: this service is a pass-through view of
// upstream state, and the types here only describe the wire shape.

import "strconv"

// Product is the sole domain entity. The upstream API owns the authoritative
// copy and assigns ProductID.
type Product struct {
	ProductID   string  `json:"product_id,omitempty"`
	Title       string  `json:"product_title"`
	Price       float64 `json:"product_price"`
	Description string  `json:"product_description,omitempty"`
	Category    string  `json:"product_category,omitempty"`
	Image       string  `json:"product_image,omitempty"`
}

// Pagination defaults for list queries.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListQuery captures the 1-based page/limit client convention for listing
// products, plus an optional search term.
type ListQuery struct {
	Page   int
	Limit  int
	Search string
}

// NewListQuery parses page and limit strings, substituting defaults for
// missing or non-integer values.
func NewListQuery(page, limit, search string) ListQuery {
	q := ListQuery{Page: DefaultPage, Limit: DefaultLimit, Search: search}
	if v, err := strconv.Atoi(page); err == nil && page != "" {
		q.Page = v
	}
	if v, err := strconv.Atoi(limit); err == nil && limit != "" {
		q.Limit = v
	}
	return q
}

// Offset converts the 1-based page/limit pair to the 0-based offset the
// upstream convention expects. Page or limit values below 1 are not clamped;
// a zero or negative page yields a negative offset that is forwarded as-is,
// matching historical behavior.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}
