package domain

// PriceRange is an inclusive [Min, Max] bound.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Contains reports whether price lies within the inclusive bounds.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

// Valid reports whether the range is non-empty.
func (r PriceRange) Valid() bool {
	return r.Min <= r.Max
}

// FilterState is the per-visit state of a category page. It lives in the query
// string, so navigating to a different slug starts from a fresh state.
type FilterState struct {
	Query       string
	Tags        []string
	Price       *PriceRange // nil = candidate list bounds
	Sort        string
	ShowFilters bool
}

// CategoryListing is the rendered result of a category page visit.
type CategoryListing struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Strategy    string     `json:"strategy"`
	Fallback    bool       `json:"fallback"` // candidate list is the whole catalog
	Products    []Product  `json:"products"`
	Total       int        `json:"total"`
	Tags        []string   `json:"tags"`
	PriceBounds PriceRange `json:"priceBounds"`
	Applied     PriceRange `json:"appliedPrice"`
	Sort        string     `json:"sort"`
	Query       string     `json:"query"`
	ActiveTags  []string   `json:"activeTags"`
}
