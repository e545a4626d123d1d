package domain

// Pagination describes one page of a longer result list.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// SearchResult is one page of a catalog-wide text search.
type SearchResult struct {
	Query    string     `json:"query"`
	Products []Product  `json:"products"`
	Meta     Pagination `json:"meta"`
}

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)
