package usecase

import (
	"context"
	"math"
	"strings"

	"interiorhub-web/internal/domain"
	"interiorhub-web/pkg/logger"
)

// SearchUsecase runs the free-text query over the whole catalog, in catalog order.
type SearchUsecase struct {
	catalog domain.CatalogReader
}

func NewSearchUsecase(catalog domain.CatalogReader) *SearchUsecase {
	return &SearchUsecase{catalog: catalog}
}

func (u *SearchUsecase) Search(ctx context.Context, query string, page, limit int) *domain.SearchResult {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = domain.DefaultSearchLimit
	}
	if limit > domain.MaxSearchLimit {
		limit = domain.MaxSearchLimit
	}

	result := &domain.SearchResult{
		Query:    strings.TrimSpace(query),
		Products: []domain.Product{},
		Meta:     domain.Pagination{Page: page, Limit: limit},
	}
	// An empty query lists nothing rather than the whole catalog
	if result.Query == "" {
		return result
	}

	everything := domain.PriceRange{Min: 0, Max: math.MaxFloat64}
	matches := ApplyFilters(u.catalog.All(), result.Query, nil, everything, domain.SortRelevance)

	total := len(matches)
	result.Meta.TotalItems = total
	result.Meta.TotalPages = (total + limit - 1) / limit

	offset := (page - 1) * limit
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		result.Products = matches[offset:end]
	}

	logger.WithContext(ctx).Debug().
		Str("query", result.Query).
		Int("matches", total).
		Msg("Catalog searched")
	return result
}
