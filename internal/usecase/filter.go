package usecase

import (
	"sort"
	"strings"

	"interiorhub-web/internal/domain"
)

// ApplyFilters narrows and orders a candidate list. The input slice is not modified.
func ApplyFilters(candidates []domain.Product, query string, tags []string, price domain.PriceRange, sortKey string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.Product, 0, len(candidates))
	for i := range candidates {
		p := &candidates[i]
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if !hasAllTags(p, tags) {
			continue
		}
		if !price.Contains(p.Price) {
			continue
		}
		out = append(out, *p)
	}

	SortProducts(out, sortKey)
	return out
}

// SortProducts orders in place. Relevance and unknown keys keep input order.
func SortProducts(products []domain.Product, sortKey string) {
	switch sortKey {
	case domain.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price < products[j].Price })
	case domain.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool { return products[i].Price > products[j].Price })
	case domain.SortNewest:
		sort.SliceStable(products, func(i, j int) bool { return products[i].ID > products[j].ID })
	}
}

// NormalizeSort maps unknown sort keys to relevance.
func NormalizeSort(sortKey string) string {
	for _, k := range domain.SortKeys {
		if k == sortKey {
			return k
		}
	}
	return domain.SortRelevance
}

func matchesQuery(p *domain.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Title), q) ||
		strings.Contains(strings.ToLower(p.Category), q) ||
		strings.Contains(strings.ToLower(strings.Join(p.Tags, " ")), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}

func hasAllTags(p *domain.Product, tags []string) bool {
	for _, t := range tags {
		if !p.HasTag(t) {
			return false
		}
	}
	return true
}

// AvailableTags is the union of tags over the list, first-seen order.
func AvailableTags(products []domain.Product) []string {
	seen := make(map[string]struct{})
	tags := []string{}
	for _, p := range products {
		for _, t := range p.Tags {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			tags = append(tags, t)
		}
	}
	return tags
}

// PriceBounds is [min, max] of the list's prices, or the default bounds for an empty list.
func PriceBounds(products []domain.Product) domain.PriceRange {
	if len(products) == 0 {
		return domain.PriceRange{Min: domain.DefaultMinPrice, Max: domain.DefaultMaxPrice}
	}
	bounds := domain.PriceRange{Min: products[0].Price, Max: products[0].Price}
	for _, p := range products[1:] {
		if p.Price < bounds.Min {
			bounds.Min = p.Price
		}
		if p.Price > bounds.Max {
			bounds.Max = p.Price
		}
	}
	return bounds
}
