package usecase

import (
	"net/url"
	"testing"

	"interiorhub-web/internal/domain"

	"github.com/stretchr/testify/require"
)

var filterFixture = []domain.Product{
	{ID: 1, Slug: "glossy", Title: "Glossy Kitchen", Category: "Modular Kitchen", Tags: []string{"HDHMR", "Glossy"}, Price: 185000},
	{ID: 2, Slug: "oak", Title: "Wooden Kitchen", Category: "Modular Kitchen", Tags: []string{"Wooden", "Oak Finish"}, Price: 245000},
	{ID: 3, Slug: "alu", Title: "Aluminium Kitchen", Category: "Modular Kitchen", Tags: []string{"Aluminium", "Waterproof"}, Price: 135000, Description: "Rust free frame"},
	{ID: 4, Slug: "free", Title: "Sample Board", Category: "Samples", Tags: []string{"Glossy", "HDHMR"}},
}

var fullRange = domain.PriceRange{Min: 0, Max: 1000000}

func TestQueryMatchesTagsCaseInsensitively(t *testing.T) {
	t.Parallel()

	got := ApplyFilters(filterFixture, "  OAK ", nil, fullRange, domain.SortRelevance)
	require.Equal(t, []string{"oak"}, slugs(got))

	got = ApplyFilters(filterFixture, "rust", nil, fullRange, domain.SortRelevance)
	require.Equal(t, []string{"alu"}, slugs(got))

	got = ApplyFilters(filterFixture, "", nil, fullRange, domain.SortRelevance)
	require.Len(t, got, len(filterFixture))
}

func TestTagFilterIsIntersection(t *testing.T) {
	t.Parallel()

	got := ApplyFilters(filterFixture, "", []string{"Glossy", "HDHMR"}, fullRange, domain.SortRelevance)
	require.Equal(t, []string{"glossy", "free"}, slugs(got))

	got = ApplyFilters(filterFixture, "", []string{"Glossy", "Wooden"}, fullRange, domain.SortRelevance)
	require.Empty(t, got)

	for _, p := range ApplyFilters(filterFixture, "", []string{"HDHMR"}, fullRange, domain.SortRelevance) {
		require.True(t, p.HasTag("HDHMR"))
	}
}

func TestPriceRangeIsInclusive(t *testing.T) {
	t.Parallel()

	r := domain.PriceRange{Min: 135000, Max: 185000}
	got := ApplyFilters(filterFixture, "", nil, r, domain.SortRelevance)
	require.Equal(t, []string{"glossy", "alu"}, slugs(got))
	for _, p := range got {
		require.True(t, p.Price >= r.Min && p.Price <= r.Max)
	}

	// missing price counts as 0
	got = ApplyFilters(filterFixture, "", nil, domain.PriceRange{Min: 0, Max: 0}, domain.SortRelevance)
	require.Equal(t, []string{"free"}, slugs(got))
}

func TestSortOrders(t *testing.T) {
	t.Parallel()

	asc := ApplyFilters(filterFixture, "", nil, fullRange, domain.SortPriceAsc)
	desc := ApplyFilters(filterFixture, "", nil, fullRange, domain.SortPriceDesc)
	require.Equal(t, []string{"free", "alu", "glossy", "oak"}, slugs(asc))

	reversed := slugs(desc)
	for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
		reversed[i], reversed[j] = reversed[j], reversed[i]
	}
	require.Equal(t, slugs(asc), reversed)

	newest := ApplyFilters(filterFixture, "", nil, fullRange, domain.SortNewest)
	require.Equal(t, []string{"free", "alu", "oak", "glossy"}, slugs(newest))

	relevance := ApplyFilters(filterFixture, "", nil, fullRange, "bogus")
	require.Equal(t, []string{"glossy", "oak", "alu", "free"}, slugs(relevance))
}

func TestApplyFiltersLeavesInputUntouched(t *testing.T) {
	t.Parallel()

	in := append([]domain.Product(nil), filterFixture...)
	ApplyFilters(in, "", nil, fullRange, domain.SortPriceDesc)
	require.Equal(t, slugs(filterFixture), slugs(in))
}

func TestAvailableTagsAndBounds(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"HDHMR", "Glossy", "Wooden", "Oak Finish", "Aluminium", "Waterproof"}, AvailableTags(filterFixture))
	require.Equal(t, domain.PriceRange{Min: 0, Max: 245000}, PriceBounds(filterFixture))
	require.Equal(t, domain.PriceRange{Min: 0, Max: 1000000}, PriceBounds(nil))
	require.Equal(t, []string{}, AvailableTags(nil))
}

func TestFilterStateFromQuery(t *testing.T) {
	t.Parallel()

	state := FilterStateFromQuery(url.Values{
		"q":         {"oak"},
		"tag":       {"Wooden", " ", "Oak Finish"},
		"min_price": {"1000"},
		"max_price": {"250000"},
		"sort":      {"price-desc"},
		"filters":   {"1"},
	})
	require.Equal(t, "oak", state.Query)
	require.Equal(t, []string{"Wooden", "Oak Finish"}, state.Tags)
	require.Equal(t, &domain.PriceRange{Min: 1000, Max: 250000}, state.Price)
	require.Equal(t, domain.SortPriceDesc, state.Sort)
	require.True(t, state.ShowFilters)

	// min > max never reaches the filter
	state = FilterStateFromQuery(url.Values{"min_price": {"500"}, "max_price": {"100"}})
	require.Nil(t, state.Price)

	// malformed numbers read as 0
	state = FilterStateFromQuery(url.Values{"min_price": {"abc"}})
	require.Equal(t, &domain.PriceRange{Min: 0, Max: domain.DefaultMaxPrice}, state.Price)

	state = FilterStateFromQuery(url.Values{"sort": {"cheapest"}})
	require.Equal(t, domain.SortRelevance, state.Sort)
	require.Nil(t, state.Price)
}
