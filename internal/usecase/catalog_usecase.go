package usecase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"interiorhub-web/config"
	"interiorhub-web/internal/domain"
	"interiorhub-web/internal/infrastructure/metrics"
	"interiorhub-web/pkg/cache"
	"interiorhub-web/pkg/logger"
	"interiorhub-web/pkg/utils"
)

type CatalogUsecase struct {
	catalog  domain.CatalogReader
	resolver *CategoryResolver
	cache    cache.CacheService
	cfg      *config.Config
}

func NewCatalogUsecase(catalog domain.CatalogReader, resolver *CategoryResolver, cache cache.CacheService, cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		catalog:  catalog,
		resolver: resolver,
		cache:    cache,
		cfg:      cfg,
	}
}

// ListProducts returns the whole catalog in source order.
func (u *CatalogUsecase) ListProducts(ctx context.Context) []domain.Product {
	return u.catalog.All()
}

// Featured is the home page selection: the first products of the catalog.
func (u *CatalogUsecase) Featured(ctx context.Context) []domain.Product {
	all := u.catalog.All()
	if len(all) > domain.FeaturedProductCount {
		return all[:domain.FeaturedProductCount]
	}
	return all
}

func (u *CatalogUsecase) GetProductDetails(ctx context.Context, slug string) (*domain.Product, error) {
	product, ok := u.catalog.BySlug(slug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, slug)
	}
	return product, nil
}

// ResolveCategory runs the category resolver. Results are cached per slug since the catalog never changes.
func (u *CatalogUsecase) ResolveCategory(ctx context.Context, slug string) Resolution {
	key := fmt.Sprintf("category:resolve:%s", strings.ToLower(strings.TrimSpace(slug)))
	if res, found := cache.GetAs[Resolution](u.cache, key); found {
		return res
	}

	res := u.resolver.Resolve(slug, u.catalog.All())
	metrics.ResolverStrategy.WithLabelValues(res.Strategy).Inc()
	logger.WithContext(ctx).Debug().
		Str("slug", slug).
		Str("strategy", res.Strategy).
		Int("matches", len(res.Products)).
		Msg("Category resolved")

	u.cache.Set(key, res, u.cfg.CacheCategoryTTL)
	return res
}

// ListCategory resolves the slug into a candidate list and applies the visitor's filter state.
func (u *CatalogUsecase) ListCategory(ctx context.Context, slug string, state domain.FilterState) *domain.CategoryListing {
	// 1. Candidates: resolver result, or the whole catalog when nothing matched
	res := u.ResolveCategory(ctx, slug)
	candidates := res.Products
	fallback := false
	if len(candidates) == 0 {
		candidates = u.catalog.All()
		fallback = true
	}

	// 2. Bounds follow the resolver result; an empty result gets the default bounds
	bounds := PriceBounds(res.Products)
	applied := bounds
	if state.Price != nil && state.Price.Valid() {
		applied = *state.Price
	}

	// 3. Filter + sort
	sortKey := NormalizeSort(state.Sort)
	products := ApplyFilters(candidates, state.Query, state.Tags, applied, sortKey)

	activeTags := state.Tags
	if activeTags == nil {
		activeTags = []string{}
	}

	return &domain.CategoryListing{
		Slug:        slug,
		Title:       strings.ToUpper(utils.Unslug(slug)),
		Strategy:    res.Strategy,
		Fallback:    fallback,
		Products:    products,
		Total:       len(products),
		Tags:        AvailableTags(candidates),
		PriceBounds: bounds,
		Applied:     applied,
		Sort:        sortKey,
		Query:       state.Query,
		ActiveTags:  activeTags,
	}
}

// Related returns products sharing the category or any tag, excluding the product itself.
func (u *CatalogUsecase) Related(ctx context.Context, slug string) ([]domain.Product, error) {
	product, err := u.GetProductDetails(ctx, slug)
	if err != nil {
		return nil, err
	}

	related := []domain.Product{}
	for _, p := range u.catalog.All() {
		if p.Slug == product.Slug {
			continue
		}
		if p.Category == product.Category || sharesTag(&p, product) {
			related = append(related, p)
			if len(related) == domain.RelatedProductLimit {
				break
			}
		}
	}
	return related, nil
}

func sharesTag(a, b *domain.Product) bool {
	for _, t := range a.Tags {
		if b.HasTag(t) {
			return true
		}
	}
	return false
}

// FilterStateFromQuery reads the filter state of a category visit from its query string:
// q, tag (repeatable), min_price, max_price, sort, filters.
// A price range with min > max is rejected and left unset.
func FilterStateFromQuery(values url.Values) domain.FilterState {
	state := domain.FilterState{
		Query:       values.Get("q"),
		Sort:        NormalizeSort(values.Get("sort")),
		ShowFilters: values.Get("filters") == "1",
	}
	for _, t := range values["tag"] {
		if t = strings.TrimSpace(t); t != "" {
			state.Tags = append(state.Tags, t)
		}
	}

	_, hasMin := values["min_price"]
	_, hasMax := values["max_price"]
	if hasMin || hasMax {
		r := domain.PriceRange{Min: domain.DefaultMinPrice, Max: domain.DefaultMaxPrice}
		if hasMin {
			r.Min = utils.ParseFloat(values.Get("min_price"))
		}
		if hasMax {
			r.Max = utils.ParseFloat(values.Get("max_price"))
		}
		if r.Valid() {
			state.Price = &r
		}
	}
	return state
}
