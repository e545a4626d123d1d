package usecase

import (
	"strings"

	"interiorhub-web/internal/domain"
	"interiorhub-web/pkg/utils"
)

// Strategy names, reported with every resolution
const (
	StrategyAlias       = "alias"
	StrategyCategory    = "category-slug"
	StrategyProductSlug = "product-slug"
	StrategyTag         = "tag"
	StrategyKeyword     = "keyword"
	StrategyToken       = "token"
	StrategyFallback    = "fallback"
	StrategyNone        = "none"
)

// DefaultCategoryAliases maps the home page category slugs to the labels used in the catalog.
var DefaultCategoryAliases = map[string][]string{
	"modular-kitchen":      {"Modular Kitchen", "Kitchen"},
	"3d-wall-panel":        {"3D Wall Panel", "3D Panel"},
	"pvc-ceiling-panel":    {"PVC Ceiling Panel", "PVC Ceiling"},
	"wpc-wall-panel":       {"WPC Wall Panel", "WPC Panel"},
	"charcoal-panel":       {"Charcoal Panel", "Charcoal Louver"},
	"luxury-shop-interior": {"Luxury Shop Interior", "Luxury Interiors", "Shop Interior"},
	"home-interior":        {"Home Interior"},
	"flat-interior":        {"Flat Interior"},
	"home-renovation":      {"Home Renovation"},
	"flat-renovation":      {"Flat Renovation"},
	"floated-wall-panel":   {"Floated Wall Panel", "Floating Wall Panel"},
}

var keywordStopwords = map[string]struct{}{
	"and":      {},
	"the":      {},
	"of":       {},
	"in":       {},
	"panel":    {},
	"interior": {},
}

// ResolveInput is what every strategy sees. AliasMatches is computed once up front since
// the keyword and fallback strategies reuse it.
type ResolveInput struct {
	Slug         string
	Catalog      []domain.Product
	AliasMatches []domain.Product
}

// MatchStrategy is one layer of the category resolver.
// ok=false means the next strategy is tried.
type MatchStrategy interface {
	Name() string
	Match(in ResolveInput) (matches []domain.Product, ok bool)
}

// Resolution is the resolver's answer for one slug.
type Resolution struct {
	Products []domain.Product
	Strategy string
}

// CategoryResolver maps a URL slug to catalog records by trying its strategies in order.
type CategoryResolver struct {
	aliases    map[string][]string
	strategies []MatchStrategy
}

func NewCategoryResolver(aliases map[string][]string) *CategoryResolver {
	if aliases == nil {
		aliases = DefaultCategoryAliases
	}
	return &CategoryResolver{
		aliases: aliases,
		strategies: []MatchStrategy{
			aliasStrategy{},
			categorySlugStrategy{},
			productSlugStrategy{},
			tagStrategy{},
			keywordStrategy{},
			tokenStrategy{},
			fallbackStrategy{},
		},
	}
}

// Strategies returns the strategy names in evaluation order.
func (r *CategoryResolver) Strategies() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}
	return names
}

// Resolve runs the strategies in order; the first that qualifies wins.
// The slug is trimmed and lower-cased once, so every strategy matches case-insensitively.
// The result never holds two records with the same slug.
func (r *CategoryResolver) Resolve(slug string, catalog []domain.Product) Resolution {
	in := ResolveInput{
		Slug:    strings.ToLower(strings.TrimSpace(slug)),
		Catalog: catalog,
	}
	if in.Slug == "" {
		return Resolution{Strategy: StrategyNone}
	}
	in.AliasMatches = matchAliases(r.aliases[in.Slug], catalog)

	for _, s := range r.strategies {
		if matches, ok := s.Match(in); ok {
			return Resolution{Products: dedupeBySlug(matches), Strategy: s.Name()}
		}
	}
	return Resolution{Strategy: StrategyNone}
}

func matchAliases(aliases []string, catalog []domain.Product) []domain.Product {
	if len(aliases) == 0 {
		return nil
	}
	wanted := make(map[string]struct{}, len(aliases))
	for _, a := range aliases {
		wanted[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}
	return filterProducts(catalog, func(p *domain.Product) bool {
		_, ok := wanted[strings.ToLower(strings.TrimSpace(p.Category))]
		return ok
	})
}

// 1. Alias table. Needs more than one record; a lone alias hit falls through.
type aliasStrategy struct{}

func (aliasStrategy) Name() string { return StrategyAlias }

func (aliasStrategy) Match(in ResolveInput) ([]domain.Product, bool) {
	return in.AliasMatches, len(in.AliasMatches) > 1
}

// 2. Slugified category label equals the slug. Needs more than one record.
type categorySlugStrategy struct{}

func (categorySlugStrategy) Name() string { return StrategyCategory }

func (categorySlugStrategy) Match(in ResolveInput) ([]domain.Product, bool) {
	matches := filterProducts(in.Catalog, func(p *domain.Product) bool {
		return utils.GenerateSlug(p.Category) == in.Slug
	})
	return matches, len(matches) > 1
}

// 3. The record's own slug. A single record is enough.
type productSlugStrategy struct{}

func (productSlugStrategy) Name() string { return StrategyProductSlug }

func (productSlugStrategy) Match(in ResolveInput) ([]domain.Product, bool) {
	matches := filterProducts(in.Catalog, func(p *domain.Product) bool {
		return p.Slug != "" && strings.EqualFold(p.Slug, in.Slug)
	})
	return matches, len(matches) > 0
}

// 4. Any tag equals the slug, raw or slugified. Needs more than one record.
type tagStrategy struct{}

func (tagStrategy) Name() string { return StrategyTag }

func (tagStrategy) Match(in ResolveInput) ([]domain.Product, bool) {
	matches := filterProducts(in.Catalog, func(p *domain.Product) bool {
		for _, t := range p.Tags {
			if strings.EqualFold(t, in.Slug) || utils.GenerateSlug(t) == in.Slug {
				return true
			}
		}
		return false
	})
	return matches, len(matches) > 1
}

// 5. Keyword substring over category, slug and tags, unioned with the alias hits.
type keywordStrategy struct{}

func (keywordStrategy) Name() string { return StrategyKeyword }

func (keywordStrategy) Match(in ResolveInput) ([]domain.Product, bool) {
	keywords := Keywords(in.Slug)
	if len(keywords) == 0 {
		return nil, false
	}
	matches := filterProducts(in.Catalog, func(p *domain.Product) bool {
		fields := make([]string, 0, len(p.Tags)+2)
		fields = append(fields, strings.ToLower(p.Category), strings.ToLower(p.Slug))
		for _, t := range p.Tags {
			fields = append(fields, strings.ToLower(t))
		}
		for _, kw := range keywords {
			for _, f := range fields {
				if strings.Contains(f, kw) {
					return true
				}
			}
		}
		return false
	})
	if len(matches) == 0 {
		return nil, false
	}
	union := make([]domain.Product, 0, len(in.AliasMatches)+len(matches))
	union = append(union, in.AliasMatches...)
	union = append(union, matches...)
	return union, true
}

// 6. Hyphen tokens of the slugified category or the record's slug contain the whole slug.
type tokenStrategy struct{}

func (tokenStrategy) Name() string { return StrategyToken }

func (tokenStrategy) Match(in ResolveInput) ([]domain.Product, bool) {
	matches := filterProducts(in.Catalog, func(p *domain.Product) bool {
		tokens := strings.Split(utils.GenerateSlug(p.Category), "-")
		tokens = append(tokens, strings.Split(strings.ToLower(p.Slug), "-")...)
		for _, tok := range tokens {
			if tok == in.Slug {
				return true
			}
		}
		return false
	})
	return matches, len(matches) > 0
}

// 7. Whatever the alias table produced, possibly a single record.
type fallbackStrategy struct{}

func (fallbackStrategy) Name() string { return StrategyFallback }

func (fallbackStrategy) Match(in ResolveInput) ([]domain.Product, bool) {
	return in.AliasMatches, len(in.AliasMatches) > 0
}

// Keywords splits a slug on hyphens and drops stopwords and one-letter tokens.
func Keywords(slug string) []string {
	var out []string
	for _, tok := range strings.Split(strings.ToLower(slug), "-") {
		if len(tok) <= 1 {
			continue
		}
		if _, stop := keywordStopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func filterProducts(catalog []domain.Product, keep func(p *domain.Product) bool) []domain.Product {
	var out []domain.Product
	for i := range catalog {
		if keep(&catalog[i]) {
			out = append(out, catalog[i])
		}
	}
	return out
}

// dedupeBySlug keeps the first record per slug. Slugless records are kept as they are.
func dedupeBySlug(products []domain.Product) []domain.Product {
	seen := make(map[string]struct{}, len(products))
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Slug != "" {
			if _, dup := seen[p.Slug]; dup {
				continue
			}
			seen[p.Slug] = struct{}{}
		}
		out = append(out, p)
	}
	return out
}
