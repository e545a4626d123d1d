package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"interiorhub-web/config"
	"interiorhub-web/internal/domain"
	"interiorhub-web/pkg/cache"
)

type SitemapItem struct {
	Loc        string
	LastMod    string
	ChangeFreq string
	Priority   float32
	Images     []string // absolute gallery image URLs, product pages only
}

type SitemapUsecase struct {
	catalog domain.CatalogReader
	content *ContentUsecase
	baseURL string
	cache   cache.CacheService
	cfg     *config.Config
}

func NewSitemapUsecase(catalog domain.CatalogReader, content *ContentUsecase, baseURL string, cache cache.CacheService, cfg *config.Config) *SitemapUsecase {
	return &SitemapUsecase{
		catalog: catalog,
		content: content,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cache:   cache,
		cfg:     cfg,
	}
}

func (u *SitemapUsecase) GenerateSitemap(ctx context.Context) ([]SitemapItem, error) {
	key := "sitemap:items"
	if items, found := cache.GetAs[[]SitemapItem](u.cache, key); found {
		return items, nil
	}

	var items []SitemapItem
	now := time.Now().Format("2006-01-02")

	// 1. Static Pages
	statics := []string{"", domain.RouteContact, domain.RouteBlog} // Empty string for root
	for _, s := range statics {
		items = append(items, SitemapItem{
			Loc:        u.baseURL + s,
			LastMod:    now,
			ChangeFreq: "weekly",
			Priority:   0.8,
		})
	}
	// Root has higher priority
	items[0].Priority = 1.0

	// 2. Home page categories
	categories, err := u.content.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	for _, c := range categories {
		items = append(items, SitemapItem{
			Loc:        fmt.Sprintf("%s%s%s", u.baseURL, domain.RouteCategory, c.Slug),
			LastMod:    now,
			ChangeFreq: "daily",
			Priority:   0.8,
		})
	}

	// 3. Products
	for _, p := range u.catalog.All() {
		if p.Slug == "" {
			continue
		}
		items = append(items, SitemapItem{
			Loc:        fmt.Sprintf("%s%s%s", u.baseURL, domain.RouteProduct, p.Slug),
			LastMod:    now,
			ChangeFreq: "weekly",
			Priority:   0.9,
			Images:     u.absoluteImages(p.Images),
		})
	}

	u.cache.Set(key, items, u.cfg.CacheSitemapTTL)
	return items, nil
}

// absoluteImages resolves root-relative gallery paths against the site URL; remote URLs pass through.
func (u *SitemapUsecase) absoluteImages(images []string) []string {
	var out []string
	for _, img := range images {
		switch {
		case strings.HasPrefix(img, "/"):
			out = append(out, u.baseURL+img)
		case strings.HasPrefix(img, "http://"), strings.HasPrefix(img, "https://"):
			out = append(out, img)
		}
	}
	return out
}
