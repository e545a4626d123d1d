package usecase

import (
	"context"

	"interiorhub-web/config"
	"interiorhub-web/internal/domain"
	"interiorhub-web/pkg/cache"
)

const contentCacheKey = "content:site"

type ContentUsecase struct {
	repo  domain.ContentRepository
	cache cache.CacheService
	cfg   *config.Config
}

func NewContentUsecase(repo domain.ContentRepository, cache cache.CacheService, cfg *config.Config) *ContentUsecase {
	return &ContentUsecase{
		repo:  repo,
		cache: cache,
		cfg:   cfg,
	}
}

func (u *ContentUsecase) content(ctx context.Context) (*domain.SiteContent, error) {
	if c, found := cache.GetAs[*domain.SiteContent](u.cache, contentCacheKey); found {
		return c, nil
	}
	c, err := u.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	u.cache.Set(contentCacheKey, c, u.cfg.CacheCategoryTTL)
	return c, nil
}

// Categories are the fixed home page tiles.
func (u *ContentUsecase) Categories(ctx context.Context) ([]domain.CategoryTile, error) {
	c, err := u.content(ctx)
	if err != nil {
		return nil, err
	}
	return c.Categories, nil
}

// Videos are the project walkthroughs shown on the blog page.
func (u *ContentUsecase) Videos(ctx context.Context) ([]domain.Video, error) {
	c, err := u.content(ctx)
	if err != nil {
		return nil, err
	}
	return c.Videos, nil
}
