package usecase

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"interiorhub-web/config"
	"interiorhub-web/internal/domain"
	"interiorhub-web/pkg/cache"
	"interiorhub-web/pkg/utils"
)

const DefaultThumbWidth = 480

// Thumbnail is an encoded, resized gallery image.
type Thumbnail struct {
	Data        []byte
	ContentType string
}

type MediaUsecase struct {
	assetsDir string
	cache     cache.CacheService
	cfg       *config.Config
}

func NewMediaUsecase(assetsDir string, cache cache.CacheService, cfg *config.Config) *MediaUsecase {
	return &MediaUsecase{
		assetsDir: assetsDir,
		cache:     cache,
		cfg:       cfg,
	}
}

// ThumbWidth clamps a requested width to [1, MaxThumbWidth]; 0 or garbage means the default.
func (u *MediaUsecase) ThumbWidth(requested int) int {
	if requested <= 0 {
		requested = DefaultThumbWidth
	}
	if u.cfg.MaxThumbWidth > 0 && requested > u.cfg.MaxThumbWidth {
		return u.cfg.MaxThumbWidth
	}
	return requested
}

// Thumbnail resizes an image below the assets directory. Paths cannot leave that directory.
func (u *MediaUsecase) Thumbnail(ctx context.Context, imagePath string, width int) (*Thumbnail, error) {
	clean := strings.TrimPrefix(path.Clean("/"+imagePath), "/")
	if clean == "" || !utils.IsImagePath(strings.ToLower(filepath.Ext(clean))) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedMedia, imagePath)
	}
	width = u.ThumbWidth(width)

	key := fmt.Sprintf("thumb:%s:%d", clean, width)
	if thumb, found := cache.GetAs[*Thumbnail](u.cache, key); found {
		return thumb, nil
	}

	f, err := os.OpenInRoot(u.assetsDir, filepath.FromSlash(clean))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrMediaNotFound, clean)
		}
		return nil, fmt.Errorf("open %s: %w", clean, err)
	}
	defer f.Close()

	data, contentType, err := utils.ResizeToWebP(f, width)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedMedia, err)
	}

	thumb := &Thumbnail{Data: data, ContentType: contentType}
	u.cache.Set(key, thumb, u.cfg.CacheThumbTTL)
	return thumb, nil
}
