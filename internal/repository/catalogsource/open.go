package catalogsource

import (
	"context"
	"fmt"

	"interiorhub-web/config"
	"interiorhub-web/internal/domain"
	"interiorhub-web/internal/repository/pgxrepo"
	"interiorhub-web/internal/repository/static"
	"interiorhub-web/pkg/storage"
)

// Open returns the catalog source selected by CATALOG_SOURCE. The close func releases
// whatever connection the source holds and is never nil.
func Open(ctx context.Context, cfg *config.Config) (domain.CatalogSource, func(), error) {
	noop := func() {}

	switch cfg.CatalogSource {
	case config.CatalogSourceEmbedded, "":
		return static.NewEmbeddedSource(), noop, nil

	case config.CatalogSourceFile:
		return static.NewFileSource(cfg.CatalogFile), noop, nil

	case config.CatalogSourceR2:
		r2, err := NewR2(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return static.NewObjectSource(r2, cfg.CatalogObjectKey), noop, nil

	case config.CatalogSourcePostgres:
		pool, err := pgxrepo.NewPgxPool(ctx, cfg)
		if err != nil {
			return nil, noop, err
		}
		return pgxrepo.NewCatalogRepository(pool), pool.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown catalog source %q", cfg.CatalogSource)
}

// NewR2 connects to the configured bucket.
func NewR2(ctx context.Context, cfg *config.Config) (*storage.R2Storage, error) {
	r2, err := storage.NewR2Storage(
		ctx,
		cfg.R2AccountID,
		cfg.R2AccessKeyID,
		cfg.R2AccessKeySecret,
		cfg.R2BucketName,
		cfg.R2PublicURL,
		cfg.R2Timeout,
	)
	if err != nil {
		return nil, fmt.Errorf("init R2 storage: %w", err)
	}
	return r2, nil
}
