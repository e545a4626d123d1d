package usecase

import (
	"context"
	"fmt"
	"time"

	"interiorhub-web/internal/domain"
	"interiorhub-web/internal/infrastructure/metrics"
	"interiorhub-web/pkg/utils"
)

type DesignUsecase struct {
	repo    domain.DesignRepository
	catalog domain.CatalogReader
	now     func() time.Time
}

func NewDesignUsecase(repo domain.DesignRepository, catalog domain.CatalogReader) *DesignUsecase {
	return &DesignUsecase{
		repo:    repo,
		catalog: catalog,
		now:     time.Now,
	}
}

// Save appends a design for the product and the variant on screen.
// An unknown or empty variant is stored as the product's default variant.
func (u *DesignUsecase) Save(ctx context.Context, visitorID, productSlug, variant string) (*domain.SavedDesign, error) {
	product, ok := u.catalog.BySlug(productSlug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productSlug)
	}

	design := domain.SavedDesign{
		ID:        utils.GenerateUUID(),
		Product:   product.Slug,
		Variant:   ActiveVariant(product, variant),
		CreatedAt: u.now().UTC(),
	}
	if err := u.repo.Append(ctx, visitorID, design); err != nil {
		return nil, err
	}
	metrics.SavedDesigns.Inc()
	return &design, nil
}

// List returns the visitor's designs, newest first.
func (u *DesignUsecase) List(ctx context.Context, visitorID string) ([]domain.SavedDesign, error) {
	return u.repo.List(ctx, visitorID)
}
