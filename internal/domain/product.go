package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateSlug   = errors.New("duplicate product slug")
	ErrEmptyCatalog    = errors.New("catalog is empty")
)

// Product is a single catalog record. Records are loaded once and never mutated.
type Product struct {
	ID          int64       `json:"id"`
	Slug        string      `json:"slug"`
	Title       string      `json:"title"`
	Category    string      `json:"category"`
	Tags        []string    `json:"tags"`
	Price       float64     `json:"price"`
	Description string      `json:"description,omitempty"`
	Images      []string    `json:"images"`
	Views       VariantSet  `json:"views,omitempty"`
	GLTF        ModelRef    `json:"gltf,omitempty"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
	SKU         string      `json:"sku,omitempty"`
}

// Dimensions are expressed in centimetres.
type Dimensions struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
	D float64 `json:"d"`
}

// HasTag reports exact membership, the way the tag filter compares.
func (p *Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DefaultVariant is the first variant name of Views, or "" when the product has none.
func (p *Product) DefaultVariant() string {
	if len(p.Views) == 0 {
		return ""
	}
	return p.Views[0].Name
}

// CatalogSource loads the full, ordered catalog in one go.
type CatalogSource interface {
	Load(ctx context.Context) ([]Product, error)
}

// CatalogReader is the read-only view of the loaded catalog.
type CatalogReader interface {
	All() []Product
	BySlug(slug string) (*Product, bool)
	Len() int
}
