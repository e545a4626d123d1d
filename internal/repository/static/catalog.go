package static

import (
	"context"
	"embed"
	"fmt"
	"os"
	"strings"

	"interiorhub-web/internal/domain"

	"github.com/goccy/go-json"
)

//go:embed data/product.json data/content.yaml
var dataFS embed.FS

// Catalog is the immutable, ordered product list loaded at startup.
type Catalog struct {
	products []domain.Product
	bySlug   map[string]int
}

// NewCatalog indexes products by slug. Duplicate slugs are rejected;
// records without a slug are kept but cannot be looked up.
func NewCatalog(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: products,
		bySlug:   make(map[string]int, len(products)),
	}
	for i, p := range products {
		if p.Slug == "" {
			continue
		}
		if _, exists := c.bySlug[p.Slug]; exists {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateSlug, p.Slug)
		}
		c.bySlug[p.Slug] = i
	}
	return c, nil
}

// All returns the catalog in source order. Callers must not modify the records.
func (c *Catalog) All() []domain.Product {
	return c.products
}

func (c *Catalog) BySlug(slug string) (*domain.Product, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return nil, false
	}
	return &c.products[i], true
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// LoadCatalog pulls every record from src and indexes them.
func LoadCatalog(ctx context.Context, src domain.CatalogSource) (*Catalog, error) {
	products, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	return NewCatalog(products)
}

// DecodeProducts parses a product.json document.
func DecodeProducts(data []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i := range products {
		products[i].Slug = strings.TrimSpace(products[i].Slug)
		if products[i].Price < 0 {
			products[i].Price = 0
		}
	}
	return products, nil
}

type embeddedSource struct{}

// NewEmbeddedSource serves the catalog compiled into the binary.
func NewEmbeddedSource() domain.CatalogSource {
	return embeddedSource{}
}

func (embeddedSource) Load(ctx context.Context) ([]domain.Product, error) {
	data, err := dataFS.ReadFile("data/product.json")
	if err != nil {
		return nil, fmt.Errorf("read embedded catalog: %w", err)
	}
	return DecodeProducts(data)
}

type fileSource struct {
	path string
}

// NewFileSource reads product.json from disk.
func NewFileSource(path string) domain.CatalogSource {
	return fileSource{path: path}
}

func (s fileSource) Load(ctx context.Context) ([]domain.Product, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file %s: %w", s.path, err)
	}
	return DecodeProducts(data)
}

// ObjectGetter fetches an object body from a bucket.
type ObjectGetter interface {
	GetObject(ctx context.Context, key string) ([]byte, error)
}

type objectSource struct {
	store ObjectGetter
	key   string
}

// NewObjectSource reads product.json from object storage.
func NewObjectSource(store ObjectGetter, key string) domain.CatalogSource {
	return objectSource{store: store, key: key}
}

func (s objectSource) Load(ctx context.Context) ([]domain.Product, error) {
	data, err := s.store.GetObject(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog object %s: %w", s.key, err)
	}
	return DecodeProducts(data)
}
