package pgxrepo

import (
	"context"
	"fmt"

	"interiorhub-web/internal/domain"

	"github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema is the products table the Postgres catalog source reads from.
const Schema = `
CREATE TABLE IF NOT EXISTS catalog_products (
	id          BIGINT PRIMARY KEY,
	position    INTEGER NOT NULL,
	slug        TEXT UNIQUE,
	title       TEXT NOT NULL DEFAULT '',
	category    TEXT NOT NULL DEFAULT '',
	tags        TEXT[] NOT NULL DEFAULT '{}',
	price       NUMERIC(12,2) NOT NULL DEFAULT 0,
	description TEXT NOT NULL DEFAULT '',
	images      TEXT[] NOT NULL DEFAULT '{}',
	views       JSONB,
	gltf        JSONB,
	dimensions  JSONB,
	sku         TEXT NOT NULL DEFAULT ''
);`

const selectProducts = `
SELECT id, slug, title, category, tags, price::float8, description, images, views, gltf, dimensions, sku
FROM catalog_products
ORDER BY position, id`

const upsertProduct = `
INSERT INTO catalog_products (id, position, slug, title, category, tags, price, description, images, views, gltf, dimensions, sku)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id) DO UPDATE SET
	position = EXCLUDED.position, slug = EXCLUDED.slug, title = EXCLUDED.title,
	category = EXCLUDED.category, tags = EXCLUDED.tags, price = EXCLUDED.price,
	description = EXCLUDED.description, images = EXCLUDED.images, views = EXCLUDED.views,
	gltf = EXCLUDED.gltf, dimensions = EXCLUDED.dimensions, sku = EXCLUDED.sku`

// CatalogRepository is a catalog source backed by a Postgres table.
type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// productRow mirrors one catalog_products row before the JSON columns are decoded.
type productRow struct {
	ID          int64
	Slug        *string
	Title       string
	Category    string
	Tags        []string
	Price       float64
	Description string
	Images      []string
	Views       []byte
	GLTF        []byte
	Dimensions  []byte
	SKU         string
}

func (r productRow) toDomain() (domain.Product, error) {
	p := domain.Product{
		ID:          r.ID,
		Title:       r.Title,
		Category:    r.Category,
		Tags:        r.Tags,
		Price:       r.Price,
		Description: r.Description,
		Images:      r.Images,
		SKU:         r.SKU,
	}
	if r.Slug != nil {
		p.Slug = *r.Slug
	}
	if p.Price < 0 {
		p.Price = 0
	}
	if len(r.Views) > 0 {
		if err := json.Unmarshal(r.Views, &p.Views); err != nil {
			return p, fmt.Errorf("product %d views: %w", r.ID, err)
		}
	}
	if len(r.GLTF) > 0 {
		if err := json.Unmarshal(r.GLTF, &p.GLTF); err != nil {
			return p, fmt.Errorf("product %d gltf: %w", r.ID, err)
		}
	}
	if len(r.Dimensions) > 0 && string(r.Dimensions) != "null" {
		p.Dimensions = &domain.Dimensions{}
		if err := json.Unmarshal(r.Dimensions, p.Dimensions); err != nil {
			return p, fmt.Errorf("product %d dimensions: %w", r.ID, err)
		}
	}
	return p, nil
}

// Load reads the whole catalog in position order.
func (r *CatalogRepository) Load(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.db.Query(ctx, selectProducts)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var row productRow
		if err := rows.Scan(
			&row.ID, &row.Slug, &row.Title, &row.Category, &row.Tags, &row.Price,
			&row.Description, &row.Images, &row.Views, &row.GLTF, &row.Dimensions, &row.SKU,
		); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		p, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return products, nil
}

// EnsureSchema creates the catalog table when it does not exist.
func (r *CatalogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return nil
}

// Publish upserts every product in one transaction, keeping the slice order as position.
func (r *CatalogRepository) Publish(ctx context.Context, products []domain.Product) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for i, p := range products {
		args, err := upsertArgs(i, p)
		if err != nil {
			return err
		}
		batch.Queue(upsertProduct, args...)
	}

	br := tx.SendBatch(ctx, batch)
	for range products {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to upsert product: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func upsertArgs(position int, p domain.Product) ([]any, error) {
	views, err := jsonColumn(p.Views, len(p.Views) == 0)
	if err != nil {
		return nil, err
	}
	gltf, err := jsonColumn(p.GLTF, p.GLTF.IsZero())
	if err != nil {
		return nil, err
	}
	dims, err := jsonColumn(p.Dimensions, p.Dimensions == nil)
	if err != nil {
		return nil, err
	}
	tags := p.Tags
	if tags == nil {
		tags = []string{}
	}
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return []any{p.ID, position, p.Slug, p.Title, p.Category, tags, p.Price, p.Description, images, views, gltf, dims, p.SKU}, nil
}

func jsonColumn(v any, empty bool) ([]byte, error) {
	if empty {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode json column: %w", err)
	}
	return b, nil
}
