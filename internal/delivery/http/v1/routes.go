package v1

import "net/http"

// Handlers groups the JSON API handlers registered by RegisterRoutes.
type Handlers struct {
	Catalog *CatalogHandler
	Content *ContentHandler
	Contact *ContactHandler
	Design  *DesignHandler
	Media   *MediaHandler
	Search  *SearchHandler
	Sitemap *SitemapHandler
	Health  *HealthHandler
}

func RegisterRoutes(mux *http.ServeMux, h Handlers) {
	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/categories", h.Content.GetCategories)
	mux.HandleFunc("GET /api/v1/categories/{slug}/products", h.Catalog.ListCategoryProducts)
	mux.HandleFunc("GET /api/v1/products", h.Catalog.ListProducts)
	mux.HandleFunc("GET /api/v1/products/{slug}", h.Catalog.GetProductDetails)
	mux.HandleFunc("GET /api/v1/products/{slug}/viewer", h.Catalog.GetViewer)
	mux.HandleFunc("GET /api/v1/products/{slug}/related", h.Catalog.GetRelated)
	mux.HandleFunc("GET /api/v1/search", h.Search.Search)

	// Forms
	mux.HandleFunc("POST /api/v1/contact", h.Contact.SubmitContact)
	mux.HandleFunc("POST /api/v1/products/{slug}/quote", h.Contact.SubmitQuote)

	// Saved designs (visitor scoped)
	mux.HandleFunc("GET /api/v1/designs", h.Design.ListDesigns)
	mux.HandleFunc("POST /api/v1/designs", h.Design.SaveDesign)

	// Content
	mux.HandleFunc("GET /api/v1/videos", h.Content.GetVideos)
	mux.HandleFunc("GET /media/thumb/{path...}", h.Media.Thumbnail)
	mux.HandleFunc("GET /sitemap.xml", h.Sitemap.ServeHTTP)

	// Health Check
	mux.Handle("GET /api/v1/health", h.Health)
	mux.Handle("GET /health", h.Health) // Support root health check for Load Balancers
}
