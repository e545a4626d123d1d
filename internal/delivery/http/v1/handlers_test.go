package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"interiorhub-web/config"
	"interiorhub-web/internal/domain"
	memcache "interiorhub-web/internal/infrastructure/cache"
	"interiorhub-web/internal/repository/badgerrepo"
	"interiorhub-web/internal/repository/static"
	"interiorhub-web/internal/usecase"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/require"
)

type stubRelay struct {
	success atomic.Bool
	calls   atomic.Int32
}

func (s *stubRelay) Submit(ctx context.Context, form domain.RelayForm) (*domain.RelayResult, error) {
	s.calls.Add(1)
	return &domain.RelayResult{Success: s.success.Load()}, nil
}

type stubCapability struct {
	ready  atomic.Bool
	failed atomic.Bool
}

func (s *stubCapability) Ready() bool { return s.ready.Load() }
func (s *stubCapability) Load(ctx context.Context) {}
func (s *stubCapability) ScriptURL() string { return "https://cdn.test/model-viewer.js" }
func (s *stubCapability) Err() error {
	if s.failed.Load() {
		return domain.ErrCapabilityUnavailable
	}
	return nil
}

type testEnv struct {
	mux        *http.ServeMux
	relay      *stubRelay
	capability *stubCapability
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{
		CacheCategoryTTL:      time.Minute,
		CacheSitemapTTL:       time.Minute,
		CacheThumbTTL:         time.Minute,
		MaxThumbWidth:         300,
		NotFoundRedirectDelay: 1600 * time.Millisecond,
	}
	catalog, err := static.LoadCatalog(ctx, static.NewEmbeddedSource())
	require.NoError(t, err)
	memCache := memcache.NewMemoryCache(time.Minute, time.Minute)

	db, err := badgerrepo.Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{mux: http.NewServeMux(), relay: &stubRelay{}, capability: &stubCapability{}}
	env.relay.success.Store(true)

	catalogUC := usecase.NewCatalogUsecase(catalog, usecase.NewCategoryResolver(nil), memCache, cfg)
	contentUC := usecase.NewContentUsecase(static.NewContentRepository(""), memCache, cfg)
	RegisterRoutes(env.mux, Handlers{
		Catalog: NewCatalogHandler(catalogUC, usecase.NewViewerUsecase(env.capability, ".vercel.app"), cfg.NotFoundRedirectDelay),
		Content: NewContentHandler(contentUC),
		Contact: NewContactHandler(usecase.NewContactUsecase(env.relay, nil, catalog)),
		Design:  NewDesignHandler(usecase.NewDesignUsecase(badgerrepo.NewDesignRepository(db), catalog)),
		Media:   NewMediaHandler(usecase.NewMediaUsecase(t.TempDir(), memCache, cfg)),
		Search:  NewSearchHandler(usecase.NewSearchUsecase(catalog)),
		Sitemap: NewSitemapHandler(usecase.NewSitemapUsecase(catalog, contentUC, "https://interior.test", memCache, cfg)),
		Health:  NewHealthHandler(catalog, env.capability, memCache),
	})
	return env
}

// serve runs a request as the given visitor.
func (e *testEnv) serve(req *http.Request, visitorID string) *httptest.ResponseRecorder {
	if visitorID != "" {
		req = req.WithContext(context.WithValue(req.Context(), domain.VisitorContextKey, visitorID))
	}
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestCategoryProductsEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/categories/modular-kitchen/products?sort=price-asc", nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	listing := decode[domain.CategoryListing](t, rec)
	require.Equal(t, "alias", listing.Strategy)
	require.Equal(t, 3, listing.Total)
	require.Equal(t, "aluminium-modular-kitchen", listing.Products[0].Slug)

	rec = env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/categories/modular-kitchen/products?q=oak&tag=Wooden", nil), "")
	listing = decode[domain.CategoryListing](t, rec)
	require.Equal(t, 1, listing.Total)
	require.Equal(t, []string{"Wooden"}, listing.ActiveTags)

	rec = env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/categories/zzz-unknown/products", nil), "")
	listing = decode[domain.CategoryListing](t, rec)
	require.True(t, listing.Fallback)
	require.Equal(t, 14, listing.Total)
}

func TestProductDetailsNotFoundCarriesRedirect(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/products/wave-3d-wall-panel", nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	p := decode[domain.Product](t, rec)
	require.Equal(t, []string{"Matte White", "Gold Brush"}, p.Views.Names())

	rec = env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/products/missing", nil), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	require.Equal(t, "/", body["redirect"])
	require.EqualValues(t, 1600, body["redirectAfterMs"])
}

func TestViewerEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/products/wave-3d-wall-panel/viewer?variant=Gold+Brush&index=7", nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	sel := decode[domain.ViewerSelection](t, rec)
	require.Equal(t, domain.ViewerModePlaceholder, sel.Mode)
	require.Equal(t, "Gold Brush", sel.Variant)
	require.Equal(t, len(sel.Gallery.Images)-1, sel.Gallery.Index)

	env.capability.ready.Store(true)
	rec = env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/products/wave-3d-wall-panel/viewer?variant=Gold+Brush", nil), "")
	sel = decode[domain.ViewerSelection](t, rec)
	require.Equal(t, domain.ViewerModeModel, sel.Mode)
	require.Equal(t, "/models/wave-gold.glb", sel.Model.Src)

	rec = env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/products/aluminium-modular-kitchen/viewer", nil), "")
	sel = decode[domain.ViewerSelection](t, rec)
	require.Equal(t, domain.ViewerModeGallery, sel.Mode)
}

func TestSearchEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/search?q=wall&limit=2&page=2", nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decode[domain.SearchResult](t, rec)
	require.Equal(t, "wall", res.Query)
	require.Equal(t, 2, res.Meta.Page)
	require.Len(t, res.Products, 2)

	rec = env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/search", nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[domain.SearchResult](t, rec).Products)
}

func TestRelatedEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/products/oak-wooden-modular-kitchen/related", nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	related := decode[[]domain.Product](t, rec)
	require.NotEmpty(t, related)
	for _, p := range related {
		require.NotEqual(t, "oak-wooden-modular-kitchen", p.Slug)
	}

	rec = env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/products/missing/related", nil), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContactEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	form := url.Values{"name": {"Asha"}, "phone": {"9876543210"}, "message": {"Kitchen please"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := env.serve(req, "v1")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[domain.SubmissionOutcome](t, rec)
	require.Equal(t, domain.ContactSuccessMessage, out.Message)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(`{"name":"Asha"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = env.serve(req, "v1")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	env.relay.success.Store(false)
	req = httptest.NewRequest(http.MethodPost, "/api/v1/contact", strings.NewReader(`{"name":"Asha","phone":"1","message":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec = env.serve(req, "v1")
	require.Equal(t, http.StatusBadGateway, rec.Code)
	out = decode[domain.SubmissionOutcome](t, rec)
	require.Equal(t, domain.ContactFailureMessage, out.Message)
	require.EqualValues(t, 2, env.relay.calls.Load())
}

func TestQuoteEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	body := `{"name":"Asha","phone":"9876543210"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/products/oak-wooden-modular-kitchen/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := env.serve(req, "v1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.QuoteSuccessMessage, decode[domain.SubmissionOutcome](t, rec).Message)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/products/missing/quote", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec = env.serve(req, "v1")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmissionStatus(t *testing.T) {
	t.Parallel()

	status, _ := SubmissionStatus(nil, domain.ErrSubmissionInFlight)
	require.Equal(t, http.StatusConflict, status)
	status, _ = SubmissionStatus(&domain.SubmissionOutcome{Success: true, Message: "ok"}, nil)
	require.Equal(t, http.StatusOK, status)
}

func TestDesignEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/designs", nil), "visitor-a")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[[]domain.SavedDesign](t, rec))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/designs", strings.NewReader(`{"product":"wave-3d-wall-panel","variant":"Gold Brush"}`))
	rec = env.serve(req, "visitor-a")
	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/designs", strings.NewReader(`{"product":"missing"}`))
	rec = env.serve(req, "visitor-a")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/designs", nil), "visitor-a")
	designs := decode[[]domain.SavedDesign](t, rec)
	require.Len(t, designs, 1)
	require.Equal(t, "Gold Brush", designs[0].Variant)

	rec = env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/designs", nil), "visitor-b")
	require.Empty(t, decode[[]domain.SavedDesign](t, rec))
}

func TestContentAndSitemapEndpoints(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil), "")
	require.Len(t, decode[[]domain.CategoryTile](t, rec), 11)

	rec = env.serve(httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil), "")
	require.NotEmpty(t, decode[[]domain.Video](t, rec))

	rec = env.serve(httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<loc>https://interior.test/product/wave-3d-wall-panel</loc>")
	require.Contains(t, rec.Body.String(), "<loc>https://interior.test/category/modular-kitchen</loc>")
	require.Contains(t, rec.Body.String(), `xmlns:image="http://www.google.com/schemas/sitemap-image/1.1"`)
	require.Contains(t, rec.Body.String(), "<image:loc>https://interior.test/images/")
}

func TestThumbnailEndpointErrors(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/media/thumb/images/missing.jpg?w=200", nil), "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.serve(httptest.NewRequest(http.MethodGet, "/media/thumb/notes.txt", nil), "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.serve(httptest.NewRequest(http.MethodGet, "/health", nil), "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]interface{}](t, rec)
	require.Equal(t, "ok", body["status"])
	require.EqualValues(t, 14, body["products"])
	require.Contains(t, body, "cachedItems")
	require.NotContains(t, body, "modelViewerError")

	env.capability.failed.Store(true)
	rec = env.serve(httptest.NewRequest(http.MethodGet, "/health", nil), "")
	body = decode[map[string]interface{}](t, rec)
	require.Equal(t, false, body["modelViewer"])
	require.Equal(t, domain.ErrCapabilityUnavailable.Error(), body["modelViewerError"])
}
