package web

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

	"github.com/stretchr/testify/require"
)

type stubRelay struct {
	success atomic.Bool
}

func (s *stubRelay) Submit(ctx context.Context, form domain.RelayForm) (*domain.RelayResult, error) {
	return &domain.RelayResult{Success: s.success.Load()}, nil
}

type stubCapability struct {
	ready atomic.Bool
	loads atomic.Int32
}

func (s *stubCapability) Ready() bool { return s.ready.Load() }
func (s *stubCapability) Load(ctx context.Context) { s.loads.Add(1) }
func (s *stubCapability) ScriptURL() string { return "https://cdn.test/model-viewer.js" }
func (s *stubCapability) Err() error { return nil }

type pagesEnv struct {
	mux        *http.ServeMux
	relay      *stubRelay
	capability *stubCapability
}

func newPagesEnv(t *testing.T) *pagesEnv {
	t.Helper()
	ctx := context.Background()

	cfg := &config.Config{
		SiteURL:               "https://interior.test",
		CacheCategoryTTL:      time.Minute,
		NotFoundRedirectDelay: 1600 * time.Millisecond,
	}
	catalog, err := static.LoadCatalog(ctx, static.NewEmbeddedSource())
	require.NoError(t, err)
	memCache := memcache.NewMemoryCache(time.Minute, time.Minute)

	db, err := badgerrepo.Open("", true)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &pagesEnv{mux: http.NewServeMux(), relay: &stubRelay{}, capability: &stubCapability{}}
	env.relay.success.Store(true)

	h, err := NewPageHandler(
		usecase.NewCatalogUsecase(catalog, usecase.NewCategoryResolver(nil), memCache, cfg),
		usecase.NewContentUsecase(static.NewContentRepository(""), memCache, cfg),
		usecase.NewViewerUsecase(env.capability, ".vercel.app"),
		usecase.NewContactUsecase(env.relay, nil, catalog),
		usecase.NewDesignUsecase(badgerrepo.NewDesignRepository(db), catalog),
		cfg,
	)
	require.NoError(t, err)
	h.RegisterRoutes(env.mux)
	return env
}

func (e *pagesEnv) get(target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(context.WithValue(req.Context(), domain.VisitorContextKey, "visitor-1"))
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func (e *pagesEnv) postForm(target string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(context.WithValue(req.Context(), domain.VisitorContextKey, "visitor-1"))
	rec := httptest.NewRecorder()
	e.mux.ServeHTTP(rec, req)
	return rec
}

func TestHomePage(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	rec := env.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Equal(t, 11, strings.Count(body, `class="tile"`))
	require.Equal(t, domain.FeaturedProductCount, strings.Count(body, `class="card"`))
	require.Contains(t, body, `href="/category/luxury-shop-interior"`)
}

func TestCategoryPage(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	rec := env.get("/category/modular-kitchen?q=oak")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, "<h1>MODULAR KITCHEN</h1>")
	require.Contains(t, body, "1 results")
	require.Contains(t, body, "Oak Wooden Modular Kitchen")

	rec = env.get("/category/modular-kitchen?q=zzzz")
	require.Contains(t, rec.Body.String(), "No products found")

	rec = env.get("/category/zzz-unknown")
	require.Contains(t, rec.Body.String(), "Showing the full catalog")
}

func TestProductPage(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	rec := env.get("/product/diamond-3d-wall-panel")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `<a href="/category/3d-wall-panel">3D Wall Panel</a>`)
	require.Contains(t, body, "Gypsum, Textured")
	require.Contains(t, body, "Related Products")
	require.Contains(t, body, "Check out this product: ")
	require.NotContains(t, body, "model-viewer.js")
}

func TestProductPageModelScriptOnlyWhenReady(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	rec := env.get("/product/wave-3d-wall-panel?variant=Gold+Brush")
	body := rec.Body.String()
	require.Contains(t, body, "Loading 3D viewer")
	require.NotContains(t, body, "model-viewer.js")
	require.EqualValues(t, 1, env.capability.loads.Load())

	env.capability.ready.Store(true)
	rec = env.get("/product/wave-3d-wall-panel?variant=Gold+Brush")
	body = rec.Body.String()
	require.Contains(t, body, `src="https://cdn.test/model-viewer.js"`)
	require.Contains(t, body, `<model-viewer src="/models/wave-gold.glb"`)
}

func TestProductGalleryModal(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	rec := env.get("/product/hdhmr-glossy-modular-kitchen?img=0&modal=1")
	body := rec.Body.String()
	require.Contains(t, body, `class="modal"`)
	require.Contains(t, body, `class="next"`)
	require.NotContains(t, body, `class="prev"`)
}

func TestProductGalleryModalKeys(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	rec := env.get("/product/hdhmr-glossy-modular-kitchen?img=0&modal=1")
	body := rec.Body.String()
	require.Contains(t, body, `<script type="module" src="/static/product.js">`)
	require.Contains(t, body, `key=ArrowRight"`)
	require.Contains(t, body, `key=Escape"`)
	require.Contains(t, body, `<p class="position">1 / 2</p>`)

	rec = env.get("/product/hdhmr-glossy-modular-kitchen?img=0&modal=1&key=ArrowRight")
	body = rec.Body.String()
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, body, `<p class="position">2 / 2</p>`)
	require.Contains(t, body, `class="prev"`)
	require.NotContains(t, body, `class="next"`)

	rec = env.get("/product/hdhmr-glossy-modular-kitchen?img=1&modal=1&key=ArrowLeft")
	require.Contains(t, rec.Body.String(), `<p class="position">1 / 2</p>`)

	rec = env.get("/product/hdhmr-glossy-modular-kitchen?img=1&modal=1&key=Escape")
	body = rec.Body.String()
	require.NotContains(t, body, `class="modal"`)
	require.Contains(t, body, `class="thumb active" href="/product/hdhmr-glossy-modular-kitchen?img=1`)
}

func TestProductScriptServed(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	rec := env.get(ProductScript)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	for _, want := range []string{"keydown", "ArrowLeft", "ArrowRight", "Escape", "navigator.share", "navigator.clipboard.writeText", "Link copied to clipboard"} {
		require.Contains(t, body, want)
	}
}

func TestProductShareFallbackLink(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	body := env.get("/product/diamond-3d-wall-panel").Body.String()
	require.Contains(t, body, `<button type="button" class="share" hidden`)
	require.Contains(t, body, `data-share-url="https://interior.test/product/diamond-3d-wall-panel"`)
	require.Contains(t, body, `<input type="text" readonly value="https://interior.test/product/diamond-3d-wall-panel"`)
}

func TestUnknownProductRedirectsHome(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	rec := env.get("/product/does-not-exist")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := rec.Body.String()
	require.Contains(t, body, `<meta http-equiv="refresh" content="1.6;url=/">`)
	require.Contains(t, body, "Product not found")
}

func TestContactPageSubmission(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	rec := env.get("/contact")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `href="tel:&#43;919999993798"`)
	require.Contains(t, rec.Body.String(), "Krishna Nagar")

	rec = env.postForm("/contact", url.Values{"name": {"Asha"}, "phone": {"98765"}, "message": {"Hello"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Message sent")

	env.relay.success.Store(false)
	rec = env.postForm("/contact", url.Values{"name": {"Asha"}, "phone": {"98765"}, "message": {"Hello"}})
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.Contains(t, rec.Body.String(), domain.ContactFailureMessage)
	require.Contains(t, rec.Body.String(), `value="Asha"`, "a failed submission keeps the typed values")
}

func TestQuoteAndSaveDesign(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	rec := env.postForm("/product/oak-wooden-modular-kitchen/quote", url.Values{"name": {"Asha"}, "phone": {"98765"}})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Quote request submitted")

	rec = env.postForm("/product/wave-3d-wall-panel/save", url.Values{"variant": {"Gold Brush"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/product/wave-3d-wall-panel?variant=Gold+Brush&saved=1", rec.Header().Get("Location"))

	rec = env.get("/product/wave-3d-wall-panel?variant=Gold+Brush&saved=1")
	require.Contains(t, rec.Body.String(), ">Saved<")
}

func TestSaveDesignRejectsMalformedForm(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/product/wave-3d-wall-panel/save", strings.NewReader("variant=%zz"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	env.mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	require.Contains(t, body, `<p class="outcome error" role="status">Could not save this design. Please try again.</p>`)
	require.Contains(t, body, "<h1>")
}

func TestBlogPage(t *testing.T) {
	t.Parallel()
	env := newPagesEnv(t)

	rec := env.get("/blog")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `src="/videos/vid3.MP4"`)
	require.Contains(t, rec.Body.String(), "Modular Kitchen Walkthrough")
}
