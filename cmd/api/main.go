package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"interiorhub-web/config"
	"interiorhub-web/internal/delivery/http/middleware"
	v1 "interiorhub-web/internal/delivery/http/v1"
	"interiorhub-web/internal/delivery/http/web"
	"interiorhub-web/internal/domain"
	"interiorhub-web/internal/infrastructure/cache"
	"interiorhub-web/internal/infrastructure/facebook"
	"interiorhub-web/internal/infrastructure/modelviewer"
	"interiorhub-web/internal/infrastructure/web3forms"
	"interiorhub-web/internal/repository/badgerrepo"
	"interiorhub-web/internal/repository/catalogsource"
	"interiorhub-web/internal/repository/static"
	"interiorhub-web/internal/usecase"
	"interiorhub-web/pkg/logger"
	"interiorhub-web/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

const serviceName = "interiorhub-web"

var version = "dev"

func main() {
	cfg := config.LoadConfig()

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Catalog: loaded once, read-only afterwards
	start := time.Now()
	source, closeSource, err := catalogsource.Open(context.Background(), cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open catalog source")
	}
	catalog, err := static.LoadCatalog(context.Background(), source)
	closeSource()
	if err != nil {
		logger.Fatal().Err(err).Str("source", cfg.CatalogSource).Msg("Failed to load catalog")
	}
	logger.CatalogLoaded(cfg.CatalogSource, catalog.Len(), time.Since(start))

	// Initialize Cache (In-Memory)
	// Default expiration 30m, cleanup every 60m
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// Saved designs (Badger)
	designDB, err := badgerrepo.Open(cfg.DesignsDir, cfg.DesignsInMemory)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open saved designs store")
	}
	defer designDB.Close()

	// Model renderer: checked once in the background, pages degrade to the gallery until ready
	capability := modelviewer.NewCapability(cfg.ModelViewerScriptURL, cfg.ModelViewerCheckTimeout)
	capability.Load(context.Background())

	// Outbound services
	relay := web3forms.NewClient(cfg.FormRelayURL, cfg.FormRelayAccessKey, cfg.FormRelayTimeout)
	var leads domain.LeadTracker
	if capi := facebook.NewCAPIClient(cfg.FBPixelID, cfg.FBAccessToken, cfg.FBAPIVersion); capi != nil {
		leads = capi
	}

	// --- Modules Initialization ---
	catalogUC := usecase.NewCatalogUsecase(catalog, usecase.NewCategoryResolver(nil), memCache, cfg)
	contentUC := usecase.NewContentUsecase(static.NewContentRepository(cfg.ContentFile), memCache, cfg)
	viewerUC := usecase.NewViewerUsecase(capability, cfg.SiteHostSuffix)
	contactUC := usecase.NewContactUsecase(relay, leads, catalog)
	designUC := usecase.NewDesignUsecase(badgerrepo.NewDesignRepository(designDB), catalog)
	searchUC := usecase.NewSearchUsecase(catalog)
	mediaUC := usecase.NewMediaUsecase(cfg.AssetsDir, memCache, cfg)
	sitemapUC := usecase.NewSitemapUsecase(catalog, contentUC, cfg.SiteURL, memCache, cfg)

	// Set up Router
	mux := http.NewServeMux()

	v1.RegisterRoutes(mux, v1.Handlers{
		Catalog: v1.NewCatalogHandler(catalogUC, viewerUC, cfg.NotFoundRedirectDelay),
		Content: v1.NewContentHandler(contentUC),
		Contact: v1.NewContactHandler(contactUC),
		Design:  v1.NewDesignHandler(designUC),
		Media:   v1.NewMediaHandler(mediaUC),
		Search:  v1.NewSearchHandler(searchUC),
		Sitemap: v1.NewSitemapHandler(sitemapUC),
		Health:  v1.NewHealthHandler(catalog, capability, memCache),
	})

	pages, err := web.NewPageHandler(catalogUC, contentUC, viewerUC, contactUC, designUC, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to parse page templates")
	}
	pages.RegisterRoutes(mux)

	mux.Handle("GET /metrics", promhttp.Handler())

	// Static assets (images, models, videos, css)
	mux.Handle("GET /", http.FileServer(http.Dir(cfg.AssetsDir)))

	// Initialize Rate Limiter with lifecycle management
	// cleanup every minute, TTL 3 minutes
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		middleware.RatePolicy{Limit: rate.Limit(cfg.RateLimitRPS), Burst: cfg.RateLimitBurst},
		middleware.PerMinute(cfg.FormRateLimitPerMin, cfg.FormRateLimitBurst),
		time.Minute,
		3*time.Minute,
	)

	visitor := middleware.NewVisitor(
		utils.NewVisitorTokens(cfg.VisitorSecret, cfg.VisitorTokenExpiry),
		cfg.VisitorTokenExpiry,
		cfg.Env == "production",
	)

	// Metrics must see the mux directly; everything else wraps outward
	handler := middleware.Metrics(mux)
	handler = middleware.NewCORSMiddleware(cfg)(handler)
	handler = middleware.RequestLogger(handler)
	handler = visitor.Middleware(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart(serviceName, version, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop(serviceName)
}
