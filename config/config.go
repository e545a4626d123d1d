package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Catalog sources
const (
	CatalogSourceEmbedded = "embedded"
	CatalogSourceFile     = "file"
	CatalogSourceR2       = "r2"
	CatalogSourcePostgres = "postgres"
)

type Config struct {
	Port          string
	Env           string
	LogLevel      string
	AllowedOrigin string
	SiteURL       string // Public URL used for sitemaps and share links
	// Hosting domain suffix; model locators on this host are rewritten to root-relative paths
	SiteHostSuffix string

	// Catalog
	CatalogSource    string
	CatalogFile      string
	CatalogObjectKey string

	// DB Config (postgres catalog source)
	DBUrl             string
	DBMaxConns        int32
	DBMinConns        int32
	DBMaxConnIdleTime time.Duration

	// R2 Storage (r2 catalog source)
	R2AccountID       string
	R2AccessKeyID     string
	R2AccessKeySecret string
	R2BucketName      string
	R2PublicURL       string
	R2Timeout         time.Duration

	// Saved designs
	DesignsDir      string
	DesignsInMemory bool

	// Visitor identity
	VisitorSecret      string
	VisitorTokenExpiry time.Duration

	// Form relay
	FormRelayURL       string
	FormRelayAccessKey string
	FormRelayTimeout   time.Duration

	// Model-rendering capability
	ModelViewerScriptURL    string
	ModelViewerCheckTimeout time.Duration

	// Static assets & content
	AssetsDir   string
	ContentFile string

	// Cache
	CacheCategoryTTL time.Duration
	CacheThumbTTL    time.Duration
	CacheSitemapTTL  time.Duration

	// Conversion tracking
	FBPixelID     string
	FBAccessToken string
	FBAPIVersion  string

	// Behaviour
	NotFoundRedirectDelay time.Duration
	RateLimitRPS          int
	RateLimitBurst        int
	FormRateLimitPerMin   int // POST budget per IP; submissions fan out to the paid relay
	FormRateLimitBurst    int
	MaxThumbWidth         int
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: .env for local dev, system env vars otherwise
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		AllowedOrigin:  getEnv("ALLOWED_ORIGIN", "http://localhost:8080"),
		SiteURL:        getEnv("SITE_URL", "http://localhost:8080"),
		SiteHostSuffix: getEnv("SITE_HOST_SUFFIX", ".vercel.app"),

		CatalogSource:    getEnv("CATALOG_SOURCE", CatalogSourceEmbedded),
		CatalogFile:      getEnv("CATALOG_FILE", "data/product.json"),
		CatalogObjectKey: getEnv("CATALOG_OBJECT_KEY", "catalog/product.json"),

		DBUrl:             getEnv("DB_DSN", ""),
		DBMaxConns:        getInt32Env("DB_MAX_CONNS", 10),
		DBMinConns:        getInt32Env("DB_MIN_CONNS", 1),
		DBMaxConnIdleTime: getDurationEnv("DB_MAX_CONN_IDLE_TIME", time.Minute*15),

		R2AccountID:       getEnv("R2_ACCOUNT_ID", ""),
		R2AccessKeyID:     getEnv("R2_ACCESS_KEY_ID", ""),
		R2AccessKeySecret: getEnv("R2_ACCESS_KEY_SECRET", ""),
		R2BucketName:      getEnv("R2_BUCKET_NAME", ""),
		R2PublicURL:       getEnv("R2_PUBLIC_URL", ""),
		R2Timeout:         getDurationEnv("R2_TIMEOUT", 30*time.Second),

		DesignsDir:      getEnv("DESIGNS_DIR", "data/designs"),
		DesignsInMemory: getBoolEnv("DESIGNS_IN_MEMORY", false),

		VisitorSecret:      getEnv("VISITOR_SECRET", "default_secret_CHANGE_ME"),
		VisitorTokenExpiry: getDurationEnv("VISITOR_TOKEN_EXPIRY", time.Hour*24*365),

		FormRelayURL:       getEnv("FORM_RELAY_URL", "https://api.web3forms.com/submit"),
		FormRelayAccessKey: getEnv("FORM_RELAY_ACCESS_KEY", ""),
		FormRelayTimeout:   getDurationEnv("FORM_RELAY_TIMEOUT", 15*time.Second),

		ModelViewerScriptURL:    getEnv("MODEL_VIEWER_SCRIPT_URL", "https://unpkg.com/@google/model-viewer/dist/model-viewer.min.js"),
		ModelViewerCheckTimeout: getDurationEnv("MODEL_VIEWER_CHECK_TIMEOUT", 10*time.Second),

		AssetsDir:   getEnv("ASSETS_DIR", "public"),
		ContentFile: getEnv("CONTENT_FILE", ""),

		// Cache defaults: 30m Category, 6h Thumbnails, 6h Sitemap
		CacheCategoryTTL: getDurationEnv("CACHE_CATEGORY_TTL", 30*time.Minute),
		CacheThumbTTL:    getDurationEnv("CACHE_THUMB_TTL", 6*time.Hour),
		CacheSitemapTTL:  getDurationEnv("CACHE_SITEMAP_TTL", 6*time.Hour),

		FBPixelID:     getEnv("FB_PIXEL_ID", ""),
		FBAccessToken: getEnv("FB_ACCESS_TOKEN", ""),
		FBAPIVersion:  getEnv("FB_API_VERSION", "v19.0"),

		NotFoundRedirectDelay: getDurationEnv("NOT_FOUND_REDIRECT_DELAY", 1600*time.Millisecond),
		RateLimitRPS:          getIntEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst:        getIntEnv("RATE_LIMIT_BURST", 100),
		FormRateLimitPerMin:   getIntEnv("FORM_RATE_LIMIT_PER_MIN", 6),
		FormRateLimitBurst:    getIntEnv("FORM_RATE_LIMIT_BURST", 3),
		MaxThumbWidth:         getIntEnv("MAX_THUMB_WIDTH", 1200),
	}

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	switch c.CatalogSource {
	case CatalogSourceEmbedded, CatalogSourceFile:
	case CatalogSourcePostgres:
		if c.DBUrl == "" {
			log.Fatal("CRITICAL: DB_DSN is required when CATALOG_SOURCE=postgres")
		}
	case CatalogSourceR2:
		if c.R2BucketName == "" || c.R2AccountID == "" {
			log.Fatal("CRITICAL: R2_ACCOUNT_ID and R2_BUCKET_NAME are required when CATALOG_SOURCE=r2")
		}
	default:
		log.Fatalf("CRITICAL: unknown CATALOG_SOURCE %q", c.CatalogSource)
	}
	if c.VisitorSecret == "default_secret_CHANGE_ME" {
		log.Println("WARNING: Using default visitor secret. Setting up for failure in production.")
	}
	if c.FormRelayAccessKey == "" {
		log.Println("WARNING: FORM_RELAY_ACCESS_KEY is empty, the relay will reject submissions")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}

func getBoolEnv(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
		log.Printf("Invalid bool for %s, using fallback", key)
	}
	return fallback
}
