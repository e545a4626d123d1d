package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served requests by route pattern, method and status code
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interiorhub_http_requests_total",
		Help: "Total HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	// HTTPDuration tracks handler latency
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "interiorhub_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
	}, []string{"route"})

	// ResolverStrategy counts which category matcher produced the candidate list
	ResolverStrategy = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interiorhub_category_resolver_strategy_total",
		Help: "Category resolutions by winning strategy",
	}, []string{"strategy"})

	// RelaySubmissions counts form relay outcomes by form kind
	RelaySubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interiorhub_form_relay_submissions_total",
		Help: "Form relay submissions by kind and outcome",
	}, []string{"kind", "outcome"})

	// RateLimited counts throttled requests by class (read or write)
	RateLimited = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interiorhub_rate_limited_total",
		Help: "Requests rejected by the per-IP rate limiter",
	}, []string{"class"})

	// CacheLookups counts in-memory cache hits and misses by key namespace
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "interiorhub_cache_lookups_total",
		Help: "In-memory cache lookups by namespace and result",
	}, []string{"namespace", "result"})

	// SavedDesigns counts appended saved designs
	SavedDesigns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "interiorhub_saved_designs_total",
		Help: "Total saved designs appended",
	})

	// ModelCapabilityReady is 1 once the model renderer script was reachable
	ModelCapabilityReady = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "interiorhub_model_capability_ready",
		Help: "1 when the model rendering script is confirmed available",
	})
)
