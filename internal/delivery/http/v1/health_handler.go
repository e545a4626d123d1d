package v1

import (
	"net/http"

	"interiorhub-web/internal/domain"
	"interiorhub-web/pkg/cache"
	"interiorhub-web/pkg/utils"
)

type HealthHandler struct {
	catalog    domain.CatalogReader
	capability domain.ModelCapability
	cache      cache.CacheService
}

func NewHealthHandler(catalog domain.CatalogReader, capability domain.ModelCapability, cache cache.CacheService) *HealthHandler {
	return &HealthHandler{catalog: catalog, capability: capability, cache: cache}
}

// ServeHTTP reports liveness plus the catalog size, model renderer state and cache fill.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cached := 0
	if h.cache != nil {
		cached = h.cache.ItemCount()
	}
	body := map[string]interface{}{
		"status":      "ok",
		"products":    h.catalog.Len(),
		"modelViewer": h.capability != nil && h.capability.Ready(),
		"cachedItems": cached,
	}
	if h.capability != nil {
		if err := h.capability.Err(); err != nil {
			body["modelViewerError"] = err.Error()
		}
	}
	w.Header().Set("Cache-Control", "no-store")
	utils.WriteJSON(w, http.StatusOK, body)
}
