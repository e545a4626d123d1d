package v1

import (
	"errors"
	"net/http"
	"time"

	"interiorhub-web/internal/domain"
	"interiorhub-web/internal/usecase"
	"interiorhub-web/pkg/logger"
	"interiorhub-web/pkg/utils"
)

type CatalogHandler struct {
	catalogUC     *usecase.CatalogUsecase
	viewerUC      *usecase.ViewerUsecase
	redirectDelay time.Duration
}

func NewCatalogHandler(catalogUC *usecase.CatalogUsecase, viewerUC *usecase.ViewerUsecase, redirectDelay time.Duration) *CatalogHandler {
	return &CatalogHandler{
		catalogUC:     catalogUC,
		viewerUC:      viewerUC,
		redirectDelay: redirectDelay,
	}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.catalogUC.ListProducts(r.Context())
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"data":  products,
		"total": len(products),
	})
}

// ListCategoryProducts resolves the slug and applies the filter state read from the query string.
func (h *CatalogHandler) ListCategoryProducts(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	state := usecase.FilterStateFromQuery(r.URL.Query())

	listing := h.catalogUC.ListCategory(r.Context(), slug, state)
	utils.WriteJSON(w, http.StatusOK, listing)
}

func (h *CatalogHandler) GetProductDetails(w http.ResponseWriter, r *http.Request) {
	product, ok := h.lookup(w, r)
	if !ok {
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

// GetViewer returns the media viewer decision for ?variant=&index=.
func (h *CatalogHandler) GetViewer(w http.ResponseWriter, r *http.Request) {
	product, ok := h.lookup(w, r)
	if !ok {
		return
	}
	query := r.URL.Query()
	index := utils.ParseInt(query.Get("index"), 0)

	sel := h.viewerUC.Select(r.Context(), product, query.Get("variant"), index)
	utils.WriteJSON(w, http.StatusOK, sel)
}

func (h *CatalogHandler) GetRelated(w http.ResponseWriter, r *http.Request) {
	related, err := h.catalogUC.Related(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.writeLookupError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, related)
}

func (h *CatalogHandler) lookup(w http.ResponseWriter, r *http.Request) (*domain.Product, bool) {
	slug := r.PathValue("slug")
	if slug == "" {
		utils.WriteError(w, http.StatusBadRequest, "Slug required")
		return nil, false
	}

	product, err := h.catalogUC.GetProductDetails(r.Context(), slug)
	if err != nil {
		h.writeLookupError(w, r, err)
		return nil, false
	}
	return product, true
}

func (h *CatalogHandler) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrProductNotFound) {
		utils.WriteNotFoundRedirect(w, "Product not found", domain.RouteHome, h.redirectDelay.Milliseconds())
		return
	}
	logger.WithContext(r.Context()).Error().Err(err).Msg("Product lookup failed")
	utils.WriteError(w, http.StatusInternalServerError, "Failed to load product")
}
