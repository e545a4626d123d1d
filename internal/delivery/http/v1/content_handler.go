package v1

import (
	"net/http"
	"time"

	"interiorhub-web/internal/usecase"
	"interiorhub-web/pkg/logger"
	"interiorhub-web/pkg/utils"
)

// Category tiles and videos only change on deploy
const contentMaxAge = time.Hour

type ContentHandler struct {
	usecase *usecase.ContentUsecase
}

func NewContentHandler(u *usecase.ContentUsecase) *ContentHandler {
	return &ContentHandler{usecase: u}
}

// GetCategories returns the home page category tiles.
func (h *ContentHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.usecase.Categories(r.Context())
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to load categories")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	utils.WritePublicJSON(w, cats, contentMaxAge)
}

func (h *ContentHandler) GetVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.usecase.Videos(r.Context())
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to load videos")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to load videos")
		return
	}
	utils.WritePublicJSON(w, videos, contentMaxAge)
}
