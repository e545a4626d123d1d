package v1

import (
	"errors"
	"net/http"
	"strconv"

	"interiorhub-web/internal/domain"
	"interiorhub-web/internal/usecase"
	"interiorhub-web/pkg/logger"
	"interiorhub-web/pkg/utils"
)

type MediaHandler struct {
	usecase *usecase.MediaUsecase
}

func NewMediaHandler(u *usecase.MediaUsecase) *MediaHandler {
	return &MediaHandler{usecase: u}
}

// Thumbnail serves /media/thumb/{path...}?w= as a resized gallery image.
func (h *MediaHandler) Thumbnail(w http.ResponseWriter, r *http.Request) {
	width := h.usecase.ThumbWidth(utils.ParseInt(r.URL.Query().Get("w"), 0))

	thumb, err := h.usecase.Thumbnail(r.Context(), r.PathValue("path"), width)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnsupportedMedia):
			utils.WriteError(w, http.StatusBadRequest, "Unsupported media type")
		case errors.Is(err, domain.ErrMediaNotFound):
			utils.WriteError(w, http.StatusNotFound, "Media not found")
		default:
			logger.WithContext(r.Context()).Error().Err(err).Str("path", r.PathValue("path")).Msg("Thumbnail failed")
			utils.WriteError(w, http.StatusInternalServerError, "Failed to process image")
		}
		return
	}

	w.Header().Set("Content-Type", thumb.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(thumb.Data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	w.Write(thumb.Data)
}
