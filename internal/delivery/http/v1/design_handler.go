package v1

import (
	"errors"
	"net/http"

	"interiorhub-web/internal/domain"
	"interiorhub-web/internal/usecase"
	"interiorhub-web/pkg/logger"
	"interiorhub-web/pkg/utils"

	"github.com/goccy/go-json"
)

type DesignHandler struct {
	usecase *usecase.DesignUsecase
}

func NewDesignHandler(u *usecase.DesignUsecase) *DesignHandler {
	return &DesignHandler{usecase: u}
}

func (h *DesignHandler) ListDesigns(w http.ResponseWriter, r *http.Request) {
	designs, err := h.usecase.List(r.Context(), domain.VisitorFromContext(r.Context()))
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to list saved designs")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to list saved designs")
		return
	}
	utils.WriteJSON(w, http.StatusOK, designs)
}

type SaveDesignRequest struct {
	Product string `json:"product"`
	Variant string `json:"variant"`
}

func (h *DesignHandler) SaveDesign(w http.ResponseWriter, r *http.Request) {
	var req SaveDesignRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4<<10)).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Product == "" {
		utils.WriteError(w, http.StatusBadRequest, "product is required")
		return
	}

	design, err := h.usecase.Save(r.Context(), domain.VisitorFromContext(r.Context()), req.Product, req.Variant)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			utils.WriteError(w, http.StatusNotFound, "Product not found")
			return
		}
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to save design")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to save design")
		return
	}
	utils.WriteJSON(w, http.StatusCreated, design)
}
