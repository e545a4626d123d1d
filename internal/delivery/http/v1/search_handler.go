package v1

import (
	"net/http"

	"interiorhub-web/internal/usecase"
	"interiorhub-web/pkg/utils"
)

type SearchHandler struct {
	searchUC *usecase.SearchUsecase
}

func NewSearchHandler(searchUC *usecase.SearchUsecase) *SearchHandler {
	return &SearchHandler{
		searchUC: searchUC,
	}
}

// Search is the header search box: ?q=&page=&limit=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result := h.searchUC.Search(
		r.Context(),
		q.Get("q"),
		utils.ParseInt(q.Get("page"), 1),
		utils.ParseInt(q.Get("limit"), 0),
	)
	utils.WriteJSON(w, http.StatusOK, result)
}
