package v1

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"interiorhub-web/internal/domain"
	"interiorhub-web/internal/usecase"
	"interiorhub-web/pkg/logger"
	"interiorhub-web/pkg/utils"

	"github.com/goccy/go-json"
)

const maxSubmissionBytes = 64 << 10

type ContactHandler struct {
	usecase *usecase.ContactUsecase
}

func NewContactHandler(u *usecase.ContactUsecase) *ContactHandler {
	return &ContactHandler{usecase: u}
}

func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	sub, err := DecodeSubmission(w, r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	out, err := h.usecase.SubmitContact(r.Context(), domain.VisitorFromContext(r.Context()), sub, RequestMetaFrom(r))
	writeOutcome(w, r, out, err)
}

func (h *ContactHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	sub, err := DecodeSubmission(w, r)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	slug := r.PathValue("slug")
	out, err := h.usecase.SubmitQuote(r.Context(), domain.VisitorFromContext(r.Context()), slug, sub, RequestMetaFrom(r))
	writeOutcome(w, r, out, err)
}

// DecodeSubmission accepts either a JSON body or a classic form post.
func DecodeSubmission(w http.ResponseWriter, r *http.Request) (domain.Submission, error) {
	var sub domain.Submission
	r.Body = http.MaxBytesReader(w, r.Body, maxSubmissionBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil && !errors.Is(err, io.EOF) {
			return sub, err
		}
		return sub, nil
	}

	if err := r.ParseForm(); err != nil {
		return sub, err
	}
	sub = domain.Submission{
		Name:     r.PostFormValue("name"),
		Phone:    r.PostFormValue("phone"),
		Email:    r.PostFormValue("email"),
		Message:  r.PostFormValue("message"),
		Botcheck: r.PostFormValue("botcheck"),
	}
	return sub, nil
}

// RequestMetaFrom collects what lead tracking needs from the request.
func RequestMetaFrom(r *http.Request) usecase.RequestMeta {
	source := r.Referer()
	if source == "" {
		source = r.URL.String()
	}
	return usecase.RequestMeta{
		SourceURL: source,
		ClientIP:  utils.ClientIP(r),
		UserAgent: r.UserAgent(),
	}
}

// SubmissionStatus maps a submission result to an HTTP status.
func SubmissionStatus(out *domain.SubmissionOutcome, err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidSubmission):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrSubmissionInFlight):
		return http.StatusConflict, "A submission is already in progress"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case err != nil:
		return http.StatusInternalServerError, "Submission failed"
	case !out.Success:
		return http.StatusBadGateway, out.Message
	}
	return http.StatusOK, out.Message
}

func writeOutcome(w http.ResponseWriter, r *http.Request, out *domain.SubmissionOutcome, err error) {
	status, message := SubmissionStatus(out, err)
	if out != nil {
		utils.WriteJSON(w, status, out)
		return
	}
	if status == http.StatusInternalServerError {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Submission failed")
	}
	utils.WriteError(w, status, message)
}
