package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"interiorhub-web/internal/domain"
	"interiorhub-web/internal/infrastructure/metrics"
	"interiorhub-web/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// RequestMeta is what the conversion tracker needs from the originating request.
type RequestMeta struct {
	SourceURL string
	ClientIP  string
	UserAgent string
}

type ContactUsecase struct {
	relay    domain.FormRelay
	leads    domain.LeadTracker
	catalog  domain.CatalogReader
	validate *validator.Validate

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewContactUsecase wires the relay. leads may be nil when conversion tracking is off.
func NewContactUsecase(relay domain.FormRelay, leads domain.LeadTracker, catalog domain.CatalogReader) *ContactUsecase {
	return &ContactUsecase{
		relay:    relay,
		leads:    leads,
		catalog:  catalog,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		inFlight: make(map[string]struct{}),
	}
}

// ContactSubject is the subject line of a general enquiry.
func ContactSubject(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Guest"
	}
	return "Contact request — " + name
}

// QuoteSubject is the subject line of a product quote request.
func QuoteSubject(title string) string {
	return "Quote request — " + title
}

func (u *ContactUsecase) SubmitContact(ctx context.Context, visitorID string, sub domain.Submission, meta RequestMeta) (*domain.SubmissionOutcome, error) {
	if err := u.check(sub); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sub.Message) == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidSubmission)
	}

	form := domain.RelayForm{
		Kind:       domain.FormKindContact,
		Subject:    ContactSubject(sub.Name),
		Submission: sub,
	}
	return u.submit(ctx, visitorID, form, meta)
}

func (u *ContactUsecase) SubmitQuote(ctx context.Context, visitorID, productSlug string, sub domain.Submission, meta RequestMeta) (*domain.SubmissionOutcome, error) {
	product, ok := u.catalog.BySlug(productSlug)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, productSlug)
	}
	if err := u.check(sub); err != nil {
		return nil, err
	}

	form := domain.RelayForm{
		Kind:         domain.FormKindQuote,
		Subject:      QuoteSubject(product.Title),
		Submission:   sub,
		ProductSlug:  product.Slug,
		ProductTitle: product.Title,
	}
	return u.submit(ctx, visitorID, form, meta)
}

func (u *ContactUsecase) check(sub domain.Submission) error {
	if err := u.validate.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s is %s", domain.ErrInvalidSubmission, strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidSubmission, err)
	}
	return nil
}

// submit sends one form through the relay. A visitor has at most one submission in flight;
// the relay is never retried.
func (u *ContactUsecase) submit(ctx context.Context, visitorID string, form domain.RelayForm, meta RequestMeta) (*domain.SubmissionOutcome, error) {
	if !u.acquire(visitorID) {
		return nil, domain.ErrSubmissionInFlight
	}
	defer u.release(visitorID)

	log := logger.WithContext(ctx)
	successMsg, failureMsg := outcomeMessages(form.Kind)

	result, err := u.relay.Submit(ctx, form)
	if err != nil {
		metrics.RelaySubmissions.WithLabelValues(form.Kind, "error").Inc()
		log.Error().Err(err).Str("kind", form.Kind).Msg("Form relay request failed")
		return &domain.SubmissionOutcome{Success: false, Message: failureMsg}, nil
	}
	if err := result.Err(); err != nil {
		metrics.RelaySubmissions.WithLabelValues(form.Kind, "rejected").Inc()
		log.Warn().Err(err).Str("kind", form.Kind).Msg("Form relay rejected submission")
		return &domain.SubmissionOutcome{Success: false, Message: failureMsg}, nil
	}

	metrics.RelaySubmissions.WithLabelValues(form.Kind, "success").Inc()
	log.Info().Str("kind", form.Kind).Str("product", form.ProductSlug).Msg("Form submitted")

	if u.leads != nil {
		u.leads.TrackLead(ctx, form, meta.SourceURL, meta.ClientIP, meta.UserAgent)
	}
	return &domain.SubmissionOutcome{Success: true, Message: successMsg}, nil
}

func outcomeMessages(kind string) (success, failure string) {
	if kind == domain.FormKindQuote {
		return domain.QuoteSuccessMessage, domain.QuoteFailureMessage
	}
	return domain.ContactSuccessMessage, domain.ContactFailureMessage
}

// acquire marks the visitor as submitting. Requests without a visitor are not guarded.
func (u *ContactUsecase) acquire(visitorID string) bool {
	if visitorID == "" {
		return true
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, busy := u.inFlight[visitorID]; busy {
		return false
	}
	u.inFlight[visitorID] = struct{}{}
	return true
}

func (u *ContactUsecase) release(visitorID string) {
	if visitorID == "" {
		return
	}
	u.mu.Lock()
	delete(u.inFlight, visitorID)
	u.mu.Unlock()
}
