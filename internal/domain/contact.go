package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
	ErrRelayRejected      = errors.New("form relay rejected the submission")
	ErrInvalidSubmission  = errors.New("invalid submission")
)

// Submission is the set of free-text contact fields a visitor fills in.
type Submission struct {
	Name     string `json:"name" validate:"required,max=120"`
	Phone    string `json:"phone" validate:"required,max=32"`
	Email    string `json:"email" validate:"omitempty,email,max=254"`
	Message  string `json:"message" validate:"max=5000"`
	Botcheck string `json:"botcheck"`
}

// RelayForm is the fully assembled outbound form.
type RelayForm struct {
	Kind         string
	Subject      string
	Submission   Submission
	ProductSlug  string
	ProductTitle string
}

// RelayResult is the decoded relay response.
type RelayResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Err is nil for an accepted submission and wraps ErrRelayRejected otherwise.
func (r *RelayResult) Err() error {
	if r.Success {
		return nil
	}
	if r.Message == "" {
		return ErrRelayRejected
	}
	return fmt.Errorf("%w: %s", ErrRelayRejected, r.Message)
}

// SubmissionOutcome is what the visitor sees after submitting.
type SubmissionOutcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FormRelay posts a form to the external relay service.
type FormRelay interface {
	Submit(ctx context.Context, form RelayForm) (*RelayResult, error)
}

// LeadTracker records a successful lead with an external conversion service.
type LeadTracker interface {
	TrackLead(ctx context.Context, form RelayForm, sourceURL, clientIP, userAgent string)
}
