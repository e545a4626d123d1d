package facebook

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"interiorhub-web/internal/domain"
	"interiorhub-web/pkg/logger"

	"github.com/goccy/go-json"
)

const defaultGraphURL = "https://graph.facebook.com"

// HashSHA256 returns a hex-encoded SHA256 hash of the normalized input string.
func HashSHA256(input string) string {
	if input == "" {
		return ""
	}
	// Normalize: trim whitespace and lowercase
	normalized := strings.ToLower(strings.TrimSpace(input))
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:])
}

// CAPIClient handles server-side event tracking to Facebook Conversions API
type CAPIClient struct {
	pixelID     string
	accessToken string
	apiVersion  string
	graphURL    string
	httpClient  *http.Client
}

// NewCAPIClient creates a new Facebook CAPI client. It returns nil (tracking disabled)
// when the pixel is not configured.
func NewCAPIClient(pixelID, accessToken, apiVersion string) *CAPIClient {
	if pixelID == "" || accessToken == "" {
		logger.Info().Msg("[CAPI] Facebook Pixel ID or Access Token not configured. CAPI disabled.")
		return nil
	}
	return &CAPIClient{
		pixelID:     pixelID,
		accessToken: accessToken,
		apiVersion:  apiVersion,
		graphURL:    defaultGraphURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// WithGraphURL points the client at another Graph API host.
func (c *CAPIClient) WithGraphURL(graphURL string) *CAPIClient {
	if c != nil {
		c.graphURL = strings.TrimRight(graphURL, "/")
	}
	return c
}

// UserData represents the user information for event matching
type UserData struct {
	Email      string `json:"em,omitempty"`          // SHA256 hashed email
	Phone      string `json:"ph,omitempty"`          // SHA256 hashed phone
	FirstName  string `json:"fn,omitempty"`          // SHA256 hashed first name
	LastName   string `json:"ln,omitempty"`          // SHA256 hashed last name
	ExternalID string `json:"external_id,omitempty"` // Any unique ID from your system
	ClientIP   string `json:"client_ip_address,omitempty"`
	UserAgent  string `json:"client_user_agent,omitempty"`
}

// CustomData carries the lead context
type CustomData struct {
	ContentName     string   `json:"content_name,omitempty"`
	ContentCategory string   `json:"content_category,omitempty"`
	ContentIDs      []string `json:"content_ids,omitempty"`
}

// Event represents a single CAPI event
type Event struct {
	EventName      string     `json:"event_name"`
	EventTime      int64      `json:"event_time"`
	ActionSource   string     `json:"action_source"`
	EventSourceURL string     `json:"event_source_url,omitempty"`
	UserData       UserData   `json:"user_data"`
	CustomData     CustomData `json:"custom_data,omitempty"`
	EventID        string     `json:"event_id,omitempty"` // For deduplication with browser events
}

// EventPayload is the request body for CAPI
type EventPayload struct {
	Data []Event `json:"data"`
}

// SendEvent sends a single event to Facebook CAPI with simple retry logic
func (c *CAPIClient) SendEvent(ctx context.Context, event Event) error {
	if c == nil {
		return nil // CAPI disabled
	}

	payload := EventPayload{
		Data: []Event{event},
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	url := fmt.Sprintf("%s/%s/%s/events?access_token=%s",
		c.graphURL, c.apiVersion, c.pixelID, c.accessToken)

	var lastErr error
	for i := 0; i < 3; i++ { // Retry up to 3 times
		lastErr = c.post(ctx, url, jsonData)
		if lastErr == nil {
			logger.Debug().Str("event", event.EventName).Msg("[CAPI] Event sent successfully")
			return nil
		}

		var permanent *permanentError
		if errors.As(lastErr, &permanent) {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(i+1) * time.Second):
		}
	}

	return lastErr
}

type permanentError struct {
	status int
	body   string
}

func (e *permanentError) Error() string {
	return fmt.Sprintf("CAPI error (status %d): %s", e.status, e.body)
}

func (c *CAPIClient) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build CAPI request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("CAPI request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	respBody, _ := io.ReadAll(resp.Body)
	// A 4xx other than 429 is a payload problem; retrying will not help
	if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
		return &permanentError{status: resp.StatusCode, body: string(respBody)}
	}
	return fmt.Errorf("CAPI error (status %d): %s", resp.StatusCode, string(respBody))
}

// TrackLead reports a successful contact or quote submission as a "Lead" event.
// Contact details are hashed before they leave the process. The event is sent in the
// background so the visitor's response is not held up.
func (c *CAPIClient) TrackLead(ctx context.Context, form domain.RelayForm, sourceURL, clientIP, userAgent string) {
	if c == nil {
		return
	}

	first, last := splitName(form.Submission.Name)
	event := Event{
		EventName:      "Lead",
		EventTime:      time.Now().Unix(),
		ActionSource:   "website",
		EventSourceURL: sourceURL,
		UserData: UserData{
			Email:      HashSHA256(form.Submission.Email),
			Phone:      HashSHA256(form.Submission.Phone),
			FirstName:  HashSHA256(first),
			LastName:   HashSHA256(last),
			ExternalID: HashSHA256(domain.VisitorFromContext(ctx)),
			ClientIP:   clientIP,
			UserAgent:  userAgent,
		},
		CustomData: CustomData{
			ContentName:     form.Subject,
			ContentCategory: form.Kind,
		},
	}
	if form.ProductSlug != "" {
		event.CustomData.ContentIDs = []string{form.ProductSlug}
	}

	go func() {
		sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
		defer cancel()
		if err := c.SendEvent(sendCtx, event); err != nil {
			logger.Error().Err(err).Msg("[CAPI] Failed to send Lead event")
		}
	}()
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], parts[len(parts)-1]
	}
}
