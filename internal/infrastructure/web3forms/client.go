package web3forms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"interiorhub-web/internal/domain"

	"github.com/goccy/go-json"
)

// maxResponseBytes caps how much of the relay response is read.
const maxResponseBytes = 1 << 20

// Client posts forms to a Web3Forms-compatible relay endpoint.
type Client struct {
	endpoint   string
	accessKey  string
	httpClient *http.Client
}

func NewClient(endpoint, accessKey string, timeout time.Duration) *Client {
	return &Client{
		endpoint:  endpoint,
		accessKey: accessKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Encode builds the form body. The honeypot field is always present, empty unless the
// visitor filled it in.
func (c *Client) Encode(form domain.RelayForm) url.Values {
	values := url.Values{}
	values.Set("access_key", c.accessKey)
	values.Set("subject", form.Subject)
	values.Set("botcheck", form.Submission.Botcheck)
	values.Set("name", form.Submission.Name)
	values.Set("phone", form.Submission.Phone)
	values.Set("email", form.Submission.Email)
	values.Set("message", form.Submission.Message)
	if form.Kind == domain.FormKindQuote {
		values.Set("product_slug", form.ProductSlug)
		values.Set("product_title", form.ProductTitle)
	}
	return values
}

// Submit sends one form. It makes a single attempt; a non-JSON reply is an error.
func (c *Client) Submit(ctx context.Context, form domain.RelayForm) (*domain.RelayResult, error) {
	body := c.Encode(form).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("relay request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read relay response: %w", err)
	}

	var result domain.RelayResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("relay returned status %d with undecodable body: %w", resp.StatusCode, err)
	}
	return &result, nil
}
