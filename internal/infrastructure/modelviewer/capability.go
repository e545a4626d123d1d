package modelviewer

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"interiorhub-web/internal/domain"
	"interiorhub-web/internal/infrastructure/metrics"
	"interiorhub-web/pkg/logger"
)

// Capability tracks whether the model-viewer script can be served to pages.
// The script is fetched once per process; a failed check is final.
type Capability struct {
	scriptURL  string
	httpClient *http.Client

	ready atomic.Bool
	err   atomic.Pointer[error]
	once  sync.Once
	done  chan struct{}
}

func NewCapability(scriptURL string, timeout time.Duration) *Capability {
	return &Capability{
		scriptURL: scriptURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		done: make(chan struct{}),
	}
}

func (c *Capability) Ready() bool {
	return c.ready.Load()
}

// Err reports why the check failed, or nil while it has not failed.
func (c *Capability) Err() error {
	if err := c.err.Load(); err != nil {
		return *err
	}
	return nil
}

func (c *Capability) ScriptURL() string {
	return c.scriptURL
}

// Done is closed once the check has finished, successfully or not.
func (c *Capability) Done() <-chan struct{} {
	return c.done
}

// Load starts the background check. Only the first call does anything;
// the check outlives the caller's context cancellation.
func (c *Capability) Load(ctx context.Context) {
	if c.ready.Load() {
		return
	}
	c.once.Do(func() {
		go c.check(context.WithoutCancel(ctx))
	})
}

func (c *Capability) check(ctx context.Context) {
	defer close(c.done)
	start := time.Now()

	err := c.fetch(ctx)
	if err != nil {
		err = fmt.Errorf("%w: %w", domain.ErrCapabilityUnavailable, err)
		c.err.Store(&err)
		logger.Error().
			Err(err).
			Str("script_url", c.scriptURL).
			Dur("duration", time.Since(start)).
			Msg("model-viewer failed to load, falling back to image gallery")
		return
	}

	// Someone may have marked it ready while the check was in flight
	if !c.ready.Load() {
		c.ready.Store(true)
		metrics.ModelCapabilityReady.Set(1)
	}
	logger.Info().
		Str("script_url", c.scriptURL).
		Dur("duration", time.Since(start)).
		Msg("model-viewer available")
}

func (c *Capability) fetch(ctx context.Context) error {
	if c.scriptURL == "" {
		return fmt.Errorf("no script URL configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.scriptURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build script request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("script request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("script request returned status %d", resp.StatusCode)
	}
	return nil
}
