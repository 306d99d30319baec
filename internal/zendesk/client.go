package zendesk

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/isaktapper/klaralyze/internal/domain"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultMaxRetries   = 2
	defaultRetryBackoff = 500 * time.Millisecond
)

// Options tunes client behavior. The zero value is usable.
type Options struct {
	// Timeout bounds each upstream request. Zendesk publishes no SLA, so
	// every call carries a deadline.
	Timeout time.Duration
	// MaxRetries bounds additional attempts after a 429 or 5xx response.
	// Auth failures and other 4xx responses are never retried.
	MaxRetries int
	// RetryBackoff is the base delay, doubled per attempt.
	RetryBackoff time.Duration
	// BaseURL overrides the domain-derived URL. Tests point this at a
	// local server.
	BaseURL string
	// HTTPClient overrides the default transport.
	HTTPClient *http.Client
}

// Client is the authenticated HTTP primitive shared by every fetcher. It
// holds no mutable state beyond the credential triple it was built with,
// so a Client is safe for concurrent use and cheap to discard per request.
type Client struct {
	creds   domain.Credentials
	baseURL string
	http    *http.Client
	retries int
	backoff time.Duration
	logger  *zap.Logger
}

// NewClient builds a client for one credential triple.
func NewClient(creds domain.Credentials, opts Options, logger *zap.Logger) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	retries := opts.MaxRetries
	if retries < 0 {
		retries = defaultMaxRetries
	}
	backoff := opts.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = "https://" + creds.NormalizedDomain()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		creds:   creds,
		baseURL: baseURL,
		http:    httpClient,
		retries: retries,
		backoff: backoff,
		logger:  logger,
	}
}

// VerifyCredentials confirms the credential triple against the "who am I"
// endpoint. Any failure, network or auth, maps to false; callers needing
// detail should use the fetchers, which propagate typed errors.
func (c *Client) VerifyCredentials(ctx context.Context) bool {
	if !c.creds.Complete() {
		return false
	}
	if err := c.get(ctx, "/api/v2/users/me.json", nil, nil); err != nil {
		c.logger.Debug("credential verification failed", zap.Error(err))
		return false
	}
	return true
}

// get issues one authenticated GET and decodes the JSON body into out when
// out is non-nil. Non-2xx responses become *UpstreamError, with 401/403
// wrapped in *AuthError. 429 and 5xx responses are retried with backoff up
// to the configured limit.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	for attempt := 0; ; attempt++ {
		body, err := c.do(ctx, endpoint)
		if err == nil {
			if out == nil {
				return nil
			}
			if uerr := json.Unmarshal(body, out); uerr != nil {
				return fmt.Errorf("zendesk: decode %s: %w", path, uerr)
			}
			return nil
		}

		if !retryable(err) || attempt >= c.retries {
			return err
		}
		delay := c.backoff << attempt
		c.logger.Debug("retrying upstream call",
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Duration("delay", delay),
			zap.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}
}

func (c *Client) do(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("zendesk: build request: %w", err)
	}
	// Zendesk API tokens authenticate as "<email>/token", not the plain
	// email. Using the bare email silently fails.
	req.SetBasicAuth(c.creds.Email+"/token", c.creds.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("zendesk: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("zendesk: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstream := &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, &AuthError{Upstream: upstream}
		}
		return nil, upstream
	}
	return body, nil
}

func retryable(err error) bool {
	upstream, ok := err.(*UpstreamError)
	if !ok {
		return false
	}
	return upstream.StatusCode == http.StatusTooManyRequests || upstream.StatusCode >= 500
}
