package zendesk

import "fmt"

// UpstreamError reports a non-2xx response from the Zendesk API. Body holds
// the raw response bytes for diagnostics and is not assumed to be JSON.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("zendesk: upstream returned %d: %s", e.StatusCode, truncateBody(e.Body))
}

// AuthError marks a 401/403 response so callers can tell credential
// failures apart from other upstream failures without string matching.
type AuthError struct {
	Upstream *UpstreamError
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("zendesk: authentication rejected (%d)", e.Upstream.StatusCode)
}

func (e *AuthError) Unwrap() error {
	return e.Upstream
}

func truncateBody(body string) string {
	const max = 512
	if len(body) > max {
		return body[:max] + "..."
	}
	return body
}
