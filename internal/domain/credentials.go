package domain

import "strings"

// Credentials identifies a Zendesk account for API access. The triple is
// passed by value into each call and never cached by the core.
type Credentials struct {
	Domain   string
	Email    string
	APIToken string
}

// NormalizedDomain strips a leading scheme and trailing slashes so callers
// may supply either "acme.zendesk.com" or "https://acme.zendesk.com/".
func (c Credentials) NormalizedDomain() string {
	domain := strings.TrimSpace(c.Domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimRight(domain, "/")
}

// Complete reports whether all three fields are present.
func (c Credentials) Complete() bool {
	return c.NormalizedDomain() != "" && c.Email != "" && c.APIToken != ""
}
