package dto

// VerifyRequest carries a credential triple for the pre-flight check.
type VerifyRequest struct {
	Domain   string `json:"domain"`
	Email    string `json:"email"`
	APIToken string `json:"api_token"`
}

// VerifyResponse reports the outcome of the pre-flight check.
type VerifyResponse struct {
	Valid bool `json:"valid"`
}

// ConnectRequest establishes an organization's Zendesk connection.
type ConnectRequest struct {
	Name     string  `json:"name"`
	Domain   string  `json:"domain"`
	Email    string  `json:"email"`
	APIToken string  `json:"api_token"`
	GroupIDs []int64 `json:"group_ids"`
}

// ConnectionStatusResponse describes the stored connection. The API token
// is never echoed back.
type ConnectionStatusResponse struct {
	Slug             string  `json:"slug"`
	Name             string  `json:"name"`
	ZendeskDomain    string  `json:"zendesk_domain"`
	ZendeskAPIEmail  string  `json:"zendesk_api_email"`
	Connected        bool    `json:"connected"`
	SelectedGroupIDs []int64 `json:"selected_group_ids"`
}

// SessionMetadataRequest merges keys into the principal's metadata bag. An
// empty string value removes the key.
type SessionMetadataRequest struct {
	Metadata map[string]string `json:"metadata"`
}

// SessionMetadataResponse returns the current bag.
type SessionMetadataResponse struct {
	Metadata map[string]string `json:"metadata"`
}
