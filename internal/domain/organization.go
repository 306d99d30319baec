package domain

import "time"

// Organization is the record-store row holding a customer's Zendesk
// connection. The API token is sealed before it reaches the row.
type Organization struct {
	ID               string
	Slug             string
	Name             string
	ZendeskDomain    string
	ZendeskAPIEmail  string
	SealedAPIToken   []byte
	ZendeskConnected bool
	SelectedGroupIDs []int64
	Settings         map[string]any
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
