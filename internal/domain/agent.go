package domain

// Agent is a read-only snapshot of a support agent from the upstream roster.
type Agent struct {
	AgentID int64  `json:"agent_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Active  bool   `json:"active"`
}

// Group is an upstream organizational unit used as a filter dimension.
type Group struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}
