package domain

import "time"

// ImportRun records one snapshot import of tickets and agents.
type ImportRun struct {
	ID          string    `json:"id"`
	OrgID       string    `json:"org_id"`
	TicketCount int       `json:"ticket_count"`
	AgentCount  int       `json:"agent_count"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}
