package dto

import (
	"time"

	"github.com/isaktapper/klaralyze/internal/domain"
)

// OverviewResponse is the primary dashboard payload.
type OverviewResponse struct {
	Tickets []domain.Ticket       `json:"tickets"`
	Summary domain.MetricsSummary `json:"summary"`
}

// ResolutionResponse backs the resolution-time report.
type ResolutionResponse struct {
	Tickets                  []domain.Ticket `json:"tickets"`
	CountByClosedDate        map[string]int  `json:"count_by_closed_date"`
	AvgResolutionTimeMinutes *float64        `json:"avg_resolution_time_minutes"`
}

// ImportRequest optionally bounds the import to recently created tickets.
type ImportRequest struct {
	StartTime *string `json:"start_time"`
}

// ImportResponse reports an import run.
type ImportResponse struct {
	RunID       string    `json:"run_id"`
	TicketCount int       `json:"ticket_count"`
	AgentCount  int       `json:"agent_count"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}
