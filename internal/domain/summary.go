package domain

// MetricsSummary is derived per fetch and never persisted.
type MetricsSummary struct {
	TotalTickets             int            `json:"total_tickets"`
	CountByStatus            map[string]int `json:"count_by_status"`
	CountByClosedDate        map[string]int `json:"count_by_closed_date"`
	AvgResolutionTimeMinutes *float64       `json:"avg_resolution_time_minutes"`
}
