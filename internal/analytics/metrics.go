// Package analytics provides pure aggregation helpers over normalized
// tickets. Nothing here performs I/O or holds state between calls.
package analytics

import (
	"strings"

	"github.com/isaktapper/klaralyze/internal/domain"
)

// UnknownStatusKey buckets tickets whose status is missing or unrecognized.
const UnknownStatusKey = "unknown"

// CountByStatus maps lowercased status to ticket count. Every input ticket
// lands in exactly one bucket, so the bucket counts sum to len(tickets).
func CountByStatus(tickets []domain.Ticket) map[string]int {
	counts := make(map[string]int)
	for _, ticket := range tickets {
		status := strings.ToLower(strings.TrimSpace(string(ticket.Status)))
		if status == "" {
			status = UnknownStatusKey
		}
		counts[status]++
	}
	return counts
}

// CountByClosedDate maps YYYY-MM-DD (solved date, UTC) to ticket count.
// Tickets without a solved date contribute to no bucket.
func CountByClosedDate(tickets []domain.Ticket) map[string]int {
	counts := make(map[string]int)
	for _, ticket := range tickets {
		if ticket.SolvedDate == nil {
			continue
		}
		counts[ticket.SolvedDate.UTC().Format("2006-01-02")]++
	}
	return counts
}

// AvgResolutionTime returns the mean full-resolution time in minutes over
// tickets that carry the metric, or nil when none do. "No data" must stay
// distinguishable from "resolved in zero minutes".
func AvgResolutionTime(tickets []domain.Ticket) *float64 {
	var sum int64
	var eligible int
	for _, ticket := range tickets {
		if ticket.FullResolutionTimeMinutes == nil {
			continue
		}
		sum += *ticket.FullResolutionTimeMinutes
		eligible++
	}
	if eligible == 0 {
		return nil
	}
	avg := float64(sum) / float64(eligible)
	return &avg
}

// Summarize computes the per-fetch metrics bundle.
func Summarize(tickets []domain.Ticket) domain.MetricsSummary {
	return domain.MetricsSummary{
		TotalTickets:             len(tickets),
		CountByStatus:            CountByStatus(tickets),
		CountByClosedDate:        CountByClosedDate(tickets),
		AvgResolutionTimeMinutes: AvgResolutionTime(tickets),
	}
}
