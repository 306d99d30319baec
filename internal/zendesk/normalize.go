package zendesk

import (
	"errors"
	"strings"
	"time"

	"github.com/isaktapper/klaralyze/internal/domain"
)

var errMissingTicketID = errors.New("zendesk: ticket payload missing id")

// normalizeTicket maps one raw upstream ticket into the internal shape.
// Pure and idempotent: the same payload always yields an identical Ticket.
// Absent optional fields map to nil or an empty container, never an error;
// only a missing id rejects the record.
func normalizeTicket(raw rawTicket) (domain.Ticket, error) {
	if raw.ID == nil {
		return domain.Ticket{}, errMissingTicketID
	}

	ticket := domain.Ticket{
		TicketID:    *raw.ID,
		Subject:     raw.Subject,
		Description: raw.Description,
		Status:      domain.TicketStatus(strings.ToLower(raw.Status)),
		AssigneeID:  copyInt64(raw.AssigneeID),
		RequesterID: copyInt64(raw.RequesterID),
		GroupID:     copyInt64(raw.GroupID),
		CreatedDate: derefTime(raw.CreatedAt),
		UpdatedDate: derefTime(raw.UpdatedAt),
		Tags:        append([]string{}, raw.Tags...),
	}

	if raw.Priority != nil {
		priority := domain.TicketPriority(strings.ToLower(*raw.Priority))
		ticket.Priority = &priority
	}

	ticket.CustomFields = make(map[int64]any, len(raw.CustomFields))
	for _, field := range raw.CustomFields {
		ticket.CustomFields[field.ID] = field.Value
	}

	if metric := raw.MetricSet; metric != nil {
		if metric.SolvedAt != nil {
			solved := metric.SolvedAt.UTC()
			ticket.SolvedDate = &solved
		}
		// Calendar minutes default to nil when absent. A ticket with no
		// recorded resolution time must not read as "resolved in 0 minutes";
		// downstream averaging filters on nil-ness.
		ticket.FirstResponseTimeMinutes = calendarMinutes(metric.ReplyTime)
		ticket.FullResolutionTimeMinutes = calendarMinutes(metric.FullResolutionTime)
	}

	return ticket, nil
}

// normalizeTickets maps a batch, preserving upstream order and dropping
// records that fail schema validation.
func normalizeTickets(raws []rawTicket) ([]domain.Ticket, int) {
	tickets := make([]domain.Ticket, 0, len(raws))
	dropped := 0
	for _, raw := range raws {
		ticket, err := normalizeTicket(raw)
		if err != nil {
			dropped++
			continue
		}
		tickets = append(tickets, ticket)
	}
	return tickets, dropped
}

func calendarMinutes(pair *rawMinutePair) *int64 {
	if pair == nil || pair.Calendar == nil {
		return nil
	}
	minutes := *pair.Calendar
	return &minutes
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
