package zendesk

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/isaktapper/klaralyze/internal/domain"
)

// FetchParams narrows a filtered or closed fetch. A nil StartTime means no
// lower bound; an empty GroupIDs slice means all groups.
type FetchParams struct {
	StartTime *time.Time
	GroupIDs  []int64
}

var (
	filteredStatuses = []domain.TicketStatus{
		domain.TicketStatusOpen,
		domain.TicketStatusPending,
		domain.TicketStatusSolved,
	}
	// Closed reporting counts solved alongside closed: solved tickets carry
	// the resolution metric the report exists for.
	closedStatuses = []domain.TicketStatus{
		domain.TicketStatusClosed,
		domain.TicketStatusSolved,
	}
)

// FetchTickets pulls the bulk ticket listing with metrics included inline,
// optionally bounded to tickets created at or after startTime.
func (c *Client) FetchTickets(ctx context.Context, startTime *time.Time) ([]domain.Ticket, error) {
	query := url.Values{}
	query.Set("include", "metrics")
	if startTime != nil {
		query.Set("start_time", strconv.FormatInt(startTime.Unix(), 10))
	}

	var payload ticketsResponse
	if err := c.get(ctx, "/api/v2/tickets.json", query, &payload); err != nil {
		return nil, err
	}
	return c.normalized(payload.Tickets), nil
}

// FetchFiltered returns tickets with status open, pending or solved,
// optionally bounded by creation time and group membership. This backs the
// dashboard's primary ticket view.
func (c *Client) FetchFiltered(ctx context.Context, params FetchParams) ([]domain.Ticket, error) {
	return c.search(ctx, filteredStatuses, params)
}

// FetchClosed returns tickets with status closed or solved, used for
// resolution-time reporting.
func (c *Client) FetchClosed(ctx context.Context, params FetchParams) ([]domain.Ticket, error) {
	return c.search(ctx, closedStatuses, params)
}

func (c *Client) search(ctx context.Context, statuses []domain.TicketStatus, params FetchParams) ([]domain.Ticket, error) {
	searchQuery := SearchQuery{
		Statuses:     statuses,
		CreatedAfter: params.StartTime,
		GroupIDs:     params.GroupIDs,
	}

	query := url.Values{}
	query.Set("query", searchQuery.String())
	query.Set("include", "metric_sets")

	var payload searchResponse
	if err := c.get(ctx, "/api/v2/search.json", query, &payload); err != nil {
		return nil, err
	}
	return c.normalized(payload.Results), nil
}

// normalized maps raw payloads in upstream order, logging dropped records.
func (c *Client) normalized(raws []rawTicket) []domain.Ticket {
	tickets, dropped := normalizeTickets(raws)
	if dropped > 0 {
		c.logger.Warn("dropped malformed ticket payloads", zap.Int("count", dropped))
	}
	return tickets
}
