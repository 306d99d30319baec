package zendesk

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/isaktapper/klaralyze/internal/domain"
)

// Enrichment defaults. Both are overridable per call.
const (
	DefaultEnrichmentCap         = 20
	DefaultEnrichmentConcurrency = 4
)

// FetchComments returns the full conversation thread for one ticket, in
// upstream order.
func (c *Client) FetchComments(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	path := fmt.Sprintf("/api/v2/tickets/%d/comments.json", ticketID)

	var payload commentsResponse
	if err := c.get(ctx, path, nil, &payload); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(payload.Comments))
	for _, raw := range payload.Comments {
		if raw.ID == nil {
			continue
		}
		comment := domain.Comment{
			CommentID: *raw.ID,
			AuthorID:  raw.AuthorID,
			Body:      raw.Body,
			Public:    raw.Public,
		}
		if raw.CreatedAt != nil {
			comment.CreatedAt = raw.CreatedAt.UTC()
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// EnrichComments attaches conversation threads to the first limit tickets,
// fanning out over a bounded worker pool. A failed per-ticket fetch leaves
// that ticket with an empty (non-nil) comment slice and never disturbs its
// siblings; tickets beyond the cap keep a nil Comments field so callers can
// tell "not enriched" from "empty thread". Cancelling ctx stops outstanding
// fetches, with the affected tickets taking the empty-slice fallback.
func (c *Client) EnrichComments(ctx context.Context, tickets []domain.Ticket, limit, concurrency int) {
	if limit <= 0 {
		limit = DefaultEnrichmentCap
	}
	if concurrency <= 0 {
		concurrency = DefaultEnrichmentConcurrency
	}
	if limit > len(tickets) {
		limit = len(tickets)
	}

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	for i := 0; i < limit; i++ {
		wg.Add(1)
		go func(ticket *domain.Ticket) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			comments, err := c.FetchComments(ctx, ticket.TicketID)
			if err != nil {
				c.logger.Warn("comment enrichment failed",
					zap.Int64("ticket_id", ticket.TicketID),
					zap.Error(err))
				ticket.Comments = []domain.Comment{}
				return
			}
			ticket.Comments = comments
		}(&tickets[i])
	}
	wg.Wait()
}
