package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/isaktapper/klaralyze/internal/config"
	"github.com/isaktapper/klaralyze/internal/domain"
	"github.com/isaktapper/klaralyze/internal/zendesk"
)

// TicketSource is the upstream-acquisition surface the services consume.
// *zendesk.Client satisfies it; tests substitute fakes.
type TicketSource interface {
	VerifyCredentials(ctx context.Context) bool
	FetchTickets(ctx context.Context, startTime *time.Time) ([]domain.Ticket, error)
	FetchFiltered(ctx context.Context, params zendesk.FetchParams) ([]domain.Ticket, error)
	FetchClosed(ctx context.Context, params zendesk.FetchParams) ([]domain.Ticket, error)
	EnrichComments(ctx context.Context, tickets []domain.Ticket, limit, concurrency int)
	FetchComments(ctx context.Context, ticketID int64) ([]domain.Comment, error)
	FetchAgents(ctx context.Context) ([]domain.Agent, error)
	FetchGroups(ctx context.Context) ([]domain.Group, error)
}

// SourceFactory builds a TicketSource for one credential triple. Sources
// are per-request; nothing is cached across calls.
type SourceFactory func(creds domain.Credentials) TicketSource

// NewZendeskSourceFactory wires the real client with config-driven tuning.
func NewZendeskSourceFactory(cfg config.ZendeskConfig, logger *zap.Logger) SourceFactory {
	return func(creds domain.Credentials) TicketSource {
		return zendesk.NewClient(creds, zendesk.Options{
			Timeout:      cfg.HTTPTimeout(),
			MaxRetries:   cfg.MaxRetries,
			RetryBackoff: cfg.RetryBackoff(),
		}, logger)
	}
}
