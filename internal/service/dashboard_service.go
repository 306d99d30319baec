package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/isaktapper/klaralyze/internal/analytics"
	"github.com/isaktapper/klaralyze/internal/config"
	"github.com/isaktapper/klaralyze/internal/domain"
	"github.com/isaktapper/klaralyze/internal/repository"
	"github.com/isaktapper/klaralyze/internal/secrets"
	"github.com/isaktapper/klaralyze/internal/zendesk"
	apperrors "github.com/isaktapper/klaralyze/pkg/util/errorutil"
)

// DashboardService runs the fetch -> normalize -> enrich -> aggregate
// pipeline behind the dashboard endpoints. All upstream data is fetched
// fresh per call; nothing is cached between requests.
type DashboardService struct {
	orgs   repository.OrganizationRepository
	box    *secrets.Box
	source SourceFactory
	cfg    config.ZendeskConfig
	logger *zap.Logger
}

// DashboardDependencies bundles collaborators for the service.
type DashboardDependencies struct {
	OrgRepo repository.OrganizationRepository
	Box     *secrets.Box
	Source  SourceFactory
	Zendesk config.ZendeskConfig
	Logger  *zap.Logger
}

// DashboardQuery narrows a dashboard fetch. GroupIDs == nil means "use the
// organization's stored selection"; an explicit empty slice means all
// groups.
type DashboardQuery struct {
	StartTime *time.Time
	GroupIDs  []int64
}

// OverviewResult is the primary dashboard payload.
type OverviewResult struct {
	Tickets []domain.Ticket       `json:"tickets"`
	Summary domain.MetricsSummary `json:"summary"`
}

// ResolutionResult backs resolution-time reporting over closed tickets.
type ResolutionResult struct {
	Tickets                  []domain.Ticket `json:"tickets"`
	CountByClosedDate        map[string]int  `json:"count_by_closed_date"`
	AvgResolutionTimeMinutes *float64        `json:"avg_resolution_time_minutes"`
}

// NewDashboardService constructs the service.
func NewDashboardService(deps DashboardDependencies) *DashboardService {
	return &DashboardService{
		orgs:   deps.OrgRepo,
		box:    deps.Box,
		source: deps.Source,
		cfg:    deps.Zendesk,
		logger: deps.Logger,
	}
}

// Overview fetches open/pending/solved tickets, enriches the leading
// tickets with conversation threads and aggregates the metrics summary.
func (s *DashboardService) Overview(ctx context.Context, slug string, query DashboardQuery) (*OverviewResult, error) {
	src, org, err := s.sourceFor(ctx, slug)
	if err != nil {
		return nil, err
	}

	tickets, err := src.FetchFiltered(ctx, s.fetchParams(org, query))
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	src.EnrichComments(ctx, tickets, s.cfg.EnrichmentCap, s.cfg.EnrichmentConcurrency)

	return &OverviewResult{
		Tickets: tickets,
		Summary: analytics.Summarize(tickets),
	}, nil
}

// Resolution fetches closed/solved tickets and derives resolution metrics.
func (s *DashboardService) Resolution(ctx context.Context, slug string, query DashboardQuery) (*ResolutionResult, error) {
	src, org, err := s.sourceFor(ctx, slug)
	if err != nil {
		return nil, err
	}

	tickets, err := src.FetchClosed(ctx, s.fetchParams(org, query))
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	return &ResolutionResult{
		Tickets:                  tickets,
		CountByClosedDate:        analytics.CountByClosedDate(tickets),
		AvgResolutionTimeMinutes: analytics.AvgResolutionTime(tickets),
	}, nil
}

// Agents returns the upstream agent roster for the organization.
func (s *DashboardService) Agents(ctx context.Context, slug string) ([]domain.Agent, error) {
	src, _, err := s.sourceFor(ctx, slug)
	if err != nil {
		return nil, err
	}
	agents, err := src.FetchAgents(ctx)
	if err != nil {
		return nil, mapUpstreamError(err)
	}
	return agents, nil
}

// Groups returns the upstream group roster for the organization.
func (s *DashboardService) Groups(ctx context.Context, slug string) ([]domain.Group, error) {
	src, _, err := s.sourceFor(ctx, slug)
	if err != nil {
		return nil, err
	}
	groups, err := src.FetchGroups(ctx)
	if err != nil {
		return nil, mapUpstreamError(err)
	}
	return groups, nil
}

// sourceFor loads the org's credentials and confirms connectivity before
// any data pull.
func (s *DashboardService) sourceFor(ctx context.Context, slug string) (TicketSource, *domain.Organization, error) {
	creds, org, err := credentialsFor(ctx, s.orgs, s.box, slug)
	if err != nil {
		return nil, nil, err
	}

	src := s.source(creds)
	if !src.VerifyCredentials(ctx) {
		s.logger.Warn("stored zendesk credentials rejected", zap.String("slug", slug))
		return nil, nil, apperrors.NewUnauthorized("stored zendesk credentials are no longer valid")
	}
	return src, org, nil
}

func (s *DashboardService) fetchParams(org *domain.Organization, query DashboardQuery) zendesk.FetchParams {
	groupIDs := query.GroupIDs
	if groupIDs == nil {
		groupIDs = org.SelectedGroupIDs
	}
	return zendesk.FetchParams{
		StartTime: query.StartTime,
		GroupIDs:  groupIDs,
	}
}
