package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isaktapper/klaralyze/internal/domain"
	"github.com/isaktapper/klaralyze/internal/repository"
	"github.com/isaktapper/klaralyze/internal/secrets"
	apperrors "github.com/isaktapper/klaralyze/pkg/util/errorutil"
)

// ImportService copies upstream tickets and agents into the record store.
// This is the one write-leg of the system; the analytics core stays
// read-only against upstream.
type ImportService struct {
	orgs      repository.OrganizationRepository
	snapshots repository.SnapshotRepository
	box       *secrets.Box
	source    SourceFactory
	logger    *zap.Logger
}

// ImportDependencies bundles collaborators for the service.
type ImportDependencies struct {
	OrgRepo      repository.OrganizationRepository
	SnapshotRepo repository.SnapshotRepository
	Box          *secrets.Box
	Source       SourceFactory
	Logger       *zap.Logger
}

// NewImportService constructs the service.
func NewImportService(deps ImportDependencies) *ImportService {
	return &ImportService{
		orgs:      deps.OrgRepo,
		snapshots: deps.SnapshotRepo,
		box:       deps.Box,
		source:    deps.Source,
		logger:    deps.Logger,
	}
}

// Run fetches the bulk ticket listing and agent roster and replaces the
// organization's stored snapshot.
func (s *ImportService) Run(ctx context.Context, slug string, startTime *time.Time) (*domain.ImportRun, error) {
	creds, org, err := credentialsFor(ctx, s.orgs, s.box, slug)
	if err != nil {
		return nil, err
	}

	src := s.source(creds)
	if !src.VerifyCredentials(ctx) {
		return nil, apperrors.NewUnauthorized("stored zendesk credentials are no longer valid")
	}

	startedAt := time.Now().UTC()

	tickets, err := src.FetchTickets(ctx, startTime)
	if err != nil {
		return nil, mapUpstreamError(err)
	}
	agents, err := src.FetchAgents(ctx)
	if err != nil {
		return nil, mapUpstreamError(err)
	}

	ticketCount, err := s.snapshots.ReplaceTickets(ctx, org.ID, tickets)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	agentCount, err := s.snapshots.ReplaceAgents(ctx, org.ID, agents)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	run := &domain.ImportRun{
		ID:          uuid.NewString(),
		OrgID:       org.ID,
		TicketCount: ticketCount,
		AgentCount:  agentCount,
		StartedAt:   startedAt,
		FinishedAt:  time.Now().UTC(),
	}
	if err := s.snapshots.RecordRun(ctx, run); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("import run finished",
		zap.String("slug", slug),
		zap.Int("tickets", ticketCount),
		zap.Int("agents", agentCount))
	return run, nil
}
