package service

import (
	"context"
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/isaktapper/klaralyze/internal/domain"
	"github.com/isaktapper/klaralyze/internal/secrets"
	"github.com/isaktapper/klaralyze/internal/zendesk"
)

// fakeSource is a scriptable TicketSource.
type fakeSource struct {
	creds domain.Credentials

	verifyResult bool
	tickets      []domain.Ticket
	filtered     []domain.Ticket
	closed       []domain.Ticket
	agents       []domain.Agent
	groups       []domain.Group
	err          error

	verifyCalls    int
	lastParams     zendesk.FetchParams
	lastStartTime  *time.Time
	enrichedLimit  int
	enrichedConc   int
	enrichedCalled bool
}

func (f *fakeSource) VerifyCredentials(ctx context.Context) bool {
	f.verifyCalls++
	return f.verifyResult
}

func (f *fakeSource) FetchTickets(ctx context.Context, startTime *time.Time) ([]domain.Ticket, error) {
	f.lastStartTime = startTime
	return f.tickets, f.err
}

func (f *fakeSource) FetchFiltered(ctx context.Context, params zendesk.FetchParams) ([]domain.Ticket, error) {
	f.lastParams = params
	return f.filtered, f.err
}

func (f *fakeSource) FetchClosed(ctx context.Context, params zendesk.FetchParams) ([]domain.Ticket, error) {
	f.lastParams = params
	return f.closed, f.err
}

func (f *fakeSource) EnrichComments(ctx context.Context, tickets []domain.Ticket, limit, concurrency int) {
	f.enrichedCalled = true
	f.enrichedLimit = limit
	f.enrichedConc = concurrency
}

func (f *fakeSource) FetchComments(ctx context.Context, ticketID int64) ([]domain.Comment, error) {
	return nil, f.err
}

func (f *fakeSource) FetchAgents(ctx context.Context) ([]domain.Agent, error) {
	return f.agents, f.err
}

func (f *fakeSource) FetchGroups(ctx context.Context) ([]domain.Group, error) {
	return f.groups, f.err
}

func (f *fakeSource) factory() SourceFactory {
	return func(creds domain.Credentials) TicketSource {
		f.creds = creds
		return f
	}
}

// fakeOrgRepo is an in-memory OrganizationRepository.
type fakeOrgRepo struct {
	orgs map[string]*domain.Organization
}

func newFakeOrgRepo() *fakeOrgRepo {
	return &fakeOrgRepo{orgs: make(map[string]*domain.Organization)}
}

func (r *fakeOrgRepo) Upsert(ctx context.Context, org *domain.Organization) error {
	stored := *org
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.orgs[org.Slug] = &stored
	return nil
}

func (r *fakeOrgRepo) GetBySlug(ctx context.Context, slug string) (*domain.Organization, error) {
	org, ok := r.orgs[slug]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *org
	return &copied, nil
}

func (r *fakeOrgRepo) UpdateSettings(ctx context.Context, slug string, settings map[string]any) error {
	org, ok := r.orgs[slug]
	if !ok {
		return pgx.ErrNoRows
	}
	org.Settings = settings
	return nil
}

func (r *fakeOrgRepo) Disconnect(ctx context.Context, slug string) error {
	org, ok := r.orgs[slug]
	if !ok {
		return pgx.ErrNoRows
	}
	org.ZendeskConnected = false
	org.SealedAPIToken = nil
	org.SelectedGroupIDs = nil
	return nil
}

// fakeSnapshotRepo records replace calls.
type fakeSnapshotRepo struct {
	tickets []domain.Ticket
	agents  []domain.Agent
	runs    []*domain.ImportRun
}

func (r *fakeSnapshotRepo) ReplaceTickets(ctx context.Context, orgID string, tickets []domain.Ticket) (int, error) {
	r.tickets = tickets
	return len(tickets), nil
}

func (r *fakeSnapshotRepo) ReplaceAgents(ctx context.Context, orgID string, agents []domain.Agent) (int, error) {
	r.agents = agents
	return len(agents), nil
}

func (r *fakeSnapshotRepo) RecordRun(ctx context.Context, run *domain.ImportRun) error {
	r.runs = append(r.runs, run)
	return nil
}

func testBox(t *testing.T) *secrets.Box {
	t.Helper()
	box, err := secrets.NewBox(hex.EncodeToString([]byte(strings.Repeat("k", 32))))
	require.NoError(t, err)
	return box
}

func seedConnectedOrg(t *testing.T, repo *fakeOrgRepo, box *secrets.Box, slug string, groupIDs []int64) {
	t.Helper()
	sealed, err := box.Seal("stored-token")
	require.NoError(t, err)
	repo.orgs[slug] = &domain.Organization{
		ID:               "org-1",
		Slug:             slug,
		ZendeskDomain:    "acme.zendesk.com",
		ZendeskAPIEmail:  "agent@acme.test",
		SealedAPIToken:   sealed,
		ZendeskConnected: true,
		SelectedGroupIDs: groupIDs,
	}
}
