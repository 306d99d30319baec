package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/isaktapper/klaralyze/internal/config"
	"github.com/isaktapper/klaralyze/internal/domain"
	"github.com/isaktapper/klaralyze/internal/zendesk"
	apperrors "github.com/isaktapper/klaralyze/pkg/util/errorutil"
)

func minutes(v int64) *int64 { return &v }

func newDashboardService(t *testing.T, source *fakeSource, groupIDs []int64) *DashboardService {
	repo := newFakeOrgRepo()
	box := testBox(t)
	seedConnectedOrg(t, repo, box, "acme", groupIDs)
	return NewDashboardService(DashboardDependencies{
		OrgRepo: repo,
		Box:     box,
		Source:  source.factory(),
		Zendesk: config.ZendeskConfig{EnrichmentCap: 20, EnrichmentConcurrency: 4},
		Logger:  zap.NewNop(),
	})
}

func TestOverviewFetchesEnrichesAndSummarizes(t *testing.T) {
	source := &fakeSource{
		verifyResult: true,
		filtered: []domain.Ticket{
			{TicketID: 1, Status: domain.TicketStatusSolved, FullResolutionTimeMinutes: minutes(120)},
			{TicketID: 2, Status: domain.TicketStatusOpen},
			{TicketID: 3, Status: domain.TicketStatusSolved, FullResolutionTimeMinutes: minutes(60)},
		},
	}
	svc := newDashboardService(t, source, nil)

	result, err := svc.Overview(context.Background(), "acme", DashboardQuery{})
	require.NoError(t, err)

	assert.True(t, source.enrichedCalled)
	assert.Equal(t, 20, source.enrichedLimit)
	assert.Equal(t, 4, source.enrichedConc)

	assert.Equal(t, map[string]int{"solved": 2, "open": 1}, result.Summary.CountByStatus)
	require.NotNil(t, result.Summary.AvgResolutionTimeMinutes)
	assert.Equal(t, float64(90), *result.Summary.AvgResolutionTimeMinutes)

	// the decrypted stored credentials reach the source factory
	assert.Equal(t, "acme.zendesk.com", source.creds.Domain)
	assert.Equal(t, "stored-token", source.creds.APIToken)
}

func TestOverviewUsesStoredGroupSelection(t *testing.T) {
	source := &fakeSource{verifyResult: true}
	svc := newDashboardService(t, source, []int64{7, 9})

	_, err := svc.Overview(context.Background(), "acme", DashboardQuery{})
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 9}, source.lastParams.GroupIDs)
}

func TestOverviewExplicitEmptyGroupsOverridesSelection(t *testing.T) {
	source := &fakeSource{verifyResult: true}
	svc := newDashboardService(t, source, []int64{7, 9})

	_, err := svc.Overview(context.Background(), "acme", DashboardQuery{GroupIDs: []int64{}})
	require.NoError(t, err)

	assert.NotNil(t, source.lastParams.GroupIDs)
	assert.Empty(t, source.lastParams.GroupIDs)
}

func TestOverviewPassesStartTime(t *testing.T) {
	source := &fakeSource{verifyResult: true}
	svc := newDashboardService(t, source, nil)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	_, err := svc.Overview(context.Background(), "acme", DashboardQuery{StartTime: &start})
	require.NoError(t, err)

	require.NotNil(t, source.lastParams.StartTime)
	assert.Equal(t, start, *source.lastParams.StartTime)
}

func TestOverviewRejectedStoredCredentials(t *testing.T) {
	source := &fakeSource{verifyResult: false}
	svc := newDashboardService(t, source, nil)

	_, err := svc.Overview(context.Background(), "acme", DashboardQuery{})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, http.StatusUnauthorized, domainErr.HTTPStatus)
}

func TestOverviewMapsUpstreamFailures(t *testing.T) {
	source := &fakeSource{
		verifyResult: true,
		err:          &zendesk.UpstreamError{StatusCode: http.StatusServiceUnavailable, Body: "maintenance"},
	}
	svc := newDashboardService(t, source, nil)

	_, err := svc.Overview(context.Background(), "acme", DashboardQuery{})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
	assert.Equal(t, "UPSTREAM_FAILED", domainErr.Code)
}

func TestResolutionComputesClosedMetrics(t *testing.T) {
	day := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	source := &fakeSource{
		verifyResult: true,
		closed: []domain.Ticket{
			{TicketID: 1, Status: domain.TicketStatusClosed, SolvedDate: &day, FullResolutionTimeMinutes: minutes(30)},
			{TicketID: 2, Status: domain.TicketStatusSolved},
		},
	}
	svc := newDashboardService(t, source, nil)

	result, err := svc.Resolution(context.Background(), "acme", DashboardQuery{})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"2024-03-01": 1}, result.CountByClosedDate)
	require.NotNil(t, result.AvgResolutionTimeMinutes)
	assert.Equal(t, float64(30), *result.AvgResolutionTimeMinutes)
}

func TestDashboardUnconnectedOrgIsRejected(t *testing.T) {
	repo := newFakeOrgRepo()
	repo.orgs["acme"] = &domain.Organization{ID: "org-1", Slug: "acme", ZendeskConnected: false}
	svc := NewDashboardService(DashboardDependencies{
		OrgRepo: repo,
		Box:     testBox(t),
		Source:  (&fakeSource{verifyResult: true}).factory(),
		Zendesk: config.ZendeskConfig{},
		Logger:  zap.NewNop(),
	})

	_, err := svc.Overview(context.Background(), "acme", DashboardQuery{})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
}
