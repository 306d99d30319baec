package zendesk

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchPayload = `{
	"results": [
		{"id": 11, "subject": "first", "status": "open", "created_at": "2024-03-02T10:00:00Z", "updated_at": "2024-03-02T11:00:00Z"},
		{"id": 7, "subject": "second", "status": "solved", "created_at": "2024-03-01T10:00:00Z", "updated_at": "2024-03-01T11:00:00Z"}
	]
}`

func TestFetchFilteredBuildsSearchRequest(t *testing.T) {
	var gotPath, gotQuery, gotInclude string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query().Get("query")
		gotInclude = r.URL.Query().Get("include")
		w.Write([]byte(searchPayload)) //nolint:errcheck
	}))

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tickets, err := client.FetchFiltered(context.Background(), FetchParams{
		StartTime: &start,
		GroupIDs:  []int64{7, 9},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/search.json", gotPath)
	assert.Equal(t, "metric_sets", gotInclude)
	assert.Contains(t, gotQuery, "created>2024-03-01T00:00:00Z")
	assert.Contains(t, gotQuery, "(group_id:7 OR group_id:9)")
	assert.Contains(t, gotQuery, "status:open")
	assert.Contains(t, gotQuery, "status:pending")
	assert.Contains(t, gotQuery, "status:solved")

	// upstream order is preserved
	require.Len(t, tickets, 2)
	assert.Equal(t, int64(11), tickets[0].TicketID)
	assert.Equal(t, int64(7), tickets[1].TicketID)
}

func TestFetchFilteredEmptyGroupsOmitsClause(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"results": []}`)) //nolint:errcheck
	}))

	_, err := client.FetchFiltered(context.Background(), FetchParams{GroupIDs: []int64{}})
	require.NoError(t, err)

	assert.NotContains(t, gotQuery, "group_id")
	assert.NotContains(t, gotQuery, "(")
}

func TestFetchClosedUsesClosedStatuses(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"results": []}`)) //nolint:errcheck
	}))

	_, err := client.FetchClosed(context.Background(), FetchParams{})
	require.NoError(t, err)

	assert.Contains(t, gotQuery, "status:closed")
	assert.Contains(t, gotQuery, "status:solved")
	assert.NotContains(t, gotQuery, "status:open")
}

func TestFetchTicketsBulkRequest(t *testing.T) {
	var gotPath, gotInclude, gotStart string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInclude = r.URL.Query().Get("include")
		gotStart = r.URL.Query().Get("start_time")
		w.Write([]byte(`{"tickets": [{"id": 3, "status": "new"}]}`)) //nolint:errcheck
	}))

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tickets, err := client.FetchTickets(context.Background(), &start)
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/tickets.json", gotPath)
	assert.Equal(t, "metrics", gotInclude)
	assert.Equal(t, "1704067200", gotStart)
	require.Len(t, tickets, 1)
	assert.Equal(t, int64(3), tickets[0].TicketID)
}

func TestFetchTicketsWithoutStartTime(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("start_time"))
		w.Write([]byte(`{"tickets": []}`)) //nolint:errcheck
	}))

	tickets, err := client.FetchTickets(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}

func TestFetchPropagatesUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("maintenance")) //nolint:errcheck
	}))

	_, err := client.FetchFiltered(context.Background(), FetchParams{})
	require.Error(t, err)

	upstream, ok := err.(*UpstreamError)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
	assert.Equal(t, "maintenance", upstream.Body)
}

func TestFetchDropsPayloadsWithoutID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"subject": "no id"}, {"id": 5, "status": "open"}]}`)) //nolint:errcheck
	}))

	tickets, err := client.FetchFiltered(context.Background(), FetchParams{})
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, int64(5), tickets[0].TicketID)
}
