package zendesk

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchAgents(t *testing.T) {
	var gotPath, gotRole string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRole = r.URL.Query().Get("role")
		w.Write([]byte(`{"users": [
			{"id": 1, "name": "Alice", "email": "alice@acme.test", "role": "agent", "active": true},
			{"name": "ghost"},
			{"id": 2, "name": "Bob", "email": "bob@acme.test", "role": "agent", "active": false}
		]}`)) //nolint:errcheck
	}))

	agents, err := client.FetchAgents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/users.json", gotPath)
	assert.Equal(t, "agent", gotRole)
	require.Len(t, agents, 2)
	assert.Equal(t, int64(1), agents[0].AgentID)
	assert.Equal(t, "Alice", agents[0].Name)
	assert.True(t, agents[0].Active)
	assert.False(t, agents[1].Active)
}

func TestFetchGroups(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/groups.json", r.URL.Path)
		w.Write([]byte(`{"groups": [
			{"id": 7, "name": "Tier 1", "description": "frontline"},
			{"id": 9, "name": "Tier 2"}
		]}`)) //nolint:errcheck
	}))

	groups, err := client.FetchGroups(context.Background())
	require.NoError(t, err)

	require.Len(t, groups, 2)
	assert.Equal(t, int64(7), groups[0].ID)
	require.NotNil(t, groups[0].Description)
	assert.Equal(t, "frontline", *groups[0].Description)
	assert.Nil(t, groups[1].Description)
}
