package zendesk

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaktapper/klaralyze/internal/domain"
)

const fullRawTicket = `{
	"id": 42,
	"subject": "Printer on fire",
	"description": "It is very much on fire.",
	"status": "Solved",
	"priority": "High",
	"assignee_id": 100,
	"requester_id": 200,
	"group_id": 7,
	"created_at": "2024-03-01T08:00:00Z",
	"updated_at": "2024-03-02T08:00:00Z",
	"tags": ["hardware", "urgent-queue"],
	"custom_fields": [{"id": 9001, "value": "warranty"}],
	"metric_set": {
		"solved_at": "2024-03-02T08:00:00Z",
		"reply_time_in_minutes": {"calendar": 15, "business": 10},
		"full_resolution_time_in_minutes": {"calendar": 120, "business": 90}
	}
}`

func decodeRaw(t *testing.T, payload string) rawTicket {
	t.Helper()
	var raw rawTicket
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestNormalizeTicketFullPayload(t *testing.T) {
	ticket, err := normalizeTicket(decodeRaw(t, fullRawTicket))
	require.NoError(t, err)

	assert.Equal(t, int64(42), ticket.TicketID)
	assert.Equal(t, "Printer on fire", ticket.Subject)
	assert.Equal(t, domain.TicketStatusSolved, ticket.Status)
	require.NotNil(t, ticket.Priority)
	assert.Equal(t, domain.TicketPriorityHigh, *ticket.Priority)
	require.NotNil(t, ticket.AssigneeID)
	assert.Equal(t, int64(100), *ticket.AssigneeID)
	require.NotNil(t, ticket.GroupID)
	assert.Equal(t, int64(7), *ticket.GroupID)
	assert.Equal(t, []string{"hardware", "urgent-queue"}, ticket.Tags)
	assert.Equal(t, "warranty", ticket.CustomFields[9001])

	require.NotNil(t, ticket.SolvedDate)
	assert.Equal(t, time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC), *ticket.SolvedDate)
	require.NotNil(t, ticket.FirstResponseTimeMinutes)
	assert.Equal(t, int64(15), *ticket.FirstResponseTimeMinutes)
	require.NotNil(t, ticket.FullResolutionTimeMinutes)
	assert.Equal(t, int64(120), *ticket.FullResolutionTimeMinutes)

	// normalization never populates comments
	assert.Nil(t, ticket.Comments)
}

func TestNormalizeTicketIsIdempotent(t *testing.T) {
	raw := decodeRaw(t, fullRawTicket)

	first, err := normalizeTicket(raw)
	require.NoError(t, err)
	second, err := normalizeTicket(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestNormalizeTicketMissingOptionalFields(t *testing.T) {
	ticket, err := normalizeTicket(decodeRaw(t, `{"id": 1, "status": "open"}`))
	require.NoError(t, err)

	assert.Nil(t, ticket.Priority)
	assert.Nil(t, ticket.AssigneeID)
	assert.Nil(t, ticket.RequesterID)
	assert.Nil(t, ticket.GroupID)
	assert.Nil(t, ticket.SolvedDate)
	assert.NotNil(t, ticket.Tags)
	assert.Empty(t, ticket.Tags)
	assert.NotNil(t, ticket.CustomFields)
	assert.Empty(t, ticket.CustomFields)

	// absent metrics map to nil, never zero
	assert.Nil(t, ticket.FirstResponseTimeMinutes)
	assert.Nil(t, ticket.FullResolutionTimeMinutes)
}

func TestNormalizeTicketPartialMetricSet(t *testing.T) {
	payload := `{"id": 2, "status": "open", "metric_set": {"reply_time_in_minutes": {"calendar": 5}}}`
	ticket, err := normalizeTicket(decodeRaw(t, payload))
	require.NoError(t, err)

	require.NotNil(t, ticket.FirstResponseTimeMinutes)
	assert.Equal(t, int64(5), *ticket.FirstResponseTimeMinutes)
	assert.Nil(t, ticket.FullResolutionTimeMinutes)
	assert.Nil(t, ticket.SolvedDate)
}

func TestNormalizeTicketRejectsMissingID(t *testing.T) {
	_, err := normalizeTicket(decodeRaw(t, `{"subject": "orphan"}`))
	require.Error(t, err)
}

func TestNormalizeTicketsDropsInvalid(t *testing.T) {
	raws := []rawTicket{
		decodeRaw(t, `{"id": 1, "status": "open"}`),
		decodeRaw(t, `{"subject": "orphan"}`),
		decodeRaw(t, `{"id": 2, "status": "solved"}`),
	}
	tickets, dropped := normalizeTickets(raws)
	assert.Equal(t, 1, dropped)
	require.Len(t, tickets, 2)
	assert.Equal(t, int64(1), tickets[0].TicketID)
	assert.Equal(t, int64(2), tickets[1].TicketID)
}

func TestNormalizeTicketLowercasesStatusAndPriority(t *testing.T) {
	ticket, err := normalizeTicket(decodeRaw(t, `{"id": 3, "status": "OPEN", "priority": "Urgent"}`))
	require.NoError(t, err)

	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	require.NotNil(t, ticket.Priority)
	assert.Equal(t, domain.TicketPriorityUrgent, *ticket.Priority)
}
