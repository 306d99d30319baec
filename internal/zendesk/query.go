package zendesk

import (
	"strconv"
	"strings"
	"time"

	"github.com/isaktapper/klaralyze/internal/domain"
)

// SearchQuery models the upstream search clause language: space-separated
// clauses ANDed by juxtaposition, with group alternatives expressed as a
// parenthesized OR. Serialization happens in exactly one place so call
// sites never concatenate query fragments by hand.
type SearchQuery struct {
	Statuses     []domain.TicketStatus
	CreatedAfter *time.Time
	// GroupIDs narrows results to the given groups. An empty or nil slice
	// means no group clause at all, never "match zero groups".
	GroupIDs []int64
}

// String serializes the query into Zendesk search syntax, e.g.
// "type:ticket status:open created>2024-01-01T00:00:00Z (group_id:7 OR group_id:9)".
func (q SearchQuery) String() string {
	clauses := []string{"type:ticket"}
	for _, status := range q.Statuses {
		clauses = append(clauses, "status:"+string(status))
	}
	if q.CreatedAfter != nil {
		clauses = append(clauses, "created>"+q.CreatedAfter.UTC().Format("2006-01-02T15:04:05Z"))
	}
	if len(q.GroupIDs) > 0 {
		alts := make([]string, 0, len(q.GroupIDs))
		for _, id := range q.GroupIDs {
			alts = append(alts, "group_id:"+strconv.FormatInt(id, 10))
		}
		clauses = append(clauses, "("+strings.Join(alts, " OR ")+")")
	}
	return strings.Join(clauses, " ")
}
