package zendesk

import (
	"context"
	"net/url"

	"github.com/isaktapper/klaralyze/internal/domain"
)

// FetchAgents returns the support-agent roster, a single unpaginated call
// filtered upstream to role=agent.
func (c *Client) FetchAgents(ctx context.Context) ([]domain.Agent, error) {
	query := url.Values{}
	query.Set("role", "agent")

	var payload usersResponse
	if err := c.get(ctx, "/api/v2/users.json", query, &payload); err != nil {
		return nil, err
	}

	agents := make([]domain.Agent, 0, len(payload.Users))
	for _, raw := range payload.Users {
		if raw.ID == nil {
			continue
		}
		agents = append(agents, domain.Agent{
			AgentID: *raw.ID,
			Name:    raw.Name,
			Email:   raw.Email,
			Role:    raw.Role,
			Active:  raw.Active,
		})
	}
	return agents, nil
}

// FetchGroups returns all group definitions, used as filter keys.
func (c *Client) FetchGroups(ctx context.Context) ([]domain.Group, error) {
	var payload groupsResponse
	if err := c.get(ctx, "/api/v2/groups.json", nil, &payload); err != nil {
		return nil, err
	}

	groups := make([]domain.Group, 0, len(payload.Groups))
	for _, raw := range payload.Groups {
		if raw.ID == nil {
			continue
		}
		groups = append(groups, domain.Group{
			ID:          *raw.ID,
			Name:        raw.Name,
			Description: raw.Description,
		})
	}
	return groups, nil
}
