package zendesk

import "time"

// Raw wire shapes for upstream JSON. Optional fields are pointer-typed so
// the normalizer can tell "absent" from zero values.

type rawTicket struct {
	ID           *int64           `json:"id"`
	Subject      string           `json:"subject"`
	Description  string           `json:"description"`
	Status       string           `json:"status"`
	Priority     *string          `json:"priority"`
	AssigneeID   *int64           `json:"assignee_id"`
	RequesterID  *int64           `json:"requester_id"`
	GroupID      *int64           `json:"group_id"`
	CreatedAt    *time.Time       `json:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at"`
	Tags         []string         `json:"tags"`
	CustomFields []rawCustomField `json:"custom_fields"`
	MetricSet    *rawMetricSet    `json:"metric_set"`
}

type rawCustomField struct {
	ID    int64 `json:"id"`
	Value any   `json:"value"`
}

type rawMetricSet struct {
	SolvedAt           *time.Time     `json:"solved_at"`
	ReplyTime          *rawMinutePair `json:"reply_time_in_minutes"`
	FullResolutionTime *rawMinutePair `json:"full_resolution_time_in_minutes"`
}

// rawMinutePair mirrors the calendar/business split Zendesk uses for every
// duration metric. Only calendar minutes are consumed downstream.
type rawMinutePair struct {
	Calendar *int64 `json:"calendar"`
	Business *int64 `json:"business"`
}

type rawUser struct {
	ID     *int64 `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

type rawGroup struct {
	ID          *int64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type rawComment struct {
	ID        *int64     `json:"id"`
	AuthorID  int64      `json:"author_id"`
	Body      string     `json:"body"`
	Public    bool       `json:"public"`
	CreatedAt *time.Time `json:"created_at"`
}

type ticketsResponse struct {
	Tickets []rawTicket `json:"tickets"`
}

type searchResponse struct {
	Results []rawTicket `json:"results"`
}

type usersResponse struct {
	Users []rawUser `json:"users"`
}

type groupsResponse struct {
	Groups []rawGroup `json:"groups"`
}

type commentsResponse struct {
	Comments []rawComment `json:"comments"`
}
