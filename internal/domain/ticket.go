package domain

import "time"

// TicketStatus enumerates upstream lifecycle states. Values are passed
// through from Zendesk uninterpreted, always lowercase.
type TicketStatus string

const (
	TicketStatusNew     TicketStatus = "new"
	TicketStatusOpen    TicketStatus = "open"
	TicketStatusPending TicketStatus = "pending"
	TicketStatusHold    TicketStatus = "hold"
	TicketStatusSolved  TicketStatus = "solved"
	TicketStatusClosed  TicketStatus = "closed"
)

// TicketPriority enumerates upstream urgency levels.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityNormal TicketPriority = "normal"
	TicketPriorityHigh   TicketPriority = "high"
	TicketPriorityUrgent TicketPriority = "urgent"
)

// Ticket is the normalized internal ticket shape. Every optional upstream
// field is pointer-typed so "absent" stays distinguishable from a zero value.
type Ticket struct {
	TicketID                  int64           `json:"ticket_id"`
	Subject                   string          `json:"subject"`
	Description               string          `json:"description"`
	Status                    TicketStatus    `json:"status"`
	Priority                  *TicketPriority `json:"priority"`
	AssigneeID                *int64          `json:"assignee_id"`
	RequesterID               *int64          `json:"requester_id"`
	GroupID                   *int64          `json:"group_id"`
	CreatedDate               time.Time       `json:"created_date"`
	UpdatedDate               time.Time       `json:"updated_date"`
	SolvedDate                *time.Time      `json:"solved_date"`
	Tags                      []string        `json:"tags"`
	CustomFields              map[int64]any   `json:"custom_fields"`
	FirstResponseTimeMinutes  *int64          `json:"first_response_time_minutes"`
	FullResolutionTimeMinutes *int64          `json:"full_resolution_time_minutes"`

	// Comments is populated only by enrichment. A nil slice (JSON null)
	// means the ticket was never enriched; a non-nil empty slice (JSON [])
	// means the thread was fetched, or its fetch failed, and holds no
	// messages. The distinction must survive serialization.
	Comments []Comment `json:"comments"`
}

// Comment is a single message in a ticket conversation thread.
type Comment struct {
	CommentID int64     `json:"comment_id"`
	AuthorID  int64     `json:"author_id"`
	Body      string    `json:"body"`
	Public    bool      `json:"public"`
	CreatedAt time.Time `json:"created_at"`
}
