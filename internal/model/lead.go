package model

import "time"

// Lead statuses counted as active on the dashboard.
const (
	LeadStatusNew       = "New"
	LeadStatusContacted = "Contacted"
	LeadStatusQualified = "Qualified"
)

// Lead is a prospective client owned by one agent.
type Lead struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"ownerId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}
