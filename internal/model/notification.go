package model

import "time"

// Notification is an in-app message addressed to one user.
type Notification struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
	IsRead     bool      `json:"isRead"`
	ActionLink string    `json:"actionLink"`
}
