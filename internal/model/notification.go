package model

import "time"

const (
	NotificationPriorityCritical = "critical"
	NotificationPriorityNormal   = "normal"
	NotificationPriorityLow      = "low"
)

// Notification is one row of the activity log, both as served by the
// list endpoints and as pushed over the websocket.
type Notification struct {
	ID         int       `json:"id"`
	Type       string    `json:"type"`
	Action     string    `json:"action"`
	EntityID   int       `json:"entity_id"`
	EntityName string    `json:"entity_name"`
	Message    string    `json:"message"`
	UserID     string    `json:"user_id"`
	Priority   string    `json:"priority"`
	CreatedAt  time.Time `json:"created_at"`
}
