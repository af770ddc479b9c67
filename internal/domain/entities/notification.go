package entities

import "time"

type NotificationType string

const (
	NotificationQuoteRequested NotificationType = "quote_requested"
	NotificationQuoteResponded NotificationType = "quote_responded"
	NotificationQuoteAccepted  NotificationType = "quote_accepted"
	NotificationQuoteRejected  NotificationType = "quote_rejected"
)

// Notification is a durable in-app notification row addressed to one account.
//
// Storage model (Postgres):
//   - table notifications, PK id
//   - data is jsonb
type Notification struct {
	ID        string           `json:"id"`
	AccountID string           `json:"account_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Data      map[string]any   `json:"data,omitempty"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
