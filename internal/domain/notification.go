package domain

import "time"

const (
	NotificationNewMatch    = "new_match"
	NotificationNewMessage  = "new_message"
	NotificationReportReady = "report_ready"
)

type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Kind      string     `json:"kind"`
	Body      string     `json:"body"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
