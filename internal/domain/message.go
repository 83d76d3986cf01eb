package domain

import "time"

const (
	MessageRoleUser   = "user"
	MessageRoleAvatar = "avatar"
)

type Message struct {
	ID        string    `json:"id"`
	MatchID   string    `json:"match_id"`
	SenderID  string    `json:"sender_id"`
	Content   string    `json:"content"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
