package models

import (
	"time"
)

const (
	NotifyFriendRequest = "friend_request"
	NotifyFriendAccept  = "friend_accept"
	NotifyGoalComplete  = "goal_complete"
	NotifyLevelUp       = "level_up"
	NotifyReminder      = "reminder"
	NotifyPurchase      = "purchase"
)

type Notification struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	TimeAgo   string    `json:"time_ago,omitempty" db:"-"`
}
