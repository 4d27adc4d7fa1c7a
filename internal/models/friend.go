package models

import (
	"time"
)

const (
	FriendPending  = "pending"
	FriendAccepted = "accepted"
)

type Friend struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	FriendID  int       `json:"friend_id" db:"friend_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	// Other is the user on the far side of the relation from the caller.
	Other *User `json:"user,omitempty" db:"-"`
}

type FriendRequestInput struct {
	FriendID int `json:"friend_id" validate:"required,gt=0"`
}
