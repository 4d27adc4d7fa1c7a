package models

import (
	"time"
)

type Bookmark struct {
	ID         int       `json:"id" db:"id"`
	UserID     int       `json:"user_id" db:"user_id"`
	EntryID    int       `json:"entry_id" db:"entry_id"`
	EntryTitle string    `json:"entry_title" db:"-"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type BookmarkInput struct {
	EntryID int `json:"entry_id" validate:"required,gt=0"`
}
