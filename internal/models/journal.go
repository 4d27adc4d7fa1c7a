package models

import (
	"time"
)

type Journal struct {
	ID              int       `json:"id" db:"id"`
	UserID          int       `json:"user_id" db:"user_id"`
	Title           string    `json:"title" db:"title"`
	Description     string    `json:"description" db:"description"`
	Theme           string    `json:"theme" db:"theme"`
	IsPrivate       bool      `json:"is_private" db:"is_private"`
	ReminderEnabled bool      `json:"reminder_enabled" db:"reminder_enabled"`
	ReminderTime    string    `json:"reminder_time" db:"reminder_time"`
	EntryCount      int       `json:"entry_count" db:"-"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

type JournalInput struct {
	Title           string `json:"title" validate:"required,min=1,max=100"`
	Description     string `json:"description" validate:"max=1000"`
	Theme           string `json:"theme" validate:"omitempty,max=50"`
	IsPrivate       *bool  `json:"is_private"`
	ReminderEnabled bool   `json:"reminder_enabled"`
	ReminderTime    string `json:"reminder_time" validate:"required_if=ReminderEnabled true,omitempty,hhmm"`
}

// Apply copies the input onto j, filling defaults for a new journal.
func (in JournalInput) Apply(j *Journal) {
	j.Title = in.Title
	j.Description = in.Description
	j.Theme = in.Theme
	if j.Theme == "" {
		j.Theme = "default"
	}
	if in.IsPrivate != nil {
		j.IsPrivate = *in.IsPrivate
	} else if j.ID == 0 {
		j.IsPrivate = true
	}
	j.ReminderEnabled = in.ReminderEnabled
	j.ReminderTime = in.ReminderTime
}
