package models

import (
	"encoding/json"
	"time"
)

// Moods lists the emoji an entry may carry. An empty mood is allowed.
var Moods = []string{"😀", "😊", "😐", "😔", "😢", "😡", "😴", "🤩"}

type Entry struct {
	ID        int             `json:"id" db:"id"`
	JournalID int             `json:"journal_id" db:"journal_id"`
	UserID    int             `json:"user_id" db:"user_id"`
	Title     string          `json:"title" db:"title"`
	Content   json.RawMessage `json:"content" db:"content"`
	PlainText string          `json:"plain_text" db:"plain_text"`
	WordCount int             `json:"word_count" db:"word_count"`
	Mood      string          `json:"mood" db:"mood"`
	ImageURL  string          `json:"image_url" db:"image_url"`
	EntryDate time.Time       `json:"entry_date" db:"entry_date"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" db:"updated_at"`
}

type EntryInput struct {
	Title      string          `json:"title" validate:"required,min=1,max=200"`
	Content    json.RawMessage `json:"content"`
	Mood       string          `json:"mood" validate:"omitempty,mood"`
	ImageURL   string          `json:"image_url" validate:"omitempty,url,max=500"`
	EntryDate  string          `json:"entry_date" validate:"omitempty,datetime=2006-01-02"`
	TemplateID *int            `json:"template_id" validate:"omitempty,gt=0"`
}

type EntryFilter struct {
	Mood   string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}
