package models

import (
	"encoding/json"
	"time"
)

type Template struct {
	ID        int             `json:"id" db:"id"`
	UserID    int             `json:"user_id" db:"user_id"`
	Name      string          `json:"name" db:"name"`
	Content   json.RawMessage `json:"content" db:"content"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

type TemplateInput struct {
	Name    string          `json:"name" validate:"required,min=1,max=100"`
	Content json.RawMessage `json:"content" validate:"required"`
}
