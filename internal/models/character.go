package models

import (
	"time"
)

type Character struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	ItemID    int       `json:"item_id" db:"item_id"`
	Nickname  string    `json:"nickname" db:"nickname"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CharacterInput struct {
	Nickname string `json:"nickname" validate:"required,min=1,max=50"`
}
