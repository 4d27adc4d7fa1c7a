package models

import (
	"time"
)

const (
	ItemCharacter = "character"
	ItemStyle     = "style"
	ItemBadge     = "badge"
)

type MarketplaceItem struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Type        string    `json:"type" db:"type"`
	Price       int       `json:"price" db:"price"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

type UserItem struct {
	UserID      int             `json:"user_id" db:"user_id"`
	ItemID      int             `json:"item_id" db:"item_id"`
	PurchasedAt time.Time       `json:"purchased_at" db:"purchased_at"`
	Item        MarketplaceItem `json:"item" db:"-"`
}

type Purchase struct {
	Item      MarketplaceItem `json:"item"`
	Character *Character      `json:"character,omitempty"`
	Balance   int             `json:"balance"`
}
