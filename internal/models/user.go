package models

import (
	"time"
)

type User struct {
	ID                int       `json:"id" db:"id"`
	Username          string    `json:"username" db:"username"`
	Email             string    `json:"email,omitempty" db:"email"`
	PasswordHash      string    `json:"-" db:"password_hash"`
	Bio               string    `json:"bio" db:"bio"`
	AvatarURL         string    `json:"avatar_url" db:"avatar_url"`
	Bananas           int       `json:"bananas" db:"bananas"`
	Experience        int       `json:"experience" db:"experience"`
	Level             int       `json:"level" db:"level"`
	ActiveCharacterID *int      `json:"active_character_id,omitempty" db:"active_character_id"`
	ActiveStyleID     *int      `json:"active_style_id,omitempty" db:"active_style_id"`
	ActiveBadgeID     *int      `json:"active_badge_id,omitempty" db:"active_badge_id"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// Public strips the fields other users must not see.
func (u User) Public() User {
	u.Email = ""
	u.PasswordHash = ""
	return u
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type LoginInput struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ProfileInput struct {
	Bio       string `json:"bio" validate:"max=500"`
	AvatarURL string `json:"avatar_url" validate:"omitempty,url,max=500"`
}

type EquipInput struct {
	ItemID int `json:"item_id" validate:"required,gt=0"`
}
