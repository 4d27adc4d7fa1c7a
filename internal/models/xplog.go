package models

import (
	"time"
)

type XPLog struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Amount    int       `json:"amount" db:"amount"`
	Reason    string    `json:"reason" db:"reason"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Reward is what a single action grants. Either part may be zero.
type Reward struct {
	XP      int
	Bananas int
	Reason  string
}

// RewardResult reports the user's state after a reward was applied.
type RewardResult struct {
	Experience int  `json:"experience"`
	Level      int  `json:"level"`
	Bananas    int  `json:"bananas"`
	LevelUp    bool `json:"level_up"`
}
