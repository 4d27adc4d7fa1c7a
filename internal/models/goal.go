package models

import (
	"time"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
)

type Goal struct {
	ID            int        `json:"id" db:"id"`
	UserID        int        `json:"user_id" db:"user_id"`
	Title         string     `json:"title" db:"title"`
	Description   string     `json:"description" db:"description"`
	Period        string     `json:"period" db:"period"`
	Target        int        `json:"target" db:"target"`
	Progress      int        `json:"progress" db:"progress"`
	Completed     bool       `json:"completed" db:"completed"`
	RewardXP      int        `json:"reward_xp" db:"reward_xp"`
	RewardBananas int        `json:"reward_bananas" db:"reward_bananas"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty" db:"completed_at"`
}

type GoalInput struct {
	Title       string `json:"title" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Period      string `json:"period" validate:"required,oneof=daily weekly monthly"`
	Target      int    `json:"target" validate:"required,gt=0,lte=1000"`
}
