package models

import (
	"time"
)

const (
	BoardWeekly  = "weekly"
	BoardMonthly = "monthly"
	BoardAllTime = "all_time"
)

type Leaderboard struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Username  string    `json:"username" db:"-"`
	Period    string    `json:"period" db:"period"`
	Score     int       `json:"score" db:"score"`
	Rank      int       `json:"rank" db:"rank"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
