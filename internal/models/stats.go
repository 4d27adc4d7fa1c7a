package models

import (
	"time"
)

type Stats struct {
	TotalEntries     int            `json:"total_entries"`
	TotalWords       int            `json:"total_words"`
	Journals         int            `json:"journals"`
	CurrentStreak    int            `json:"current_streak"`
	LongestStreak    int            `json:"longest_streak"`
	MoodDistribution map[string]int `json:"mood_distribution"`
	EntriesByWeekday [7]int         `json:"entries_by_weekday"`
	EntriesByMonth   []MonthCount   `json:"entries_by_month"`
	Experience       int            `json:"experience"`
	Level            int            `json:"level"`
	XPToNextLevel    int            `json:"xp_to_next_level"`
	Bananas          int            `json:"bananas"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// EntryDay is the minimal per-entry row statistics are computed from.
type EntryDay struct {
	Date      time.Time
	Mood      string
	WordCount int
}
