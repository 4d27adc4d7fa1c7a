package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"peels/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestComputeStats(t *testing.T) {
	today := day(2024, 5, 10) // Friday
	days := []models.EntryDay{
		{Date: day(2024, 5, 10), Mood: "😀", WordCount: 10},
		{Date: day(2024, 5, 9), Mood: "😀", WordCount: 5},
		{Date: day(2024, 5, 9), Mood: "😢", WordCount: 5},
		{Date: day(2024, 5, 8), WordCount: 1},
		{Date: day(2024, 4, 1), Mood: "😴", WordCount: 2},
		{Date: day(2024, 4, 2), WordCount: 2},
		{Date: day(2024, 4, 3), WordCount: 2},
		{Date: day(2024, 4, 4), WordCount: 2},
		{Date: day(2022, 1, 1), WordCount: 1},
	}

	st := ComputeStats(days, today)

	assert.Equal(t, 9, st.TotalEntries)
	assert.Equal(t, 30, st.TotalWords)
	assert.Equal(t, 3, st.CurrentStreak)
	assert.Equal(t, 4, st.LongestStreak)
	assert.Equal(t, map[string]int{"😀": 2, "😢": 1, "😴": 1}, st.MoodDistribution)
	assert.Equal(t, 1, st.EntriesByWeekday[4], "fridays")
	assert.Equal(t, 3, st.EntriesByWeekday[3], "thursdays")

	assert.Len(t, st.EntriesByMonth, 12)
	assert.Equal(t, "2023-06", st.EntriesByMonth[0].Month)
	assert.Equal(t, models.MonthCount{Month: "2024-05", Count: 4}, st.EntriesByMonth[11])
	assert.Equal(t, models.MonthCount{Month: "2024-04", Count: 4}, st.EntriesByMonth[10])
}

func TestCurrentStreakMayEndYesterday(t *testing.T) {
	today := day(2024, 5, 10)
	days := []models.EntryDay{
		{Date: day(2024, 5, 9)},
		{Date: day(2024, 5, 8)},
	}
	st := ComputeStats(days, today)
	assert.Equal(t, 2, st.CurrentStreak)

	st = ComputeStats(days, day(2024, 5, 11))
	assert.Equal(t, 0, st.CurrentStreak)
	assert.Equal(t, 2, st.LongestStreak)
}

func TestComputeStatsEmpty(t *testing.T) {
	st := ComputeStats(nil, day(2024, 1, 1))
	assert.Zero(t, st.TotalEntries)
	assert.Zero(t, st.CurrentStreak)
	assert.NotNil(t, st.MoodDistribution)
}
