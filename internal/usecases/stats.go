package usecases

import (
	"sort"
	"time"

	"peels/internal/models"
)

// ComputeStats aggregates a user's entries. today is used for the current
// streak and the twelve month histogram.
func ComputeStats(days []models.EntryDay, today time.Time) models.Stats {
	st := models.Stats{
		TotalEntries:     len(days),
		MoodDistribution: map[string]int{},
	}

	months := lastMonths(today, 12)
	monthIdx := make(map[string]int, len(months))
	st.EntriesByMonth = make([]models.MonthCount, len(months))
	for i, m := range months {
		st.EntriesByMonth[i] = models.MonthCount{Month: m}
		monthIdx[m] = i
	}

	seen := map[time.Time]bool{}
	for _, d := range days {
		st.TotalWords += d.WordCount
		if d.Mood != "" {
			st.MoodDistribution[d.Mood]++
		}

		day := StartOfDay(d.Date)
		seen[day] = true
		st.EntriesByWeekday[(int(day.Weekday())+6)%7]++
		if i, ok := monthIdx[day.Format("2006-01")]; ok {
			st.EntriesByMonth[i].Count++
		}
	}

	st.CurrentStreak, st.LongestStreak = streaks(seen, StartOfDay(today))
	return st
}

// streaks counts consecutive days with at least one entry. The current
// streak may end today or yesterday.
func streaks(seen map[time.Time]bool, today time.Time) (current, longest int) {
	unique := make([]time.Time, 0, len(seen))
	for d := range seen {
		unique = append(unique, d)
	}
	sort.Slice(unique, func(i, j int) bool { return unique[i].Before(unique[j]) })

	run := 0
	for i, d := range unique {
		if i > 0 && unique[i-1].AddDate(0, 0, 1).Equal(d) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	cursor := today
	if !seen[cursor] {
		cursor = cursor.AddDate(0, 0, -1)
	}
	for seen[cursor] {
		current++
		cursor = cursor.AddDate(0, 0, -1)
	}

	return current, longest
}

func lastMonths(today time.Time, n int) []string {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = first.AddDate(0, -i, 0).Format("2006-01")
	}
	return out
}
