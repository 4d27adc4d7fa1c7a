package usecases

import (
	"sort"

	"peels/internal/models"
)

// RankBoard sorts rows by score descending, ties by username, and assigns
// dense ranks.
func RankBoard(rows []models.Leaderboard) []models.Leaderboard {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].Username < rows[j].Username
	})

	rank := 0
	for i := range rows {
		if i == 0 || rows[i].Score != rows[i-1].Score {
			rank++
		}
		rows[i].Rank = rank
	}
	return rows
}

func ValidBoardPeriod(period string) bool {
	switch period {
	case models.BoardWeekly, models.BoardMonthly, models.BoardAllTime:
		return true
	}
	return false
}
