package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"peels/internal/models"
	"peels/internal/usecases"
)

type LeaderboardStorage struct {
	db DB
}

func NewLeaderboardStorage(db DB) *LeaderboardStorage {
	return &LeaderboardStorage{db: db}
}

// RefreshLeaderboard recomputes the snapshot for period. all_time scores are
// total experience, other periods sum the XP logged since since.
func (s *LeaderboardStorage) RefreshLeaderboard(ctx context.Context, period string, since time.Time) (int, error) {
	op := "internal/storage/leaderboard.go RefreshLeaderboard"

	var (
		rows pgx.Rows
		err  error
	)
	if period == models.BoardAllTime {
		rows, err = s.db.Query(ctx, `SELECT id, username, experience FROM users`)
	} else {
		rows, err = s.db.Query(ctx, `
		SELECT u.id, u.username, COALESCE(SUM(x.amount), 0)::int
		FROM users u
		LEFT JOIN xp_logs x ON x.user_id = u.id AND x.created_at >= $1
		GROUP BY u.id, u.username`, since)
	}
	if err != nil {
		return 0, mapErr(op, err)
	}

	board := []models.Leaderboard{}
	for rows.Next() {
		l := models.Leaderboard{Period: period}
		if err := rows.Scan(&l.UserID, &l.Username, &l.Score); err != nil {
			rows.Close()
			return 0, fmt.Errorf("%s: scan: %w", op, err)
		}
		board = append(board, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, mapErr(op, err)
	}

	board = usecases.RankBoard(board)
	userIDs := make([]int, len(board))
	scores := make([]int, len(board))
	ranks := make([]int, len(board))
	for i, l := range board {
		userIDs[i], scores[i], ranks[i] = l.UserID, l.Score, l.Rank
	}

	err = inTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM leaderboards WHERE period = $1`, period); err != nil {
			return err
		}
		_, err := tx.Exec(ctx, `
		INSERT INTO leaderboards (user_id, period, score, rank)
		SELECT u, $1, s, r FROM unnest($2::int[], $3::int[], $4::int[]) AS t(u, s, r)`,
			period, userIDs, scores, ranks)
		return err
	})
	if err != nil {
		return 0, mapErr(op, err)
	}
	return len(board), nil
}

// TopLeaderboard returns the best rows of a period. A non-nil only restricts
// the board to those users.
func (s *LeaderboardStorage) TopLeaderboard(ctx context.Context, period string, limit int, only []int) ([]models.Leaderboard, error) {
	op := "internal/storage/leaderboard.go TopLeaderboard"

	rows, err := s.db.Query(ctx, `
	SELECT l.id, l.user_id, u.username, l.period, l.score, l.rank, l.updated_at
	FROM leaderboards l
	JOIN users u ON u.id = l.user_id
	WHERE l.period = $1 AND ($3::int[] IS NULL OR l.user_id = ANY($3))
	ORDER BY l.rank, u.username
	LIMIT $2`, period, limit, only)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	board := []models.Leaderboard{}
	for rows.Next() {
		var l models.Leaderboard
		if err := rows.Scan(&l.ID, &l.UserID, &l.Username, &l.Period, &l.Score, &l.Rank, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		board = append(board, l)
	}
	return board, mapErr(op, rows.Err())
}

func (s *LeaderboardStorage) UserLeaderboard(ctx context.Context, period string, userID int) (models.Leaderboard, error) {
	op := "internal/storage/leaderboard.go UserLeaderboard"

	var l models.Leaderboard
	err := s.db.QueryRow(ctx, `
	SELECT l.id, l.user_id, u.username, l.period, l.score, l.rank, l.updated_at
	FROM leaderboards l
	JOIN users u ON u.id = l.user_id
	WHERE l.period = $1 AND l.user_id = $2`, period, userID).
		Scan(&l.ID, &l.UserID, &l.Username, &l.Period, &l.Score, &l.Rank, &l.UpdatedAt)
	if err != nil {
		return models.Leaderboard{}, mapErr(op, err)
	}
	return l, nil
}
