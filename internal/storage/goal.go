package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"peels/internal/models"
)

const goalColumns = `id, user_id, title, description, period, target, completed, reward_xp, reward_bananas,
	created_at, completed_at`

type GoalStorage struct {
	db DB
}

func NewGoalStorage(db DB) *GoalStorage {
	return &GoalStorage{db: db}
}

func scanGoal(row pgx.Row, g *models.Goal) error {
	return row.Scan(
		&g.ID,
		&g.UserID,
		&g.Title,
		&g.Description,
		&g.Period,
		&g.Target,
		&g.Completed,
		&g.RewardXP,
		&g.RewardBananas,
		&g.CreatedAt,
		&g.CompletedAt,
	)
}

func (s *GoalStorage) CreateGoal(ctx context.Context, g *models.Goal) error {
	op := "internal/storage/goal.go CreateGoal"

	query := `
	INSERT INTO goals (user_id, title, description, period, target, reward_xp, reward_bananas)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + goalColumns

	err := scanGoal(s.db.QueryRow(ctx, query,
		g.UserID, g.Title, g.Description, g.Period, g.Target, g.RewardXP, g.RewardBananas,
	), g)
	if err != nil {
		return mapErr(op, err)
	}
	return nil
}

func (s *GoalStorage) GetGoal(ctx context.Context, id int) (models.Goal, error) {
	op := "internal/storage/goal.go GetGoal"

	var g models.Goal
	if err := scanGoal(s.db.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = $1`, id), &g); err != nil {
		return models.Goal{}, mapErr(op, err)
	}
	return g, nil
}

// ListGoals returns the user's goals. With openOnly, completed goals are skipped.
func (s *GoalStorage) ListGoals(ctx context.Context, userID int, openOnly bool) ([]models.Goal, error) {
	op := "internal/storage/goal.go ListGoals"

	rows, err := s.db.Query(ctx, `
	SELECT `+goalColumns+` FROM goals
	WHERE user_id = $1 AND (NOT $2 OR NOT completed)
	ORDER BY completed, created_at DESC`, userID, openOnly)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		var g models.Goal
		if err := scanGoal(rows, &g); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		goals = append(goals, g)
	}
	return goals, mapErr(op, rows.Err())
}

func (s *GoalStorage) UpdateGoal(ctx context.Context, g *models.Goal) error {
	op := "internal/storage/goal.go UpdateGoal"

	query := `
	UPDATE goals SET title = $2, description = $3, period = $4, target = $5,
	reward_xp = $6, reward_bananas = $7
	WHERE id = $1
	RETURNING ` + goalColumns

	err := scanGoal(s.db.QueryRow(ctx, query,
		g.ID, g.Title, g.Description, g.Period, g.Target, g.RewardXP, g.RewardBananas,
	), g)
	if err != nil {
		return mapErr(op, err)
	}
	return nil
}

func (s *GoalStorage) DeleteGoal(ctx context.Context, id int) error {
	op := "internal/storage/goal.go DeleteGoal"

	tag, err := s.db.Exec(ctx, `DELETE FROM goals WHERE id = $1`, id)
	return expectOne(op, tag, err)
}

// CompleteGoal marks the goal completed and returns when. It reports false
// when the goal was already completed, so rewards are granted once.
func (s *GoalStorage) CompleteGoal(ctx context.Context, id int) (time.Time, bool, error) {
	op := "internal/storage/goal.go CompleteGoal"

	var at time.Time
	err := s.db.QueryRow(ctx, `
	UPDATE goals SET completed = TRUE, completed_at = now()
	WHERE id = $1 AND NOT completed
	RETURNING completed_at`, id).Scan(&at)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, mapErr(op, err)
	}
	return at, true, nil
}
