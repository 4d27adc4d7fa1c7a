package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"peels/internal/models"
	"peels/internal/usecases"
)

// RewardStorage keeps users' experience and bananas in step with the
// xp_logs and bananas ledgers.
type RewardStorage struct {
	db DB
}

func NewRewardStorage(db DB) *RewardStorage {
	return &RewardStorage{db: db}
}

// ApplyReward adds r to the user and appends the matching ledger rows in one
// transaction.
func (s *RewardStorage) ApplyReward(ctx context.Context, userID int, r models.Reward) (models.RewardResult, error) {
	op := "internal/storage/reward.go ApplyReward"

	var res models.RewardResult
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		bal, err := lockBalance(ctx, tx, userID)
		if err != nil {
			return err
		}
		res, err = credit(ctx, tx, userID, bal, r)
		return err
	})
	if err != nil {
		return models.RewardResult{}, mapErr(op, err)
	}
	return res, nil
}

// ApplyEntryReward grants the entry reward unless the user already earned it
// usecases.RewardedPerDay times on the UTC day starting at dayStart. The count
// is taken under the user row lock so concurrent entries see each other.
func (s *RewardStorage) ApplyEntryReward(ctx context.Context, userID int, dayStart time.Time) (models.RewardResult, bool, error) {
	op := "internal/storage/reward.go ApplyEntryReward"

	var (
		res     models.RewardResult
		granted bool
	)
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		bal, err := lockBalance(ctx, tx, userID)
		if err != nil {
			return err
		}

		var rewarded int
		err = tx.QueryRow(ctx, `
		SELECT count(*) FROM xp_logs
		WHERE user_id = $1 AND reason = $2 AND created_at >= $3 AND created_at < $4`,
			userID, usecases.EntryReason, dayStart, dayStart.AddDate(0, 0, 1)).Scan(&rewarded)
		if err != nil {
			return err
		}

		r := usecases.EntryReward(rewarded)
		if r.XP == 0 && r.Bananas == 0 {
			res = models.RewardResult{Experience: bal.xp, Level: bal.level, Bananas: bal.bananas}
			return nil
		}

		res, err = credit(ctx, tx, userID, bal, r)
		granted = err == nil
		return err
	})
	if err != nil {
		return models.RewardResult{}, false, mapErr(op, err)
	}
	return res, granted, nil
}

type balance struct {
	xp, level, bananas int
}

func lockBalance(ctx context.Context, tx pgx.Tx, userID int) (balance, error) {
	var b balance
	err := tx.QueryRow(ctx, `SELECT experience, level, bananas FROM users WHERE id = $1 FOR UPDATE`, userID).
		Scan(&b.xp, &b.level, &b.bananas)
	return b, err
}

func credit(ctx context.Context, tx pgx.Tx, userID int, b balance, r models.Reward) (models.RewardResult, error) {
	var res models.RewardResult
	res.Experience = b.xp + r.XP
	res.Level = usecases.LevelFor(res.Experience)
	res.Bananas = b.bananas + r.Bananas
	res.LevelUp = res.Level > b.level

	_, err := tx.Exec(ctx, `
	UPDATE users SET experience = $2, level = $3, bananas = $4, updated_at = now()
	WHERE id = $1`, userID, res.Experience, res.Level, res.Bananas)
	if err != nil {
		return res, err
	}

	if r.XP != 0 {
		_, err = tx.Exec(ctx, `INSERT INTO xp_logs (user_id, amount, reason) VALUES ($1, $2, $3)`, userID, r.XP, r.Reason)
		if err != nil {
			return res, err
		}
	}
	if r.Bananas != 0 {
		_, err = tx.Exec(ctx, `INSERT INTO bananas (user_id, amount, reason) VALUES ($1, $2, $3)`, userID, r.Bananas, r.Reason)
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

func (s *RewardStorage) ListXPLogs(ctx context.Context, userID, limit, offset int) ([]models.XPLog, error) {
	op := "internal/storage/reward.go ListXPLogs"

	rows, err := s.db.Query(ctx, `
	SELECT id, user_id, amount, reason, created_at FROM xp_logs
	WHERE user_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	logs := []models.XPLog{}
	for rows.Next() {
		var l models.XPLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Amount, &l.Reason, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		logs = append(logs, l)
	}
	return logs, mapErr(op, rows.Err())
}

func (s *RewardStorage) ListBananas(ctx context.Context, userID, limit, offset int) ([]models.Banana, error) {
	op := "internal/storage/reward.go ListBananas"

	rows, err := s.db.Query(ctx, `
	SELECT id, user_id, amount, reason, created_at FROM bananas
	WHERE user_id = $1
	ORDER BY created_at DESC, id DESC
	LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	list := []models.Banana{}
	for rows.Next() {
		var b models.Banana
		if err := rows.Scan(&b.ID, &b.UserID, &b.Amount, &b.Reason, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		list = append(list, b)
	}
	return list, mapErr(op, rows.Err())
}

// PruneXPLogs deletes log rows created before cutoff. Users' experience is
// left untouched.
func (s *RewardStorage) PruneXPLogs(ctx context.Context, cutoff time.Time) (int64, error) {
	op := "internal/storage/reward.go PruneXPLogs"

	tag, err := s.db.Exec(ctx, `DELETE FROM xp_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, mapErr(op, err)
	}
	return tag.RowsAffected(), nil
}
