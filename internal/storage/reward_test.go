package storage

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peels/internal/models"
)

func TestApplyRewardLevelsUp(t *testing.T) {
	mock := newMock(t)
	s := NewRewardStorage(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"experience", "level", "bananas"}).AddRow(95, 1, 12))
	mock.ExpectExec(`UPDATE users SET experience`).WithArgs(5, 105, 2, 17).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO xp_logs`).WithArgs(5, 10, "entry").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO bananas`).WithArgs(5, 5, "entry").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	res, err := s.ApplyReward(context.Background(), 5, models.Reward{XP: 10, Bananas: 5, Reason: "entry"})
	require.NoError(t, err)
	assert.Equal(t, models.RewardResult{Experience: 105, Level: 2, Bananas: 17, LevelUp: true}, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyRewardSkipsEmptyLedgers(t *testing.T) {
	mock := newMock(t)
	s := NewRewardStorage(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"experience", "level", "bananas"}).AddRow(10, 1, 0))
	mock.ExpectExec(`UPDATE users SET experience`).WithArgs(5, 10, 1, 3).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO bananas`).WithArgs(5, 3, "gift").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	res, err := s.ApplyReward(context.Background(), 5, models.Reward{Bananas: 3, Reason: "gift"})
	require.NoError(t, err)
	assert.False(t, res.LevelUp)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyRewardUnknownUser(t *testing.T) {
	mock := newMock(t)
	s := NewRewardStorage(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(99).WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	_, err := s.ApplyReward(context.Background(), 99, models.Reward{XP: 1, Reason: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyEntryRewardCountsUnderLock(t *testing.T) {
	mock := newMock(t)
	s := NewRewardStorage(mock)

	day := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"experience", "level", "bananas"}).AddRow(20, 1, 10))
	mock.ExpectQuery(`SELECT count\(\*\) FROM xp_logs`).WithArgs(5, "entry", day, day.AddDate(0, 0, 1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectExec(`UPDATE users SET experience`).WithArgs(5, 30, 1, 15).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`INSERT INTO xp_logs`).WithArgs(5, 10, "entry").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec(`INSERT INTO bananas`).WithArgs(5, 5, "entry").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	res, granted, err := s.ApplyEntryReward(context.Background(), 5, day)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.Equal(t, models.RewardResult{Experience: 30, Level: 1, Bananas: 15}, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyEntryRewardStopsAtDailyCap(t *testing.T) {
	mock := newMock(t)
	s := NewRewardStorage(mock)

	day := time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC)
	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WithArgs(5).
		WillReturnRows(pgxmock.NewRows([]string{"experience", "level", "bananas"}).AddRow(30, 1, 15))
	mock.ExpectQuery(`SELECT count\(\*\) FROM xp_logs`).WithArgs(5, "entry", day, day.AddDate(0, 0, 1)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectCommit()

	res, granted, err := s.ApplyEntryReward(context.Background(), 5, day)
	require.NoError(t, err)
	assert.False(t, granted)
	assert.Equal(t, models.RewardResult{Experience: 30, Level: 1, Bananas: 15}, res)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPruneXPLogs(t *testing.T) {
	mock := newMock(t)
	s := NewRewardStorage(mock)

	cutoff := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(`DELETE FROM xp_logs WHERE created_at <`).WithArgs(cutoff).
		WillReturnResult(pgxmock.NewResult("DELETE", 17))

	n, err := s.PruneXPLogs(context.Background(), cutoff)
	require.NoError(t, err)
	assert.EqualValues(t, 17, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
