package storage

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peels/internal/models"
)

func TestRefreshLeaderboardAllTime(t *testing.T) {
	mock := newMock(t)
	s := NewLeaderboardStorage(mock)

	mock.ExpectQuery(`SELECT id, username, experience FROM users`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "experience"}).
			AddRow(1, "carol", 50).
			AddRow(2, "alice", 90).
			AddRow(3, "bob", 50))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM leaderboards`).WithArgs(models.BoardAllTime).
		WillReturnResult(pgxmock.NewResult("DELETE", 3))
	mock.ExpectExec(`INSERT INTO leaderboards`).
		WithArgs(models.BoardAllTime, []int{2, 3, 1}, []int{90, 50, 50}, []int{1, 2, 2}).
		WillReturnResult(pgxmock.NewResult("INSERT", 3))
	mock.ExpectCommit()

	n, err := s.RefreshLeaderboard(context.Background(), models.BoardAllTime, created)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
