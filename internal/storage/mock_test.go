package storage

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

var (
	created = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	noID    = (*int)(nil)
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

var userCols = []string{
	"id", "username", "email", "password_hash", "bio", "avatar_url", "bananas", "experience", "level",
	"active_character_id", "active_style_id", "active_badge_id", "created_at", "updated_at",
}

func userRow(id int, name string) *pgxmock.Rows {
	return pgxmock.NewRows(userCols).AddRow(
		id, name, name+"@peels.app", "hash", "", "", 0, 0, 1, noID, noID, noID, created, created,
	)
}
