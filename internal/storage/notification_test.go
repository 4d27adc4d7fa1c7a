package storage

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peels/internal/models"
)

func TestCreateNotification(t *testing.T) {
	mock := newMock(t)
	s := NewNotificationStorage(mock)

	mock.ExpectQuery(`INSERT INTO notifications`).WithArgs(4, models.NotifyReminder, "write today").
		WillReturnRows(pgxmock.NewRows([]string{"id", "is_read", "created_at"}).AddRow(11, false, created))

	n := models.Notification{UserID: 4, Type: models.NotifyReminder, Message: "write today"}
	require.NoError(t, s.CreateNotification(context.Background(), &n))
	assert.Equal(t, 11, n.ID)
	assert.Equal(t, created, n.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadScopedToOwner(t *testing.T) {
	mock := newMock(t)
	s := NewNotificationStorage(mock)

	mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE id = \$1 AND user_id = \$2`).WithArgs(11, 5).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err := s.MarkRead(context.Background(), 11, 5)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllRead(t *testing.T) {
	mock := newMock(t)
	s := NewNotificationStorage(mock)

	mock.ExpectExec(`UPDATE notifications SET is_read = TRUE WHERE user_id = \$1 AND NOT is_read`).WithArgs(4).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := s.MarkAllRead(context.Background(), 4)
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
