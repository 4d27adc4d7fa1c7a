package storage

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peels/internal/models"
)

func TestAddBookmark(t *testing.T) {
	mock := newMock(t)
	s := NewBookmarkStorage(mock)

	mock.ExpectQuery(`INSERT INTO bookmarks`).WithArgs(1, 4).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(11, created))

	b := models.Bookmark{UserID: 1, EntryID: 4}
	require.NoError(t, s.AddBookmark(context.Background(), &b))
	assert.Equal(t, 11, b.ID)
	assert.Equal(t, created, b.CreatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBookmarksOnlyReadableEntries(t *testing.T) {
	mock := newMock(t)
	s := NewBookmarkStorage(mock)

	mock.ExpectQuery(`JOIN journals j ON j.id = e.journal_id(.|\n)*j.user_id = \$1 OR \(NOT j.is_private AND EXISTS`).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "entry_id", "title", "created_at"}).
			AddRow(11, 1, 4, "Tuesday", created))

	list, err := s.ListBookmarks(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Tuesday", list[0].EntryTitle)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoveMissingBookmark(t *testing.T) {
	mock := newMock(t)
	s := NewBookmarkStorage(mock)

	mock.ExpectExec(`DELETE FROM bookmarks`).WithArgs(1, 4).WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, s.RemoveBookmark(context.Background(), 1, 4), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
