package storage

import (
	"context"
	"fmt"

	"peels/internal/models"
)

type BookmarkStorage struct {
	db DB
}

func NewBookmarkStorage(db DB) *BookmarkStorage {
	return &BookmarkStorage{db: db}
}

func (s *BookmarkStorage) AddBookmark(ctx context.Context, b *models.Bookmark) error {
	op := "internal/storage/bookmark.go AddBookmark"

	query := `
	INSERT INTO bookmarks (user_id, entry_id)
	VALUES ($1, $2)
	RETURNING id, created_at`

	if err := s.db.QueryRow(ctx, query, b.UserID, b.EntryID).Scan(&b.ID, &b.CreatedAt); err != nil {
		return mapErr(op, err)
	}
	return nil
}

func (s *BookmarkStorage) RemoveBookmark(ctx context.Context, userID, entryID int) error {
	op := "internal/storage/bookmark.go RemoveBookmark"

	tag, err := s.db.Exec(ctx, `DELETE FROM bookmarks WHERE user_id = $1 AND entry_id = $2`, userID, entryID)
	return expectOne(op, tag, err)
}

// ListBookmarks returns the user's bookmarks on entries they can still read:
// their own, or a friend's in a public journal.
func (s *BookmarkStorage) ListBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error) {
	op := "internal/storage/bookmark.go ListBookmarks"

	rows, err := s.db.Query(ctx, `
	SELECT b.id, b.user_id, b.entry_id, e.title, b.created_at
	FROM bookmarks b
	JOIN entries e ON e.id = b.entry_id
	JOIN journals j ON j.id = e.journal_id
	WHERE b.user_id = $1
	AND (j.user_id = $1 OR (NOT j.is_private AND EXISTS (
		SELECT 1 FROM friends f
		WHERE f.status = 'accepted'
		AND ((f.user_id = $1 AND f.friend_id = j.user_id) OR (f.user_id = j.user_id AND f.friend_id = $1))
	)))
	ORDER BY b.created_at DESC`, userID)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	bookmarks := []models.Bookmark{}
	for rows.Next() {
		var b models.Bookmark
		if err := rows.Scan(&b.ID, &b.UserID, &b.EntryID, &b.EntryTitle, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		bookmarks = append(bookmarks, b)
	}
	return bookmarks, mapErr(op, rows.Err())
}
