package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peels/internal/models"
	"peels/internal/storage"
)

type fakeBookmarks struct {
	BookmarkStore
	saved []models.Bookmark
}

func (f *fakeBookmarks) AddBookmark(_ context.Context, b *models.Bookmark) error {
	for _, s := range f.saved {
		if s.UserID == b.UserID && s.EntryID == b.EntryID {
			return storage.ErrConflict
		}
	}
	b.ID = len(f.saved) + 1
	f.saved = append(f.saved, *b)
	return nil
}

func (f *fakeBookmarks) RemoveBookmark(_ context.Context, userID, entryID int) error {
	for i, s := range f.saved {
		if s.UserID == userID && s.EntryID == entryID {
			f.saved = append(f.saved[:i], f.saved[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (f *fakeBookmarks) ListBookmarks(_ context.Context, userID int) ([]models.Bookmark, error) {
	out := []models.Bookmark{}
	for _, s := range f.saved {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestBookmarks(t *testing.T) {
	api, entries, _, _ := entryAPI(t)
	api.deps.Friends = &fakeFriends{of: map[int][]int{1: {2}, 2: {1}}}
	bookmarks := &fakeBookmarks{}
	api.deps.Bookmarks = bookmarks
	entries.byID[1] = models.Entry{ID: 1, JournalID: 1, UserID: 1, Title: "secret"}
	entries.byID[2] = models.Entry{ID: 2, JournalID: 2, UserID: 2, Title: "shared"}
	h := api.handler()
	mine := api.token(t, 1, "peely")

	rec := do(t, h, http.MethodPost, "/api/bookmarks", mine, map[string]any{"entry_id": 2})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var b models.Bookmark
	decodeData(t, rec, &b)
	assert.Equal(t, "shared", b.EntryTitle)

	assert.Equal(t, http.StatusConflict, do(t, h, http.MethodPost, "/api/bookmarks", mine, map[string]any{"entry_id": 2}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/bookmarks", mine, map[string]any{}).Code)

	rec = do(t, h, http.MethodGet, "/api/bookmarks", mine, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Bookmark
	decodeData(t, rec, &list)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].EntryID)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/bookmarks/2", mine, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/bookmarks/2", mine, nil).Code)
	assert.Empty(t, bookmarks.saved)
}

func TestBookmarkNeedsReadableEntry(t *testing.T) {
	api, entries, _, _ := entryAPI(t)
	api.deps.Friends = &fakeFriends{of: map[int][]int{1: {2}, 2: {1}}}
	bookmarks := &fakeBookmarks{}
	api.deps.Bookmarks = bookmarks
	entries.byID[1] = models.Entry{ID: 1, JournalID: 1, UserID: 1, Title: "secret"}
	entries.byID[2] = models.Entry{ID: 2, JournalID: 2, UserID: 2, Title: "shared"}
	h := api.handler()

	friend := api.token(t, 2, "friend")
	stranger := api.token(t, 3, "stranger")

	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodPost, "/api/bookmarks", friend, map[string]any{"entry_id": 1}).Code, "private journal")
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodPost, "/api/bookmarks", stranger, map[string]any{"entry_id": 2}).Code, "not a friend")
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/bookmarks", friend, map[string]any{"entry_id": 99}).Code)
	assert.Empty(t, bookmarks.saved)
}
