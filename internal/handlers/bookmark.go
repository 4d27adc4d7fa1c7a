package handlers

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/models"
)

type BookmarkHandler struct {
	access
	bookmarks BookmarkStore
	validate  *validator.Validate
	log       *zap.Logger
}

func NewBookmarkHandler(bookmarks BookmarkStore, journals JournalStore, entries EntryStore, friends FriendStore, v *validator.Validate, log *zap.Logger) *BookmarkHandler {
	return &BookmarkHandler{
		access:    access{journals: journals, entries: entries, friends: friends},
		bookmarks: bookmarks,
		validate:  v,
		log:       log,
	}
}

// GET /bookmarks
func (h *BookmarkHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/bookmark.go HandleList"

	bookmarks, err := h.bookmarks.ListBookmarks(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, bookmarks)
}

// POST /bookmarks. The entry must be readable by the caller.
func (h *BookmarkHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/bookmark.go HandleAdd"
	userID := auth.UserID(r.Context())

	var in models.BookmarkInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	e, err := h.readableEntry(r.Context(), userID, in.EntryID)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	b := models.Bookmark{UserID: userID, EntryID: e.ID, EntryTitle: e.Title}
	if err := h.bookmarks.AddBookmark(r.Context(), &b); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusCreated, b)
}

// DELETE /bookmarks/{entryID}
func (h *BookmarkHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/bookmark.go HandleRemove"

	entryID, err := pathID(r, "entryID")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	if err := h.bookmarks.RemoveBookmark(r.Context(), auth.UserID(r.Context()), entryID); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
