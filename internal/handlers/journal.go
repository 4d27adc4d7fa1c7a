package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"slices"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/export"
	"peels/internal/models"
)

// exportLimit bounds how many entries a journal export reads.
const exportLimit = 10000

type JournalHandler struct {
	access
	validate *validator.Validate
	log      *zap.Logger
}

func NewJournalHandler(journals JournalStore, entries EntryStore, friends FriendStore, v *validator.Validate, log *zap.Logger) *JournalHandler {
	return &JournalHandler{
		access:   access{journals: journals, entries: entries, friends: friends},
		validate: v,
		log:      log,
	}
}

// GET /journals
func (h *JournalHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/journal.go HandleList"

	journals, err := h.journals.ListJournals(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, journals)
}

// POST /journals
func (h *JournalHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/journal.go HandleCreate"

	var in models.JournalInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	j := models.Journal{UserID: auth.UserID(r.Context())}
	in.Apply(&j)
	if err := h.journals.CreateJournal(r.Context(), &j); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusCreated, j)
}

// GET /journals/{id}
func (h *JournalHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/journal.go HandleGet"

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	j, err := h.readableJournal(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, j)
}

// PUT /journals/{id}
func (h *JournalHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/journal.go HandleUpdate"

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	var in models.JournalInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	j, err := h.ownJournal(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	count := j.EntryCount
	in.Apply(&j)
	if err := h.journals.UpdateJournal(r.Context(), &j); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	j.EntryCount = count
	writeJSON(w, h.log, op, http.StatusOK, j)
}

// DELETE /journals/{id}
func (h *JournalHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/journal.go HandleDelete"

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	if _, err := h.ownJournal(r.Context(), auth.UserID(r.Context()), id); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	if err := h.journals.DeleteJournal(r.Context(), id); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /journals/{id}/export?format=rtf|pdf|txt
func (h *JournalHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/journal.go HandleExport"

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	f, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	j, err := h.readableJournal(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	entries, err := h.entries.ListEntries(r.Context(), j.ID, models.EntryFilter{Limit: exportLimit})
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	// oldest first reads like a diary
	slices.Reverse(entries)

	sendExport(w, h.log, op, f, j.Title, entries)
}

// sendExport renders into memory first so a failed render still gets a
// proper error response.
func sendExport(w http.ResponseWriter, log *zap.Logger, op string, f export.Format, title string, entries []models.Entry) {
	var buf bytes.Buffer
	if err := export.Render(&buf, f, title, entries); err != nil {
		writeError(w, log, op, err)
		return
	}

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", f.Filename(title)))
	w.Header().Set("Content-Length", fmt.Sprint(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn("failed to write export", zap.String("op", op), zap.Error(err))
	}
}
