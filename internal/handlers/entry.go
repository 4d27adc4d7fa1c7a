package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/export"
	"peels/internal/models"
	"peels/internal/usecases"
)

const (
	defaultPage = 20
	maxPage     = 100
	dateLayout  = "2006-01-02"
)

type RewardGranter interface {
	GrantEntry(ctx context.Context, userID int, now time.Time) (models.RewardResult, bool, error)
}

type GoalTracker interface {
	Progress(ctx context.Context, g *models.Goal) error
	Evaluate(ctx context.Context, userID int) ([]models.Goal, error)
}

type EntryHandler struct {
	access
	templates TemplateStore
	rewards   RewardGranter
	goals     GoalTracker
	validate  *validator.Validate
	log       *zap.Logger
	now       func() time.Time
}

func NewEntryHandler(journals JournalStore, entries EntryStore, friends FriendStore, templates TemplateStore,
	rewards RewardGranter, goals GoalTracker, v *validator.Validate, log *zap.Logger,
) *EntryHandler {
	return &EntryHandler{
		access:    access{journals: journals, entries: entries, friends: friends},
		templates: templates,
		rewards:   rewards,
		goals:     goals,
		validate:  v,
		log:       log,
		now:       time.Now,
	}
}

type entryCreated struct {
	Entry          models.Entry         `json:"entry"`
	Reward         *models.RewardResult `json:"reward,omitempty"`
	CompletedGoals []models.Goal        `json:"completed_goals"`
}

// POST /journals/{id}/entries
//
// A new entry is rewarded unless the daily cap is reached, after which the
// user's open goals are re-evaluated.
func (h *EntryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/entry.go HandleCreate"
	ctx := r.Context()
	userID := auth.UserID(ctx)

	journalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	var in models.EntryInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	if _, err := h.ownJournal(ctx, userID, journalID); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	content := in.Content
	if isEmptyJSON(content) && in.TemplateID != nil {
		t, err := h.templates.GetTemplate(ctx, *in.TemplateID)
		if err != nil {
			writeError(w, h.log, op, err)
			return
		}
		if t.UserID != userID {
			writeError(w, h.log, op, fmt.Errorf("template %d: %w", t.ID, usecases.ErrForbidden))
			return
		}
		content = t.Content
	}

	e := models.Entry{
		JournalID: journalID,
		UserID:    userID,
		Title:     in.Title,
		Mood:      in.Mood,
		ImageURL:  in.ImageURL,
	}
	if err := h.fill(&e, content, in.EntryDate); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	if err := h.entries.CreateEntry(ctx, &e); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	resp := entryCreated{Entry: e, CompletedGoals: []models.Goal{}}

	// the entry is stored; reward and goal failures are logged, not returned
	res, granted, err := h.rewards.GrantEntry(ctx, userID, h.now())
	switch {
	case err != nil:
		h.log.Error("entry reward failed", zap.String("op", op), zap.Int("entry_id", e.ID), zap.Error(err))
	case granted:
		resp.Reward = &res
	}

	done, err := h.goals.Evaluate(ctx, userID)
	if err != nil {
		h.log.Error("goal evaluation failed", zap.String("op", op), zap.Int("user_id", userID), zap.Error(err))
	}
	resp.CompletedGoals = append(resp.CompletedGoals, done...)

	writeJSON(w, h.log, op, http.StatusCreated, resp)
}

// GET /journals/{id}/entries?mood=&from=&to=&limit=&offset=
func (h *EntryHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/entry.go HandleList"

	journalID, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	f, err := entryFilter(r)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	if _, err := h.readableJournal(r.Context(), auth.UserID(r.Context()), journalID); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	entries, err := h.entries.ListEntries(r.Context(), journalID, f)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, entries)
}

// GET /entries/search?q=
func (h *EntryHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/entry.go HandleSearch"

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, h.log, op, fmt.Errorf("%w: q is required", usecases.ErrInvalidInput))
		return
	}
	limit, err := queryInt(r, "limit", defaultPage, maxPage)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	entries, err := h.entries.SearchEntries(r.Context(), auth.UserID(r.Context()), q, limit)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, entries)
}

// GET /entries/{id}
func (h *EntryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/entry.go HandleGet"

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	e, err := h.readableEntry(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, e)
}

// PUT /entries/{id}. Omitted content and entry_date keep their values.
func (h *EntryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/entry.go HandleUpdate"

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	var in models.EntryInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	e, err := h.ownEntry(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	e.Title, e.Mood, e.ImageURL = in.Title, in.Mood, in.ImageURL
	content := in.Content
	if isEmptyJSON(content) {
		content = e.Content
	}
	date := in.EntryDate
	if date == "" {
		date = e.EntryDate.Format(dateLayout)
	}
	if err := h.fill(&e, content, date); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	if err := h.entries.UpdateEntry(r.Context(), &e); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, e)
}

// DELETE /entries/{id}
func (h *EntryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/entry.go HandleDelete"

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	if _, err := h.ownEntry(r.Context(), auth.UserID(r.Context()), id); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	if err := h.entries.DeleteEntry(r.Context(), id); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GET /entries/{id}/export?format=rtf|pdf|txt
func (h *EntryHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/entry.go HandleExport"

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

	e, err := h.readableEntry(r.Context(), auth.UserID(r.Context()), id)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	sendExport(w, h.log, op, f, e.Title, []models.Entry{e})
}

// fill normalizes content and sets the entry date, defaulting to today (UTC).
func (h *EntryHandler) fill(e *models.Entry, content []byte, date string) error {
	stored, text, words, err := usecases.NormalizeContent(content)
	if err != nil {
		return err
	}
	e.Content, e.PlainText, e.WordCount = stored, text, words

	if date == "" {
		e.EntryDate = usecases.StartOfDay(h.now().UTC())
		return nil
	}
	d, err := time.ParseInLocation(dateLayout, date, time.UTC)
	if err != nil {
		return fmt.Errorf("%w: bad entry_date", usecases.ErrInvalidInput)
	}
	e.EntryDate = d
	return nil
}

func entryFilter(r *http.Request) (models.EntryFilter, error) {
	q := r.URL.Query()
	f := models.EntryFilter{Mood: q.Get("mood")}

	var err error
	if f.Limit, err = queryInt(r, "limit", defaultPage, maxPage); err != nil {
		return f, err
	}
	if f.Offset, err = queryInt(r, "offset", 0, 0); err != nil {
		return f, err
	}

	for key, dst := range map[string]**time.Time{"from": &f.From, "to": &f.To} {
		s := q.Get(key)
		if s == "" {
			continue
		}
		d, err := time.ParseInLocation(dateLayout, s, time.UTC)
		if err != nil {
			return f, fmt.Errorf("%w: bad %s date", usecases.ErrInvalidInput, key)
		}
		*dst = &d
	}
	return f, nil
}

func isEmptyJSON(raw []byte) bool {
	s := strings.TrimSpace(string(raw))
	return s == "" || s == "null"
}
