package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/usecases"
)

type StatsHandler struct {
	users    UserStore
	journals JournalStore
	entries  EntryStore
	log      *zap.Logger
	now      func() time.Time
}

func NewStatsHandler(users UserStore, journals JournalStore, entries EntryStore, log *zap.Logger) *StatsHandler {
	return &StatsHandler{users: users, journals: journals, entries: entries, log: log, now: time.Now}
}

// GET /stats
func (h *StatsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/stats.go HandleGet"
	ctx := r.Context()
	userID := auth.UserID(ctx)

	u, err := h.users.GetUser(ctx, userID)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	days, err := h.entries.EntryDays(ctx, userID)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	journals, err := h.journals.CountJournals(ctx, userID)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	st := usecases.ComputeStats(days, h.now().UTC())
	st.Journals = journals
	st.Experience = u.Experience
	st.Level = usecases.LevelFor(u.Experience)
	st.XPToNextLevel = usecases.XPToNextLevel(u.Experience)
	st.Bananas = u.Bananas

	writeJSON(w, h.log, op, http.StatusOK, st)
}
