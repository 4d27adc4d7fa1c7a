package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/metrics"
	"peels/internal/notify"
	"peels/internal/usecases"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps is everything the HTTP API is built from.
type Deps struct {
	Users         UserStore
	Journals      JournalStore
	Entries       EntryStore
	Templates     TemplateStore
	Friends       FriendStore
	Bookmarks     BookmarkStore
	Notifications NotificationStore
	Market        MarketStore
	Ledger        LedgerStore
	Goals         GoalStore
	Boards        BoardStore

	Rewards  RewardGranter
	Tracker  GoalTracker
	Notifier usecases.Notifier
	Hub      *notify.Hub
	Tokens   *auth.TokenManager
	DB       Pinger

	CORSOrigin         string
	LoginRatePerMinute int
	Log                *zap.Logger
}

func NewRouter(d Deps) http.Handler {
	v := NewValidator()
	log := d.Log

	authH := NewAuthHandler(d.Users, d.Tokens, v, log)
	userH := NewUserHandler(d.Users, d.Market, v, log)
	journalH := NewJournalHandler(d.Journals, d.Entries, d.Friends, v, log)
	entryH := NewEntryHandler(d.Journals, d.Entries, d.Friends, d.Templates, d.Rewards, d.Tracker, v, log)
	templateH := NewTemplateHandler(d.Templates, v, log)
	friendH := NewFriendHandler(d.Friends, d.Notifier, v, log)
	bookmarkH := NewBookmarkHandler(d.Bookmarks, d.Journals, d.Entries, d.Friends, v, log)
	notificationH := NewNotificationHandler(d.Notifications, log)
	marketH := NewMarketHandler(d.Market, d.Ledger, d.Users, d.Notifier, v, log)
	goalH := NewGoalHandler(d.Goals, d.Tracker, v, log)
	boardH := NewLeaderboardHandler(d.Boards, d.Friends, log)
	statsH := NewStatsHandler(d.Users, d.Journals, d.Entries, log)
	streamH := NewStreamHandler(d.Hub, d.CORSOrigin, log)

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger(log))
	r.Use(middleware.Recoverer)
	r.Use(cors(d.CORSOrigin))

	r.Get("/healthz", healthz(d.DB, log))
	r.Handle("/metrics", metrics.Handler())

	limiter := newIPLimiter(d.LoginRatePerMinute, log)
	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authH.HandleRegister)
		r.With(limiter.Handler).Post("/auth/login", authH.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(authenticate(d.Tokens, log))

			r.Get("/ws/notifications", streamH.HandleNotifications)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(30 * time.Second))

				r.Get("/users/me", userH.HandleMe)
				r.Put("/users/me", userH.HandleUpdateMe)
				r.Post("/users/me/equip", userH.HandleEquip)
				r.Get("/users/search", userH.HandleSearch)
				r.Get("/users/{id}", userH.HandleGet)

				r.Get("/journals", journalH.HandleList)
				r.Post("/journals", journalH.HandleCreate)
				r.Get("/journals/{id}", journalH.HandleGet)
				r.Put("/journals/{id}", journalH.HandleUpdate)
				r.Delete("/journals/{id}", journalH.HandleDelete)
				r.Get("/journals/{id}/export", journalH.HandleExport)
				r.Get("/journals/{id}/entries", entryH.HandleList)
				r.Post("/journals/{id}/entries", entryH.HandleCreate)

				r.Get("/entries/search", entryH.HandleSearch)
				r.Get("/entries/{id}", entryH.HandleGet)
				r.Put("/entries/{id}", entryH.HandleUpdate)
				r.Delete("/entries/{id}", entryH.HandleDelete)
				r.Get("/entries/{id}/export", entryH.HandleExport)

				r.Get("/templates", templateH.HandleList)
				r.Post("/templates", templateH.HandleCreate)
				r.Get("/templates/{id}", templateH.HandleGet)
				r.Put("/templates/{id}", templateH.HandleUpdate)
				r.Delete("/templates/{id}", templateH.HandleDelete)

				r.Get("/friends", friendH.HandleList)
				r.Get("/friends/requests", friendH.HandleIncoming)
				r.Post("/friends/requests", friendH.HandleRequest)
				r.Post("/friends/requests/{id}/accept", friendH.HandleAccept)
				r.Delete("/friends/{id}", friendH.HandleRemove)

				r.Get("/bookmarks", bookmarkH.HandleList)
				r.Post("/bookmarks", bookmarkH.HandleAdd)
				r.Delete("/bookmarks/{entryID}", bookmarkH.HandleRemove)

				r.Get("/notifications", notificationH.HandleList)
				r.Get("/notifications/unread-count", notificationH.HandleUnreadCount)
				r.Post("/notifications/read-all", notificationH.HandleMarkAllRead)
				r.Post("/notifications/{id}/read", notificationH.HandleMarkRead)
				r.Delete("/notifications/{id}", notificationH.HandleDelete)

				r.Get("/marketplace", marketH.HandleItems)
				r.Post("/marketplace/{id}/purchase", marketH.HandlePurchase)
				r.Get("/inventory", marketH.HandleInventory)
				r.Get("/characters", marketH.HandleCharacters)
				r.Put("/characters/{id}", marketH.HandleRenameCharacter)
				r.Get("/bananas", marketH.HandleBananas)
				r.Get("/xp", marketH.HandleXP)

				r.Get("/goals", goalH.HandleList)
				r.Post("/goals", goalH.HandleCreate)
				r.Get("/goals/{id}", goalH.HandleGet)
				r.Put("/goals/{id}", goalH.HandleUpdate)
				r.Delete("/goals/{id}", goalH.HandleDelete)

				r.Get("/leaderboard", boardH.HandleGet)
				r.Get("/stats", statsH.HandleGet)
			})
		})
	})

	return r
}

func healthz(db Pinger, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		op := "internal/handlers/router.go healthz"

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.Warn("health check failed", zap.String("op", op), zap.Error(err))
			writeMessage(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		writeJSON(w, log, op, http.StatusOK, map[string]string{"database": "ok"})
	}
}
