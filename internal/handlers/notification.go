package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/usecases"
)

const notificationLimit = 50

type NotificationHandler struct {
	notifications NotificationStore
	log           *zap.Logger
	now           func() time.Time
}

func NewNotificationHandler(notifications NotificationStore, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, log: log, now: time.Now}
}

// GET /notifications lists unread first, newest first.
func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/notification.go HandleList"

	list, err := h.notifications.ListNotifications(r.Context(), auth.UserID(r.Context()), notificationLimit)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	now := h.now()
	for i := range list {
		list[i].TimeAgo = usecases.TimeAgo(list[i].CreatedAt, now)
	}
	writeJSON(w, h.log, op, http.StatusOK, list)
}

// GET /notifications/unread-count
func (h *NotificationHandler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/notification.go HandleUnreadCount"

	n, err := h.notifications.UnreadCount(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, map[string]int{"count": n})
}

// POST /notifications/{id}/read
func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/notification.go HandleMarkRead"

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), id, auth.UserID(r.Context())); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /notifications/read-all
func (h *NotificationHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/notification.go HandleMarkAllRead"

	n, err := h.notifications.MarkAllRead(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, map[string]int64{"updated": n})
}

// DELETE /notifications/{id}
func (h *NotificationHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/notification.go HandleDelete"

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	if err := h.notifications.DeleteNotification(r.Context(), id, auth.UserID(r.Context())); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
