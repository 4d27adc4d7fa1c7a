// Package notify stores notifications and fans them out to live subscribers.
package notify

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"peels/internal/models"
	"peels/internal/usecases"
)

const subscriberBuffer = 16

// Hub delivers published notifications to the subscribers of the addressed
// user. Slow subscribers miss messages rather than block publishers.
type Hub struct {
	mu   sync.RWMutex
	subs map[int]map[chan models.Notification]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]map[chan models.Notification]struct{})}
}

// Subscribe registers a listener for userID. The returned cancel func must be
// called once; it closes the channel.
func (h *Hub) Subscribe(userID int) (<-chan models.Notification, func()) {
	ch := make(chan models.Notification, subscriberBuffer)

	h.mu.Lock()
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[chan models.Notification]struct{})
	}
	h.subs[userID][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[userID], ch)
			if len(h.subs[userID]) == 0 {
				delete(h.subs, userID)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish returns how many subscribers received n.
func (h *Hub) Publish(n models.Notification) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.subs[n.UserID] {
		select {
		case ch <- n:
			delivered++
		default:
		}
	}
	return delivered
}

func (h *Hub) Subscribers(userID int) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}

type Store interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
}

type Notifier struct {
	store Store
	hub   *Hub
	log   *zap.Logger
	now   func() time.Time
}

func NewNotifier(store Store, hub *Hub, log *zap.Logger) *Notifier {
	return &Notifier{store: store, hub: hub, log: log, now: time.Now}
}

// Notify persists a notification and pushes it to the user's live sessions.
func (n *Notifier) Notify(ctx context.Context, userID int, kind, message string) (models.Notification, error) {
	op := "internal/notify/hub.go Notify"

	note := models.Notification{UserID: userID, Type: kind, Message: message}
	if err := n.store.CreateNotification(ctx, &note); err != nil {
		return models.Notification{}, fmt.Errorf("%s: %w", op, err)
	}
	note.TimeAgo = usecases.TimeAgo(note.CreatedAt, n.now())

	delivered := n.hub.Publish(note)
	n.log.Debug("notification sent",
		zap.String("op", op),
		zap.Int("user_id", userID),
		zap.String("type", kind),
		zap.Int("live", delivered),
	)
	return note, nil
}

// NotifyQuietly is Notify for callers that must not fail because of it.
func (n *Notifier) NotifyQuietly(ctx context.Context, userID int, kind, message string) {
	if _, err := n.Notify(ctx, userID, kind, message); err != nil {
		n.log.Warn("notification dropped", zap.Int("user_id", userID), zap.String("type", kind), zap.Error(err))
	}
}
