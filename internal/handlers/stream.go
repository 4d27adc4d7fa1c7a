package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/notify"
	"peels/internal/usecases"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// StreamHandler pushes notifications to the browser over a websocket.
type StreamHandler struct {
	hub      *notify.Hub
	upgrader websocket.Upgrader
	log      *zap.Logger
}

func NewStreamHandler(hub *notify.Hub, origin string, log *zap.Logger) *StreamHandler {
	return &StreamHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				o := r.Header.Get("Origin")
				return o == "" || origin == "*" || o == origin
			},
		},
		log: log,
	}
}

// GET /ws/notifications?token=
func (h *StreamHandler) HandleNotifications(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/stream.go HandleNotifications"
	userID := auth.UserID(r.Context())

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		h.log.Debug("websocket upgrade failed", zap.String("op", op), zap.Error(err))
		return
	}
	defer conn.Close()

	ch, cancel := h.hub.Subscribe(userID)
	defer cancel()

	// the reader only exists to notice the client going away and to handle
	// pongs
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	h.log.Debug("notification stream opened", zap.String("op", op), zap.Int("user_id", userID),
		zap.Int("streams", h.hub.Subscribers(userID)))
	for {
		select {
		case n, ok := <-ch:
			if !ok {
				return
			}
			n.TimeAgo = usecases.TimeAgo(n.CreatedAt, time.Now())
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(n); err != nil {
				h.log.Debug("notification write failed", zap.String("op", op), zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			h.log.Debug("notification stream closed", zap.String("op", op), zap.Int("user_id", userID))
			return
		case <-r.Context().Done():
			return
		}
	}
}
