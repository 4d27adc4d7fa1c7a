package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/models"
	"peels/internal/usecases"
)

type FriendHandler struct {
	friends  FriendStore
	notify   usecases.Notifier
	validate *validator.Validate
	log      *zap.Logger
}

func NewFriendHandler(friends FriendStore, notify usecases.Notifier, v *validator.Validate, log *zap.Logger) *FriendHandler {
	return &FriendHandler{friends: friends, notify: notify, validate: v, log: log}
}

// GET /friends
func (h *FriendHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/friend.go HandleList"

	friends, err := h.friends.ListFriends(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, friends)
}

// GET /friends/requests lists pending requests addressed to the caller.
func (h *FriendHandler) HandleIncoming(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/friend.go HandleIncoming"

	requests, err := h.friends.ListIncoming(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, requests)
}

// POST /friends/requests. Asking someone who already asked the caller
// accepts their request.
func (h *FriendHandler) HandleRequest(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/friend.go HandleRequest"
	claims, _ := auth.FromContext(r.Context())

	var in models.FriendRequestInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	if in.FriendID == claims.UserID {
		writeError(w, h.log, op, fmt.Errorf("%w: cannot befriend yourself", usecases.ErrInvalidInput))
		return
	}

	f, err := h.friends.RequestFriend(r.Context(), claims.UserID, in.FriendID)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	if f.Status == models.FriendAccepted {
		h.notify.NotifyQuietly(r.Context(), in.FriendID, models.NotifyFriendAccept,
			fmt.Sprintf("%s accepted your friend request.", claims.Username))
		writeJSON(w, h.log, op, http.StatusOK, f)
		return
	}

	h.notify.NotifyQuietly(r.Context(), in.FriendID, models.NotifyFriendRequest,
		fmt.Sprintf("%s sent you a friend request.", claims.Username))
	writeJSON(w, h.log, op, http.StatusCreated, f)
}

// POST /friends/requests/{id}/accept
func (h *FriendHandler) HandleAccept(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/friend.go HandleAccept"
	claims, _ := auth.FromContext(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	f, err := h.friends.AcceptFriend(r.Context(), id, claims.UserID)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	h.notify.NotifyQuietly(r.Context(), f.UserID, models.NotifyFriendAccept,
		fmt.Sprintf("%s accepted your friend request.", claims.Username))
	writeJSON(w, h.log, op, http.StatusOK, f)
}

// DELETE /friends/{id} removes a friend or declines/cancels a request. id is
// the other user's id.
func (h *FriendHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/friend.go HandleRemove"

	other, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	if err := h.friends.RemoveFriend(r.Context(), auth.UserID(r.Context()), other); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
