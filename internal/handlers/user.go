package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/models"
	"peels/internal/usecases"
)

const searchLimit = 20

type UserHandler struct {
	users    UserStore
	market   MarketStore
	validate *validator.Validate
	log      *zap.Logger
}

func NewUserHandler(users UserStore, market MarketStore, v *validator.Validate, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, market: market, validate: v, log: log}
}

// GET /users/me
func (h *UserHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/user.go HandleMe"

	u, err := h.users.GetUser(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, u)
}

// PUT /users/me
func (h *UserHandler) HandleUpdateMe(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/user.go HandleUpdateMe"

	var in models.ProfileInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	u, err := h.users.UpdateProfile(r.Context(), auth.UserID(r.Context()), in)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, u)
}

// GET /users/search?q=prefix
func (h *UserHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/user.go HandleSearch"

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, h.log, op, fmt.Errorf("%w: q is required", usecases.ErrInvalidInput))
		return
	}

	users, err := h.users.SearchUsers(r.Context(), q, searchLimit)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, users)
}

// GET /users/{id}
func (h *UserHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/user.go HandleGet"

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	u, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, u.Public())
}

// POST /users/me/equip sets the owned item as active in its slot.
func (h *UserHandler) HandleEquip(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/user.go HandleEquip"
	userID := auth.UserID(r.Context())

	var in models.EquipInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	owned, err := h.market.OwnsItem(r.Context(), userID, in.ItemID)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	if !owned {
		writeError(w, h.log, op, fmt.Errorf("equip item %d: %w", in.ItemID, usecases.ErrForbidden))
		return
	}

	item, err := h.market.GetItem(r.Context(), in.ItemID)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	if err := h.users.SetActiveItem(r.Context(), userID, item); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	u, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, u)
}
