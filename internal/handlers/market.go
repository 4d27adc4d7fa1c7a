package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/metrics"
	"peels/internal/models"
	"peels/internal/usecases"
)

// MarketHandler serves the marketplace, owned items and the XP and banana
// ledgers.
type MarketHandler struct {
	market   MarketStore
	ledger   LedgerStore
	users    UserStore
	notify   usecases.Notifier
	validate *validator.Validate
	log      *zap.Logger
}

func NewMarketHandler(market MarketStore, ledger LedgerStore, users UserStore, notify usecases.Notifier, v *validator.Validate, log *zap.Logger) *MarketHandler {
	return &MarketHandler{market: market, ledger: ledger, users: users, notify: notify, validate: v, log: log}
}

// GET /marketplace?type=character|style|badge
func (h *MarketHandler) HandleItems(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/market.go HandleItems"

	itemType := r.URL.Query().Get("type")
	switch itemType {
	case "", models.ItemCharacter, models.ItemStyle, models.ItemBadge:
	default:
		writeError(w, h.log, op, fmt.Errorf("%w: unknown item type %q", usecases.ErrInvalidInput, itemType))
		return
	}

	items, err := h.market.ListItems(r.Context(), itemType)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, items)
}

// POST /marketplace/{id}/purchase
func (h *MarketHandler) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/market.go HandlePurchase"
	userID := auth.UserID(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	p, err := h.market.Purchase(r.Context(), userID, id)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	metrics.RecordSpend(p.Item.Price)
	h.notify.NotifyQuietly(r.Context(), userID, models.NotifyPurchase,
		fmt.Sprintf("You unlocked %s for %d bananas.", p.Item.Name, p.Item.Price))
	h.log.Info("item purchased", zap.String("op", op), zap.Int("user_id", userID), zap.Int("item_id", id))

	writeJSON(w, h.log, op, http.StatusCreated, p)
}

// GET /inventory
func (h *MarketHandler) HandleInventory(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/market.go HandleInventory"

	items, err := h.market.ListUserItems(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, items)
}

// GET /characters
func (h *MarketHandler) HandleCharacters(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/market.go HandleCharacters"

	chars, err := h.market.ListCharacters(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, chars)
}

// PUT /characters/{id} renames an owned character.
func (h *MarketHandler) HandleRenameCharacter(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/market.go HandleRenameCharacter"

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	var in models.CharacterInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	c, err := h.market.RenameCharacter(r.Context(), id, auth.UserID(r.Context()), in.Nickname)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, c)
}

type balance struct {
	Bananas int             `json:"bananas"`
	History []models.Banana `json:"history"`
}

// GET /bananas?limit=&offset=
func (h *MarketHandler) HandleBananas(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/market.go HandleBananas"
	userID := auth.UserID(r.Context())

	limit, offset, err := page(r)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	u, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	history, err := h.ledger.ListBananas(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, balance{Bananas: u.Bananas, History: history})
}

type experience struct {
	Experience    int            `json:"experience"`
	Level         int            `json:"level"`
	XPToNextLevel int            `json:"xp_to_next_level"`
	History       []models.XPLog `json:"history"`
}

// GET /xp?limit=&offset=
func (h *MarketHandler) HandleXP(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/market.go HandleXP"
	userID := auth.UserID(r.Context())

	limit, offset, err := page(r)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	u, err := h.users.GetUser(r.Context(), userID)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	history, err := h.ledger.ListXPLogs(r.Context(), userID, limit, offset)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	writeJSON(w, h.log, op, http.StatusOK, experience{
		Experience:    u.Experience,
		Level:         usecases.LevelFor(u.Experience),
		XPToNextLevel: usecases.XPToNextLevel(u.Experience),
		History:       history,
	})
}

func page(r *http.Request) (limit, offset int, err error) {
	if limit, err = queryInt(r, "limit", defaultPage, maxPage); err != nil {
		return 0, 0, err
	}
	if offset, err = queryInt(r, "offset", 0, 0); err != nil {
		return 0, 0, err
	}
	return limit, offset, nil
}
