package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/models"
	"peels/internal/storage"
)

type AuthHandler struct {
	users    UserStore
	tokens   *auth.TokenManager
	validate *validator.Validate
	log      *zap.Logger
}

func NewAuthHandler(users UserStore, tokens *auth.TokenManager, v *validator.Validate, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, validate: v, log: log}
}

type session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      models.User `json:"user"`
}

// POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/auth.go HandleRegister"

	var in models.RegisterInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	u := models.User{Username: in.Username, Email: in.Email, PasswordHash: hash}
	if err := h.users.CreateUser(r.Context(), &u); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	s, err := h.session(u)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	h.log.Info("user registered", zap.String("op", op), zap.Int("user_id", u.ID))
	writeJSON(w, h.log, op, http.StatusCreated, s)
}

// POST /auth/login. login is either the username or the email.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/auth.go HandleLogin"

	var in models.LoginInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	u, err := h.users.GetUserByLogin(r.Context(), in.Login)
	if errors.Is(err, storage.ErrNotFound) || (err == nil && !auth.CheckPassword(u.PasswordHash, in.Password)) {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	s, err := h.session(u)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, s)
}

func (h *AuthHandler) session(u models.User) (session, error) {
	token, exp, err := h.tokens.Issue(u.ID, u.Username)
	if err != nil {
		return session{}, err
	}
	return session{Token: token, ExpiresAt: exp, User: u}, nil
}
