package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/storage"
	"peels/internal/usecases"
)

// maxBody caps request bodies; entries carry the largest payloads.
const maxBody = 1 << 20

func writeJSON(w http.ResponseWriter, log *zap.Logger, op string, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]any{
		"status": "success",
		"data":   data,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Warn("failed to encode response", zap.String("op", op), zap.Error(err))
	}
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "error",
		"message": message,
	})
}

// writeError maps domain and storage errors onto HTTP statuses. Unexpected
// errors are logged and reported as 500 without details.
func writeError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	status, message := http.StatusInternalServerError, "internal error"

	var verrs validator.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		status, message = http.StatusBadRequest, validationMessage(verrs)
	case errors.Is(err, usecases.ErrInvalidInput):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrInvalidToken):
		status, message = http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, usecases.ErrForbidden):
		status, message = http.StatusForbidden, "forbidden"
	case errors.Is(err, storage.ErrNotFound):
		status, message = http.StatusNotFound, "not found"
	case errors.Is(err, storage.ErrConflict):
		status, message = http.StatusConflict, "already exists"
	case errors.Is(err, usecases.ErrAlreadyOwned):
		status, message = http.StatusConflict, "item already owned"
	case errors.Is(err, usecases.ErrInsufficientBananas):
		status, message = http.StatusPaymentRequired, "not enough bananas"
	}

	if status == http.StatusInternalServerError {
		log.Error("request failed", zap.String("op", op), zap.Error(err))
	} else {
		log.Debug("request rejected", zap.String("op", op), zap.Int("status", status), zap.Error(err))
	}
	writeMessage(w, status, message)
}

func validationMessage(verrs validator.ValidationErrors) string {
	fe := verrs[0]
	if fe.Param() != "" {
		return fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag())
}

// decode reads a JSON body into dst and validates it.
func decode(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed json: %v", usecases.ErrInvalidInput, err)
	}
	return v.Struct(dst)
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad %s", usecases.ErrInvalidInput, name)
	}
	return id, nil
}

// queryInt reads a non-negative integer query parameter, clamped to max when
// max is positive.
func queryInt(r *http.Request, key string, def, max int) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: bad %s", usecases.ErrInvalidInput, key)
	}
	if max > 0 && n > max {
		n = max
	}
	return n, nil
}
