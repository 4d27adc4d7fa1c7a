package handlers

import (
	"regexp"
	"slices"

	"github.com/go-playground/validator/v10"

	"peels/internal/models"
)

var hhmmRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// NewValidator returns a validator aware of the domain tags "mood" and
// "hhmm".
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	_ = v.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		return slices.Contains(models.Moods, fl.Field().String())
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmRe.MatchString(fl.Field().String())
	})

	return v
}
