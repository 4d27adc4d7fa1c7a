package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"peels/internal/models"
)

func TestValidatorDomainTags(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Struct(models.EntryInput{Title: "x", Mood: "😴"}))
	assert.NoError(t, v.Struct(models.EntryInput{Title: "x"}), "empty mood is allowed")
	assert.Error(t, v.Struct(models.EntryInput{Title: "x", Mood: "happy"}))

	for _, ok := range []string{"00:00", "09:05", "23:59"} {
		assert.NoError(t, v.Struct(models.JournalInput{Title: "x", ReminderEnabled: true, ReminderTime: ok}), ok)
	}
	for _, bad := range []string{"24:00", "9:05", "12:60", "noon"} {
		assert.Error(t, v.Struct(models.JournalInput{Title: "x", ReminderEnabled: true, ReminderTime: bad}), bad)
	}
}
