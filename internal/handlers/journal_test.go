package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peels/internal/models"
)

func TestCreateJournalDefaults(t *testing.T) {
	api := newTestAPI()
	h := api.handler()
	tok := api.token(t, 1, "peely")

	rec := do(t, h, http.MethodPost, "/api/journals", tok, map[string]any{"title": "Dreams"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var j models.Journal
	decodeData(t, rec, &j)
	assert.Equal(t, 1, j.UserID)
	assert.Equal(t, "default", j.Theme)
	assert.True(t, j.IsPrivate)
}

func TestCreateJournalValidatesReminder(t *testing.T) {
	api := newTestAPI()
	h := api.handler()
	tok := api.token(t, 1, "peely")

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{"enabled without time", map[string]any{"title": "x", "reminder_enabled": true}, http.StatusBadRequest},
		{"bad time", map[string]any{"title": "x", "reminder_enabled": true, "reminder_time": "25:00"}, http.StatusBadRequest},
		{"valid", map[string]any{"title": "x", "reminder_enabled": true, "reminder_time": "21:30"}, http.StatusCreated},
		{"disabled", map[string]any{"title": "x"}, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, do(t, h, http.MethodPost, "/api/journals", tok, tt.body).Code)
		})
	}
}

func TestGetJournalAccess(t *testing.T) {
	api := newTestAPI()
	api.deps.Journals = &fakeJournals{byID: map[int]models.Journal{
		1: {ID: 1, UserID: 1, IsPrivate: true},
		2: {ID: 2, UserID: 1, IsPrivate: false},
	}}
	api.deps.Friends = &fakeFriends{of: map[int][]int{2: {1}}}
	h := api.handler()

	owner := api.token(t, 1, "peely")
	friend := api.token(t, 2, "ben")

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/journals/1", owner, nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodGet, "/api/journals/1", friend, nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/api/journals/2", friend, nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodDelete, "/api/journals/2", friend, nil).Code, "friends cannot modify")
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/journals/9", owner, nil).Code)
}
