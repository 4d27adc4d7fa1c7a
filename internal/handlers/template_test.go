package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peels/internal/models"
	"peels/internal/storage"
)

type crudTemplates struct {
	*fakeTemplates
	deleted []int
}

func (f *crudTemplates) CreateTemplate(_ context.Context, t *models.Template) error {
	t.ID = 100 + len(f.byID)
	f.byID[t.ID] = *t
	return nil
}

func (f *crudTemplates) ListTemplates(_ context.Context, userID int) ([]models.Template, error) {
	out := []models.Template{}
	for _, t := range f.byID {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *crudTemplates) UpdateTemplate(_ context.Context, t *models.Template) error {
	if _, ok := f.byID[t.ID]; !ok {
		return storage.ErrNotFound
	}
	f.byID[t.ID] = *t
	return nil
}

func (f *crudTemplates) DeleteTemplate(_ context.Context, id int) error {
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func templateAPI() (*testAPI, *crudTemplates) {
	api := newTestAPI()
	templates := &crudTemplates{fakeTemplates: &fakeTemplates{byID: map[int]models.Template{
		6: {ID: 6, UserID: 2, Name: "Other", Content: json.RawMessage(gratefulDoc)},
	}}}
	api.deps.Templates = templates
	return api, templates
}

func TestTemplateCRUD(t *testing.T) {
	api, templates := templateAPI()
	h := api.handler()
	tok := api.token(t, 1, "peely")

	rec := do(t, h, http.MethodPost, "/api/templates", tok, map[string]any{
		"name":    "Gratitude",
		"content": json.RawMessage(gratefulDoc),
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.Template
	decodeData(t, rec, &created)
	assert.Equal(t, 1, created.UserID)
	assert.JSONEq(t, gratefulDoc, string(created.Content))

	rec = do(t, h, http.MethodGet, "/api/templates", tok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []models.Template
	decodeData(t, rec, &list)
	require.Len(t, list, 1, "only the caller's templates")

	path := "/api/templates/" + strconv.Itoa(created.ID)
	rec = do(t, h, http.MethodPut, path, tok, map[string]any{"name": "Thanks", "content": json.RawMessage(`{"blocks":[]}`)})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Thanks", templates.byID[created.ID].Name)

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, path, tok, nil).Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, path, tok, nil).Code)
	assert.Equal(t, []int{created.ID}, templates.deleted)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, path, tok, nil).Code)
}

func TestTemplateRejects(t *testing.T) {
	api, templates := templateAPI()
	h := api.handler()
	tok := api.token(t, 1, "peely")
	valid := map[string]any{"name": "Mine now", "content": json.RawMessage(gratefulDoc)}

	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodGet, "/api/templates/6", tok, nil).Code)
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodPut, "/api/templates/6", tok, valid).Code)
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodDelete, "/api/templates/6", tok, nil).Code)
	assert.Equal(t, "Other", templates.byID[6].Name)
	assert.Empty(t, templates.deleted)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/templates", tok,
		map[string]any{"name": "x", "content": json.RawMessage(`{"blocks":null}`)}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/templates", tok,
		map[string]any{"content": json.RawMessage(gratefulDoc)}).Code)
}
