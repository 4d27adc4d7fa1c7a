package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"peels/internal/auth"
	"peels/internal/models"
	"peels/internal/usecases"
)

type TemplateHandler struct {
	templates TemplateStore
	validate  *validator.Validate
	log       *zap.Logger
}

func NewTemplateHandler(templates TemplateStore, v *validator.Validate, log *zap.Logger) *TemplateHandler {
	return &TemplateHandler{templates: templates, validate: v, log: log}
}

func (h *TemplateHandler) own(ctx context.Context, r *http.Request) (models.Template, error) {
	id, err := pathID(r, "id")
	if err != nil {
		return models.Template{}, err
	}
	t, err := h.templates.GetTemplate(ctx, id)
	if err != nil {
		return models.Template{}, err
	}
	if t.UserID != auth.UserID(ctx) {
		return models.Template{}, fmt.Errorf("template %d: %w", id, usecases.ErrForbidden)
	}
	return t, nil
}

// GET /templates
func (h *TemplateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/template.go HandleList"

	templates, err := h.templates.ListTemplates(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, templates)
}

// POST /templates
func (h *TemplateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/template.go HandleCreate"

	var in models.TemplateInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	content, _, _, err := usecases.NormalizeContent(in.Content)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	t := models.Template{UserID: auth.UserID(r.Context()), Name: in.Name, Content: content}
	if err := h.templates.CreateTemplate(r.Context(), &t); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusCreated, t)
}

// GET /templates/{id} returns the template, whose content the editor applies.
func (h *TemplateHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/template.go HandleGet"

	t, err := h.own(r.Context(), r)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, t)
}

// PUT /templates/{id}
func (h *TemplateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/template.go HandleUpdate"

	var in models.TemplateInput
	if err := decode(w, r, h.validate, &in); err != nil {
		writeError(w, h.log, op, err)
		return
	}

	content, _, _, err := usecases.NormalizeContent(in.Content)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	t, err := h.own(r.Context(), r)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}

	t.Name, t.Content = in.Name, content
	if err := h.templates.UpdateTemplate(r.Context(), &t); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	writeJSON(w, h.log, op, http.StatusOK, t)
}

// DELETE /templates/{id}
func (h *TemplateHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	op := "internal/handlers/template.go HandleDelete"

	t, err := h.own(r.Context(), r)
	if err != nil {
		writeError(w, h.log, op, err)
		return
	}
	if err := h.templates.DeleteTemplate(r.Context(), t.ID); err != nil {
		writeError(w, h.log, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
