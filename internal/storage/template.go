package storage

import (
	"context"
	"fmt"

	"peels/internal/models"
)

type TemplateStorage struct {
	db DB
}

func NewTemplateStorage(db DB) *TemplateStorage {
	return &TemplateStorage{db: db}
}

func (s *TemplateStorage) CreateTemplate(ctx context.Context, t *models.Template) error {
	op := "internal/storage/template.go CreateTemplate"

	query := `
	INSERT INTO templates (user_id, name, content)
	VALUES ($1, $2, $3)
	RETURNING id, created_at`

	if err := s.db.QueryRow(ctx, query, t.UserID, t.Name, t.Content).Scan(&t.ID, &t.CreatedAt); err != nil {
		return mapErr(op, err)
	}
	return nil
}

func (s *TemplateStorage) GetTemplate(ctx context.Context, id int) (models.Template, error) {
	op := "internal/storage/template.go GetTemplate"

	var t models.Template
	query := `SELECT id, user_id, name, content, created_at FROM templates WHERE id = $1`
	err := s.db.QueryRow(ctx, query, id).Scan(&t.ID, &t.UserID, &t.Name, &t.Content, &t.CreatedAt)
	if err != nil {
		return models.Template{}, mapErr(op, err)
	}
	return t, nil
}

func (s *TemplateStorage) ListTemplates(ctx context.Context, userID int) ([]models.Template, error) {
	op := "internal/storage/template.go ListTemplates"

	query := `SELECT id, user_id, name, content, created_at FROM templates WHERE user_id = $1 ORDER BY name`
	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	templates := []models.Template{}
	for rows.Next() {
		var t models.Template
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Content, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		templates = append(templates, t)
	}
	return templates, mapErr(op, rows.Err())
}

func (s *TemplateStorage) UpdateTemplate(ctx context.Context, t *models.Template) error {
	op := "internal/storage/template.go UpdateTemplate"

	tag, err := s.db.Exec(ctx, `UPDATE templates SET name = $2, content = $3 WHERE id = $1`, t.ID, t.Name, t.Content)
	return expectOne(op, tag, err)
}

func (s *TemplateStorage) DeleteTemplate(ctx context.Context, id int) error {
	op := "internal/storage/template.go DeleteTemplate"

	tag, err := s.db.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	return expectOne(op, tag, err)
}
