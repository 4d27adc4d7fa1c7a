package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"peels/internal/models"
)

const entryColumns = `id, journal_id, user_id, title, content, plain_text, word_count, mood, image_url,
	entry_date, created_at, updated_at`

type EntryStorage struct {
	db DB
}

func NewEntryStorage(db DB) *EntryStorage {
	return &EntryStorage{db: db}
}

func scanEntry(row pgx.Row, e *models.Entry) error {
	return row.Scan(
		&e.ID,
		&e.JournalID,
		&e.UserID,
		&e.Title,
		&e.Content,
		&e.PlainText,
		&e.WordCount,
		&e.Mood,
		&e.ImageURL,
		&e.EntryDate,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
}

func collectEntries(op string, rows pgx.Rows, err error) ([]models.Entry, error) {
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var e models.Entry
		if err := scanEntry(rows, &e); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		entries = append(entries, e)
	}
	return entries, mapErr(op, rows.Err())
}

func (s *EntryStorage) CreateEntry(ctx context.Context, e *models.Entry) error {
	op := "internal/storage/entry.go CreateEntry"

	query := `
	INSERT INTO entries
	(journal_id, user_id, title, content, plain_text, word_count, mood, image_url, entry_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + entryColumns

	err := scanEntry(s.db.QueryRow(ctx, query,
		e.JournalID,
		e.UserID,
		e.Title,
		e.Content,
		e.PlainText,
		e.WordCount,
		e.Mood,
		e.ImageURL,
		e.EntryDate,
	), e)
	if err != nil {
		return mapErr(op, err)
	}

	_, err = s.db.Exec(ctx, `UPDATE journals SET updated_at = now() WHERE id = $1`, e.JournalID)
	if err != nil {
		return mapErr(op, err)
	}
	return nil
}

func (s *EntryStorage) GetEntry(ctx context.Context, id int) (models.Entry, error) {
	op := "internal/storage/entry.go GetEntry"

	var e models.Entry
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1`
	if err := scanEntry(s.db.QueryRow(ctx, query, id), &e); err != nil {
		return models.Entry{}, mapErr(op, err)
	}
	return e, nil
}

// ListEntries returns a journal's entries, newest entry date first.
func (s *EntryStorage) ListEntries(ctx context.Context, journalID int, f models.EntryFilter) ([]models.Entry, error) {
	op := "internal/storage/entry.go ListEntries"

	var where strings.Builder
	args := []any{journalID}
	where.WriteString("journal_id = $1")

	if f.Mood != "" {
		args = append(args, f.Mood)
		fmt.Fprintf(&where, " AND mood = $%d", len(args))
	}
	if f.From != nil {
		args = append(args, *f.From)
		fmt.Fprintf(&where, " AND entry_date >= $%d", len(args))
	}
	if f.To != nil {
		args = append(args, *f.To)
		fmt.Fprintf(&where, " AND entry_date <= $%d", len(args))
	}
	args = append(args, f.Limit, f.Offset)

	query := fmt.Sprintf(`
	SELECT %s FROM entries
	WHERE %s
	ORDER BY entry_date DESC, created_at DESC
	LIMIT $%d OFFSET $%d`, entryColumns, where.String(), len(args)-1, len(args))

	rows, err := s.db.Query(ctx, query, args...)
	return collectEntries(op, rows, err)
}

// SearchEntries matches title or text of the user's own entries.
func (s *EntryStorage) SearchEntries(ctx context.Context, userID int, q string, limit int) ([]models.Entry, error) {
	op := "internal/storage/entry.go SearchEntries"

	query := `
	SELECT ` + entryColumns + ` FROM entries
	WHERE user_id = $1 AND (title ILIKE '%' || $2 || '%' OR plain_text ILIKE '%' || $2 || '%')
	ORDER BY entry_date DESC, created_at DESC
	LIMIT $3`

	rows, err := s.db.Query(ctx, query, userID, escapeLike(q), limit)
	return collectEntries(op, rows, err)
}

func (s *EntryStorage) UpdateEntry(ctx context.Context, e *models.Entry) error {
	op := "internal/storage/entry.go UpdateEntry"

	query := `
	UPDATE entries SET
	title = $2, content = $3, plain_text = $4, word_count = $5, mood = $6, image_url = $7,
	entry_date = $8, updated_at = now()
	WHERE id = $1
	RETURNING ` + entryColumns

	err := scanEntry(s.db.QueryRow(ctx, query,
		e.ID,
		e.Title,
		e.Content,
		e.PlainText,
		e.WordCount,
		e.Mood,
		e.ImageURL,
		e.EntryDate,
	), e)
	if err != nil {
		return mapErr(op, err)
	}
	return nil
}

func (s *EntryStorage) DeleteEntry(ctx context.Context, id int) error {
	op := "internal/storage/entry.go DeleteEntry"

	tag, err := s.db.Exec(ctx, `DELETE FROM entries WHERE id = $1`, id)
	return expectOne(op, tag, err)
}

// CountDatedBetween counts entries whose entry date falls in [start, end).
func (s *EntryStorage) CountDatedBetween(ctx context.Context, userID int, start, end time.Time) (int, error) {
	op := "internal/storage/entry.go CountDatedBetween"

	var n int
	query := `SELECT count(*) FROM entries WHERE user_id = $1 AND entry_date >= $2 AND entry_date < $3`
	if err := s.db.QueryRow(ctx, query, userID, start, end).Scan(&n); err != nil {
		return 0, mapErr(op, err)
	}
	return n, nil
}

func (s *EntryStorage) EntryDays(ctx context.Context, userID int) ([]models.EntryDay, error) {
	op := "internal/storage/entry.go EntryDays"

	rows, err := s.db.Query(ctx, `SELECT entry_date, mood, word_count FROM entries WHERE user_id = $1`, userID)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	days := []models.EntryDay{}
	for rows.Next() {
		var d models.EntryDay
		if err := rows.Scan(&d.Date, &d.Mood, &d.WordCount); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		days = append(days, d)
	}
	return days, mapErr(op, rows.Err())
}
