package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"peels/internal/models"
)

const journalColumns = `j.id, j.user_id, j.title, j.description, j.theme, j.is_private,
	j.reminder_enabled, j.reminder_time, j.created_at, j.updated_at`

type JournalStorage struct {
	db DB
}

func NewJournalStorage(db DB) *JournalStorage {
	return &JournalStorage{db: db}
}

func scanJournal(row pgx.Row, j *models.Journal, extra ...any) error {
	dest := []any{
		&j.ID,
		&j.UserID,
		&j.Title,
		&j.Description,
		&j.Theme,
		&j.IsPrivate,
		&j.ReminderEnabled,
		&j.ReminderTime,
		&j.CreatedAt,
		&j.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

func (s *JournalStorage) CreateJournal(ctx context.Context, j *models.Journal) error {
	op := "internal/storage/journal.go CreateJournal"

	query := `
	INSERT INTO journals AS j
	(user_id, title, description, theme, is_private, reminder_enabled, reminder_time)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING ` + journalColumns

	err := scanJournal(s.db.QueryRow(ctx, query,
		j.UserID,
		j.Title,
		j.Description,
		j.Theme,
		j.IsPrivate,
		j.ReminderEnabled,
		j.ReminderTime,
	), j)
	if err != nil {
		return mapErr(op, err)
	}
	return nil
}

func (s *JournalStorage) GetJournal(ctx context.Context, id int) (models.Journal, error) {
	op := "internal/storage/journal.go GetJournal"

	query := `
	SELECT ` + journalColumns + `, (SELECT count(*) FROM entries e WHERE e.journal_id = j.id)
	FROM journals j
	WHERE j.id = $1`

	var j models.Journal
	if err := scanJournal(s.db.QueryRow(ctx, query, id), &j, &j.EntryCount); err != nil {
		return models.Journal{}, mapErr(op, err)
	}
	return j, nil
}

func (s *JournalStorage) ListJournals(ctx context.Context, userID int) ([]models.Journal, error) {
	op := "internal/storage/journal.go ListJournals"

	query := `
	SELECT ` + journalColumns + `, count(e.id)
	FROM journals j
	LEFT JOIN entries e ON e.journal_id = j.id
	WHERE j.user_id = $1
	GROUP BY j.id
	ORDER BY j.updated_at DESC`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	journals := []models.Journal{}
	for rows.Next() {
		var j models.Journal
		if err := scanJournal(rows, &j, &j.EntryCount); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		journals = append(journals, j)
	}
	return journals, mapErr(op, rows.Err())
}

func (s *JournalStorage) UpdateJournal(ctx context.Context, j *models.Journal) error {
	op := "internal/storage/journal.go UpdateJournal"

	query := `
	UPDATE journals AS j SET
	title = $2, description = $3, theme = $4, is_private = $5,
	reminder_enabled = $6, reminder_time = $7, updated_at = now()
	WHERE j.id = $1
	RETURNING ` + journalColumns

	err := scanJournal(s.db.QueryRow(ctx, query,
		j.ID,
		j.Title,
		j.Description,
		j.Theme,
		j.IsPrivate,
		j.ReminderEnabled,
		j.ReminderTime,
	), j)
	if err != nil {
		return mapErr(op, err)
	}
	return nil
}

// DeleteJournal removes the journal; entries and their bookmarks cascade.
func (s *JournalStorage) DeleteJournal(ctx context.Context, id int) error {
	op := "internal/storage/journal.go DeleteJournal"

	tag, err := s.db.Exec(ctx, `DELETE FROM journals WHERE id = $1`, id)
	return expectOne(op, tag, err)
}

func (s *JournalStorage) CountJournals(ctx context.Context, userID int) (int, error) {
	op := "internal/storage/journal.go CountJournals"

	var n int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM journals WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, mapErr(op, err)
	}
	return n, nil
}

// ClaimDueReminders marks and returns journals whose reminder time is hhmm,
// that were not reminded on day yet and have no entry written on day.
func (s *JournalStorage) ClaimDueReminders(ctx context.Context, hhmm string, day time.Time) ([]models.Journal, error) {
	op := "internal/storage/journal.go ClaimDueReminders"

	query := `
	UPDATE journals AS j SET last_reminded_on = $2
	WHERE j.reminder_enabled
	AND j.reminder_time = $1
	AND (j.last_reminded_on IS NULL OR j.last_reminded_on < $2)
	AND NOT EXISTS (SELECT 1 FROM entries e WHERE e.journal_id = j.id AND e.entry_date = $2)
	RETURNING ` + journalColumns

	rows, err := s.db.Query(ctx, query, hhmm, day)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	journals := []models.Journal{}
	for rows.Next() {
		var j models.Journal
		if err := scanJournal(rows, &j); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		journals = append(journals, j)
	}
	return journals, mapErr(op, rows.Err())
}
