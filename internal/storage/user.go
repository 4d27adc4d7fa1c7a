package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"peels/internal/models"
)

const userColumns = `id, username, email, password_hash, bio, avatar_url, bananas, experience, level,
	active_character_id, active_style_id, active_badge_id, created_at, updated_at`

type UserStorage struct {
	db DB
}

func NewUserStorage(db DB) *UserStorage {
	return &UserStorage{db: db}
}

func scanUser(row pgx.Row, u *models.User) error {
	return row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.Bio,
		&u.AvatarURL,
		&u.Bananas,
		&u.Experience,
		&u.Level,
		&u.ActiveCharacterID,
		&u.ActiveStyleID,
		&u.ActiveBadgeID,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
}

func (s *UserStorage) CreateUser(ctx context.Context, u *models.User) error {
	op := "internal/storage/user.go CreateUser"

	query := `
	INSERT INTO users (username, email, password_hash)
	VALUES ($1, $2, $3)
	RETURNING ` + userColumns

	if err := scanUser(s.db.QueryRow(ctx, query, u.Username, u.Email, u.PasswordHash), u); err != nil {
		return mapErr(op, err)
	}
	return nil
}

func (s *UserStorage) GetUser(ctx context.Context, id int) (models.User, error) {
	op := "internal/storage/user.go GetUser"

	var u models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := scanUser(s.db.QueryRow(ctx, query, id), &u); err != nil {
		return models.User{}, mapErr(op, err)
	}
	return u, nil
}

// GetUserByLogin finds a user by username or email, case-insensitively.
func (s *UserStorage) GetUserByLogin(ctx context.Context, login string) (models.User, error) {
	op := "internal/storage/user.go GetUserByLogin"

	var u models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(username) = lower($1) OR lower(email) = lower($1)`
	if err := scanUser(s.db.QueryRow(ctx, query, login), &u); err != nil {
		return models.User{}, mapErr(op, err)
	}
	return u, nil
}

func (s *UserStorage) UpdateProfile(ctx context.Context, id int, in models.ProfileInput) (models.User, error) {
	op := "internal/storage/user.go UpdateProfile"

	query := `
	UPDATE users SET bio = $2, avatar_url = $3, updated_at = now()
	WHERE id = $1
	RETURNING ` + userColumns

	var u models.User
	if err := scanUser(s.db.QueryRow(ctx, query, id, in.Bio, in.AvatarURL), &u); err != nil {
		return models.User{}, mapErr(op, err)
	}
	return u, nil
}

func (s *UserStorage) SearchUsers(ctx context.Context, prefix string, limit int) ([]models.User, error) {
	op := "internal/storage/user.go SearchUsers"

	query := `SELECT ` + userColumns + ` FROM users
	WHERE lower(username) LIKE lower($1) || '%'
	ORDER BY username
	LIMIT $2`

	rows, err := s.db.Query(ctx, query, escapeLike(prefix), limit)
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		if err := scanUser(rows, &u); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		users = append(users, u.Public())
	}
	return users, mapErr(op, rows.Err())
}

// SetActiveItem equips an owned item in the slot matching its type.
func (s *UserStorage) SetActiveItem(ctx context.Context, userID int, item models.MarketplaceItem) error {
	op := "internal/storage/user.go SetActiveItem"

	var column string
	switch item.Type {
	case models.ItemCharacter:
		column = "active_character_id"
	case models.ItemStyle:
		column = "active_style_id"
	case models.ItemBadge:
		column = "active_badge_id"
	default:
		return fmt.Errorf("%s: unknown item type %q", op, item.Type)
	}

	query := `UPDATE users SET ` + column + ` = $2, updated_at = now() WHERE id = $1`
	tag, err := s.db.Exec(ctx, query, userID, item.ID)
	return expectOne(op, tag, err)
}

func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r == '%' || r == '_' || r == '\\' {
			out = append(out, '\\')
		}
		out = append(out, r)
	}
	return string(out)
}
