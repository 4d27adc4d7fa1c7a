package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"peels/internal/models"
)

type FriendStorage struct {
	db DB
}

func NewFriendStorage(db DB) *FriendStorage {
	return &FriendStorage{db: db}
}

// RequestFriend records a request from userID to friendID. When friendID has
// already asked userID, that pending request is accepted instead.
func (s *FriendStorage) RequestFriend(ctx context.Context, userID, friendID int) (models.Friend, error) {
	op := "internal/storage/friend.go RequestFriend"

	var f models.Friend
	err := inTx(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
		UPDATE friends SET status = 'accepted'
		WHERE user_id = $1 AND friend_id = $2 AND status = 'pending'
		RETURNING id, user_id, friend_id, status, created_at`,
			friendID, userID,
		).Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		var exists bool
		err = tx.QueryRow(ctx, `
		SELECT EXISTS (SELECT 1 FROM friends
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1))`,
			userID, friendID,
		).Scan(&exists)
		if err != nil {
			return err
		}
		if exists {
			return ErrConflict
		}

		return tx.QueryRow(ctx, `
		INSERT INTO friends (user_id, friend_id, status)
		VALUES ($1, $2, 'pending')
		RETURNING id, user_id, friend_id, status, created_at`,
			userID, friendID,
		).Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt)
	})
	if err != nil {
		return models.Friend{}, mapErr(op, err)
	}
	return f, nil
}

// AcceptFriend accepts request id if it is pending and addressed to userID.
func (s *FriendStorage) AcceptFriend(ctx context.Context, id, userID int) (models.Friend, error) {
	op := "internal/storage/friend.go AcceptFriend"

	var f models.Friend
	err := s.db.QueryRow(ctx, `
	UPDATE friends SET status = 'accepted'
	WHERE id = $1 AND friend_id = $2 AND status = 'pending'
	RETURNING id, user_id, friend_id, status, created_at`,
		id, userID,
	).Scan(&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt)
	if err != nil {
		return models.Friend{}, mapErr(op, err)
	}
	return f, nil
}

// RemoveFriend deletes any relation between the two users, pending or not.
func (s *FriendStorage) RemoveFriend(ctx context.Context, userID, otherID int) error {
	op := "internal/storage/friend.go RemoveFriend"

	tag, err := s.db.Exec(ctx, `
	DELETE FROM friends
	WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`,
		userID, otherID)
	return expectOne(op, tag, err)
}

// ListFriends returns accepted relations with the other side's profile.
func (s *FriendStorage) ListFriends(ctx context.Context, userID int) ([]models.Friend, error) {
	op := "internal/storage/friend.go ListFriends"

	rows, err := s.db.Query(ctx, `
	SELECT f.id, f.user_id, f.friend_id, f.status, f.created_at,
	       u.id, u.username, u.bio, u.avatar_url, u.experience, u.level
	FROM friends f
	JOIN users u ON u.id = CASE WHEN f.user_id = $1 THEN f.friend_id ELSE f.user_id END
	WHERE (f.user_id = $1 OR f.friend_id = $1) AND f.status = 'accepted'
	ORDER BY u.username`, userID)
	return collectFriends(op, rows, err)
}

// ListIncoming returns pending requests addressed to userID.
func (s *FriendStorage) ListIncoming(ctx context.Context, userID int) ([]models.Friend, error) {
	op := "internal/storage/friend.go ListIncoming"

	rows, err := s.db.Query(ctx, `
	SELECT f.id, f.user_id, f.friend_id, f.status, f.created_at,
	       u.id, u.username, u.bio, u.avatar_url, u.experience, u.level
	FROM friends f
	JOIN users u ON u.id = f.user_id
	WHERE f.friend_id = $1 AND f.status = 'pending'
	ORDER BY f.created_at DESC`, userID)
	return collectFriends(op, rows, err)
}

func (s *FriendStorage) AreFriends(ctx context.Context, a, b int) (bool, error) {
	op := "internal/storage/friend.go AreFriends"

	var ok bool
	err := s.db.QueryRow(ctx, `
	SELECT EXISTS (SELECT 1 FROM friends
	WHERE ((user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1))
	AND status = 'accepted')`, a, b).Scan(&ok)
	if err != nil {
		return false, mapErr(op, err)
	}
	return ok, nil
}

// FriendIDs lists the ids of userID's accepted friends.
func (s *FriendStorage) FriendIDs(ctx context.Context, userID int) ([]int, error) {
	op := "internal/storage/friend.go FriendIDs"

	rows, err := s.db.Query(ctx, `
	SELECT CASE WHEN user_id = $1 THEN friend_id ELSE user_id END
	FROM friends
	WHERE (user_id = $1 OR friend_id = $1) AND status = 'accepted'`, userID)
	if err != nil {
		return nil, mapErr(op, err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		return nil, mapErr(op, err)
	}
	return ids, nil
}

func collectFriends(op string, rows pgx.Rows, err error) ([]models.Friend, error) {
	if err != nil {
		return nil, mapErr(op, err)
	}
	defer rows.Close()

	friends := []models.Friend{}
	for rows.Next() {
		var f models.Friend
		u := &models.User{}
		err := rows.Scan(
			&f.ID, &f.UserID, &f.FriendID, &f.Status, &f.CreatedAt,
			&u.ID, &u.Username, &u.Bio, &u.AvatarURL, &u.Experience, &u.Level,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		f.Other = u
		friends = append(friends, f)
	}
	return friends, mapErr(op, rows.Err())
}
