package handlers

import (
	"context"
	"fmt"

	"peels/internal/models"
	"peels/internal/usecases"
)

// access resolves journals and entries on behalf of a viewer.
type access struct {
	journals JournalStore
	entries  EntryStore
	friends  FriendStore
}

func (a access) readableJournal(ctx context.Context, viewer, id int) (models.Journal, error) {
	j, err := a.journals.GetJournal(ctx, id)
	if err != nil {
		return models.Journal{}, err
	}
	if j.UserID == viewer {
		return j, nil
	}

	friends := false
	if !j.IsPrivate {
		if friends, err = a.friends.AreFriends(ctx, viewer, j.UserID); err != nil {
			return models.Journal{}, err
		}
	}
	if !usecases.CanRead(viewer, j, friends) {
		return models.Journal{}, fmt.Errorf("journal %d: %w", id, usecases.ErrForbidden)
	}
	return j, nil
}

func (a access) ownJournal(ctx context.Context, viewer, id int) (models.Journal, error) {
	j, err := a.journals.GetJournal(ctx, id)
	if err != nil {
		return models.Journal{}, err
	}
	if j.UserID != viewer {
		return models.Journal{}, fmt.Errorf("journal %d: %w", id, usecases.ErrForbidden)
	}
	return j, nil
}

func (a access) readableEntry(ctx context.Context, viewer, id int) (models.Entry, error) {
	e, err := a.entries.GetEntry(ctx, id)
	if err != nil {
		return models.Entry{}, err
	}
	if e.UserID == viewer {
		return e, nil
	}
	if _, err := a.readableJournal(ctx, viewer, e.JournalID); err != nil {
		return models.Entry{}, err
	}
	return e, nil
}

func (a access) ownEntry(ctx context.Context, viewer, id int) (models.Entry, error) {
	e, err := a.entries.GetEntry(ctx, id)
	if err != nil {
		return models.Entry{}, err
	}
	if e.UserID != viewer {
		return models.Entry{}, fmt.Errorf("entry %d: %w", id, usecases.ErrForbidden)
	}
	return e, nil
}
