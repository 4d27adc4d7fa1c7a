package handlers

import (
	"context"

	"peels/internal/models"
)

// The interfaces below are the storage methods each handler needs. The
// storage package implements all of them.

type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id int) (models.User, error)
	GetUserByLogin(ctx context.Context, login string) (models.User, error)
	UpdateProfile(ctx context.Context, id int, in models.ProfileInput) (models.User, error)
	SearchUsers(ctx context.Context, prefix string, limit int) ([]models.User, error)
	SetActiveItem(ctx context.Context, userID int, item models.MarketplaceItem) error
}

type JournalStore interface {
	CreateJournal(ctx context.Context, j *models.Journal) error
	GetJournal(ctx context.Context, id int) (models.Journal, error)
	ListJournals(ctx context.Context, userID int) ([]models.Journal, error)
	UpdateJournal(ctx context.Context, j *models.Journal) error
	DeleteJournal(ctx context.Context, id int) error
	CountJournals(ctx context.Context, userID int) (int, error)
}

type EntryStore interface {
	CreateEntry(ctx context.Context, e *models.Entry) error
	GetEntry(ctx context.Context, id int) (models.Entry, error)
	ListEntries(ctx context.Context, journalID int, f models.EntryFilter) ([]models.Entry, error)
	SearchEntries(ctx context.Context, userID int, q string, limit int) ([]models.Entry, error)
	UpdateEntry(ctx context.Context, e *models.Entry) error
	DeleteEntry(ctx context.Context, id int) error
	EntryDays(ctx context.Context, userID int) ([]models.EntryDay, error)
}

type TemplateStore interface {
	CreateTemplate(ctx context.Context, t *models.Template) error
	GetTemplate(ctx context.Context, id int) (models.Template, error)
	ListTemplates(ctx context.Context, userID int) ([]models.Template, error)
	UpdateTemplate(ctx context.Context, t *models.Template) error
	DeleteTemplate(ctx context.Context, id int) error
}

type FriendStore interface {
	RequestFriend(ctx context.Context, userID, friendID int) (models.Friend, error)
	AcceptFriend(ctx context.Context, id, userID int) (models.Friend, error)
	RemoveFriend(ctx context.Context, userID, otherID int) error
	ListFriends(ctx context.Context, userID int) ([]models.Friend, error)
	ListIncoming(ctx context.Context, userID int) ([]models.Friend, error)
	AreFriends(ctx context.Context, a, b int) (bool, error)
	FriendIDs(ctx context.Context, userID int) ([]int, error)
}

type BookmarkStore interface {
	AddBookmark(ctx context.Context, b *models.Bookmark) error
	RemoveBookmark(ctx context.Context, userID, entryID int) error
	ListBookmarks(ctx context.Context, userID int) ([]models.Bookmark, error)
}

type NotificationStore interface {
	ListNotifications(ctx context.Context, userID, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID int) (int, error)
	MarkRead(ctx context.Context, id, userID int) error
	MarkAllRead(ctx context.Context, userID int) (int64, error)
	DeleteNotification(ctx context.Context, id, userID int) error
}

type MarketStore interface {
	ListItems(ctx context.Context, itemType string) ([]models.MarketplaceItem, error)
	GetItem(ctx context.Context, id int) (models.MarketplaceItem, error)
	OwnsItem(ctx context.Context, userID, itemID int) (bool, error)
	Purchase(ctx context.Context, userID, itemID int) (models.Purchase, error)
	ListUserItems(ctx context.Context, userID int) ([]models.UserItem, error)
	ListCharacters(ctx context.Context, userID int) ([]models.Character, error)
	RenameCharacter(ctx context.Context, id, userID int, nickname string) (models.Character, error)
}

type LedgerStore interface {
	ListXPLogs(ctx context.Context, userID, limit, offset int) ([]models.XPLog, error)
	ListBananas(ctx context.Context, userID, limit, offset int) ([]models.Banana, error)
}

type GoalStore interface {
	CreateGoal(ctx context.Context, g *models.Goal) error
	GetGoal(ctx context.Context, id int) (models.Goal, error)
	ListGoals(ctx context.Context, userID int, openOnly bool) ([]models.Goal, error)
	UpdateGoal(ctx context.Context, g *models.Goal) error
	DeleteGoal(ctx context.Context, id int) error
}

type BoardStore interface {
	TopLeaderboard(ctx context.Context, period string, limit int, only []int) ([]models.Leaderboard, error)
	UserLeaderboard(ctx context.Context, period string, userID int) (models.Leaderboard, error)
}
