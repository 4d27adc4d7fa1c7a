package usecases

import "peels/internal/models"

// CanRead reports whether viewer may read entries of journal j. Owners always
// can; accepted friends can when the journal is not private.
func CanRead(viewer int, j models.Journal, friends bool) bool {
	if viewer == j.UserID {
		return true
	}
	return friends && !j.IsPrivate
}
