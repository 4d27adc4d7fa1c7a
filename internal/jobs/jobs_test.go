package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"peels/internal/models"
)

type fakeStores struct {
	cutoff    time.Time
	pruned    int64
	refreshed map[string]time.Time
	hhmm      string
	day       time.Time
	due       []models.Journal
	err       error
}

func (f *fakeStores) PruneXPLogs(_ context.Context, cutoff time.Time) (int64, error) {
	f.cutoff = cutoff
	return f.pruned, f.err
}

func (f *fakeStores) RefreshLeaderboard(_ context.Context, period string, since time.Time) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.refreshed[period] = since
	return 3, nil
}

func (f *fakeStores) ClaimDueReminders(_ context.Context, hhmm string, day time.Time) ([]models.Journal, error) {
	f.hhmm, f.day = hhmm, day
	return f.due, f.err
}

type notes struct{ users []int }

func (n *notes) NotifyQuietly(_ context.Context, userID int, _, _ string) {
	n.users = append(n.users, userID)
}

var now = time.Date(2024, 5, 8, 21, 30, 15, 0, time.UTC)

func newJobs(f *fakeStores, n *notes) *Jobs {
	j := New(f, f, f, n, 60*24*time.Hour, zap.NewNop())
	j.now = func() time.Time { return now }
	return j
}

func TestPruneXPUsesRetention(t *testing.T) {
	f := &fakeStores{pruned: 4}
	n, err := newJobs(f, &notes{}).PruneXP(context.Background())

	require.NoError(t, err)
	assert.EqualValues(t, 4, n)
	assert.Equal(t, time.Date(2024, 3, 9, 21, 30, 15, 0, time.UTC), f.cutoff)
}

func TestPruneXPError(t *testing.T) {
	f := &fakeStores{err: errors.New("db")}
	_, err := newJobs(f, &notes{}).PruneXP(context.Background())
	assert.Error(t, err)
}

func TestRefreshLeaderboards(t *testing.T) {
	f := &fakeStores{refreshed: map[string]time.Time{}}
	require.NoError(t, newJobs(f, &notes{}).RefreshLeaderboards(context.Background()))

	assert.Equal(t, time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC), f.refreshed[models.BoardWeekly])
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), f.refreshed[models.BoardMonthly])
	assert.True(t, f.refreshed[models.BoardAllTime].IsZero())
}

func TestSendReminders(t *testing.T) {
	f := &fakeStores{due: []models.Journal{{UserID: 3, Title: "Dreams"}, {UserID: 8, Title: "Work"}}}
	n := &notes{}

	count, err := newJobs(f, n).SendReminders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, "21:30", f.hhmm)
	assert.Equal(t, time.Date(2024, 5, 8, 0, 0, 0, 0, time.UTC), f.day)
	assert.Equal(t, []int{3, 8}, n.users)
}

func TestNewSchedulerRejectsBadSpec(t *testing.T) {
	j := newJobs(&fakeStores{}, &notes{})

	_, err := NewScheduler(j, Specs{Prune: "nope", Leaderboard: "* * * * *", Reminder: "* * * * *"}, zap.NewNop())
	assert.Error(t, err)

	s, err := NewScheduler(j, Specs{Prune: "0 3 * * *", Leaderboard: "*/15 * * * *", Reminder: "* * * * *"}, zap.NewNop())
	require.NoError(t, err)
	s.Start()
	s.Stop(context.Background())
}
