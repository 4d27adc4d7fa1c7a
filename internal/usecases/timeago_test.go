package usecases

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeAgo(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		then time.Time
		want string
	}{
		{now.Add(10 * time.Second), "just now"},
		{now.Add(-30 * time.Second), "just now"},
		{now.Add(-1 * time.Minute), "1 minute ago"},
		{now.Add(-45 * time.Minute), "45 minutes ago"},
		{now.Add(-1 * time.Hour), "1 hour ago"},
		{now.Add(-23 * time.Hour), "23 hours ago"},
		{now.AddDate(0, 0, -1), "1 day ago"},
		{now.AddDate(0, 0, -6), "6 days ago"},
		{now.AddDate(0, 0, -7), "1 week ago"},
		{now.AddDate(0, 0, -20), "2 weeks ago"},
		{now.AddDate(0, -2, 0), "2 months ago"},
		{now.AddDate(0, -11, 0), "11 months ago"},
		{now.AddDate(-1, 0, 0), "1 year ago"},
		{now.AddDate(-3, -2, 0), "3 years ago"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, TimeAgo(c.then, now), c.then.String())
	}
}
