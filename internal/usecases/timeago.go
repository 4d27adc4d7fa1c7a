package usecases

import (
	"fmt"
	"time"
)

// TimeAgo renders t relative to now the way the notification list shows it.
func TimeAgo(t, now time.Time) string {
	d := now.Sub(t)
	if d < time.Minute {
		return "just now"
	}

	switch {
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute")
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour")
	}

	days := int(d / (24 * time.Hour))
	switch {
	case days < 7:
		return plural(days, "day")
	case days < 35:
		return plural(days/7, "week")
	}

	months := monthsBetween(t, now)
	if months < 1 {
		months = 1
	}
	if months < 12 {
		return plural(months, "month")
	}
	return plural(months/12, "year")
}

func monthsBetween(from, to time.Time) int {
	months := (to.Year()-from.Year())*12 + int(to.Month()) - int(from.Month())
	if to.Day() < from.Day() {
		months--
	}
	return months
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
