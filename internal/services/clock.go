package services

import "time"

// Clock returns the current time. Services take one so tests can pin dates.
type Clock func() time.Time

func systemClock() time.Time { return time.Now().UTC() }

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// lastNDays returns [today-(n-1), tomorrow) for the UTC day containing t
func lastNDays(t time.Time, n int) (time.Time, time.Time) {
	today := startOfDay(t)
	return today.AddDate(0, 0, -(n - 1)), today.AddDate(0, 0, 1)
}
