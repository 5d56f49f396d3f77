package model

import "time"

// UserActivity records one day of learning activity for streak and
// recent-history computation. At most one row exists per user per day;
// repeated activity on the same day accumulates hours on the existing row.
type UserActivity struct {
	ID            int64
	UserID        int64
	LearningHours float64
	Score         int
	Date          time.Time // calendar day, time-of-day is ignored
	CreatedAt     time.Time
}

// DateOnly truncates a timestamp to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
