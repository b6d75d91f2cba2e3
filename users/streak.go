package users

import "time"

// DateKey formats a time as the calendar date string streak bookkeeping uses.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// AdvanceStreak applies one activity touch to the user's streak fields using
// calendar-date equality, not elapsed hours. Same day: no change. Yesterday:
// the streak continues. Anything else (a gap of two or more days, or a user
// that has never been stamped): the streak restarts at one.
//
// Returns false for the same-day no-op so callers can skip the write. In all
// other cases the streak fields, last-active time, and session counter are
// updated in place; persisting the result atomically is the store's job.
func AdvanceStreak(u *User, now time.Time) bool {
	today := DateKey(now)
	if u.LastStreakDate == today {
		return false
	}

	yesterday := DateKey(now.AddDate(0, 0, -1))
	if u.LastStreakDate == yesterday {
		u.DailyStreak++
	} else {
		u.DailyStreak = 1
	}

	u.LastStreakDate = today
	u.LastActiveAt = now
	u.TotalSessions++
	return true
}
