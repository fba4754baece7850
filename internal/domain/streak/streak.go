// Package streak holds the daily-streak continuation rules.
package streak

import "time"

// Update recomputes a user's streak for an accepted submission at time now.
// Comparison is date-only: a submission on the day after the last active date
// extends the streak, a second submission on the same day keeps it, and any
// longer gap (or clock skew backwards) resets it to 1. The returned
// lastActive is the full timestamp now, not the truncated date.
//
// Pure function of its inputs; callers own persistence and locking.
func Update(lastActive *time.Time, prevStreak int, now time.Time) (newStreak int, newLastActive time.Time) {
	newStreak = 1
	if lastActive != nil {
		switch daysBetween(*lastActive, now) {
		case 1:
			newStreak = prevStreak + 1
		case 0:
			newStreak = prevStreak
		}
	}
	if newStreak < 1 {
		newStreak = 1
	}
	return newStreak, now
}

func daysBetween(from, to time.Time) int {
	f := midnight(from)
	t := midnight(to.In(from.Location()))
	// Round absorbs DST transitions between the two midnights.
	return int(t.Sub(f).Round(24*time.Hour) / (24 * time.Hour))
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
