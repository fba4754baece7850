package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name       string
		lastActive *time.Time
		prevStreak int
		now        time.Time
		wantStreak int
	}{
		{
			name:       "first ever accepted submission",
			lastActive: nil,
			prevStreak: 0,
			now:        date(2026, time.March, 10, 15),
			wantStreak: 1,
		},
		{
			name:       "consecutive day extends",
			lastActive: ptr(date(2026, time.March, 9, 23)),
			prevStreak: 4,
			now:        date(2026, time.March, 10, 1),
			wantStreak: 5,
		},
		{
			name:       "same day keeps streak",
			lastActive: ptr(date(2026, time.March, 10, 8)),
			prevStreak: 4,
			now:        date(2026, time.March, 10, 22),
			wantStreak: 4,
		},
		{
			name:       "two day gap resets",
			lastActive: ptr(date(2026, time.March, 7, 12)),
			prevStreak: 9,
			now:        date(2026, time.March, 10, 12),
			wantStreak: 1,
		},
		{
			name:       "clock moved backwards resets",
			lastActive: ptr(date(2026, time.March, 12, 12)),
			prevStreak: 6,
			now:        date(2026, time.March, 10, 12),
			wantStreak: 1,
		},
		{
			name:       "same day with zero streak still reports one",
			lastActive: ptr(date(2026, time.March, 10, 8)),
			prevStreak: 0,
			now:        date(2026, time.March, 10, 9),
			wantStreak: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStreak, gotLastActive := Update(tt.lastActive, tt.prevStreak, tt.now)
			assert.Equal(t, tt.wantStreak, gotStreak)
			assert.Equal(t, tt.now, gotLastActive, "last active must be the full timestamp")
		})
	}
}

func TestUpdateIgnoresTimeOfDay(t *testing.T) {
	// 11pm yesterday to 1am today is two hours apart but one calendar day.
	last := date(2026, time.June, 1, 23)
	got, _ := Update(&last, 2, date(2026, time.June, 2, 1))
	assert.Equal(t, 3, got)

	// 1am to 11pm on the same day is 22 hours apart but zero days.
	last = date(2026, time.June, 2, 1)
	got, _ = Update(&last, 3, date(2026, time.June, 2, 23))
	assert.Equal(t, 3, got)
}

func TestUpdateDoesNotMutateInput(t *testing.T) {
	last := date(2026, time.June, 1, 12)
	snapshot := last
	Update(&last, 5, date(2026, time.June, 2, 12))
	assert.Equal(t, snapshot, last)
}

func ptr(t time.Time) *time.Time { return &t }
