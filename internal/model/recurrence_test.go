package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodoRecurrenceNext(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) // a Monday
	end := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		rec    TodoRecurrence
		after  time.Time
		want   time.Time
		wantOK bool
	}{
		{
			name:   "daily",
			rec:    TodoRecurrence{Type: RecurrenceDaily, Interval: 1},
			after:  start,
			want:   start.AddDate(0, 0, 1),
			wantOK: true,
		},
		{
			name:   "zero interval behaves like one",
			rec:    TodoRecurrence{Type: RecurrenceDaily},
			after:  start,
			want:   start.AddDate(0, 0, 1),
			wantOK: true,
		},
		{
			name:   "every second week",
			rec:    TodoRecurrence{Type: RecurrenceWeekly, Interval: 2},
			after:  start,
			want:   start.AddDate(0, 0, 14),
			wantOK: true,
		},
		{
			name:   "weekly on chosen days",
			rec:    TodoRecurrence{Type: RecurrenceWeekly, Interval: 1, DaysOfWeek: []string{"monday", "Wednesday"}},
			after:  start,
			want:   start.AddDate(0, 0, 2),
			wantOK: true,
		},
		{
			name:   "custom uses days of week",
			rec:    TodoRecurrence{Type: RecurrenceCustom, DaysOfWeek: []string{"friday"}},
			after:  start,
			want:   start.AddDate(0, 0, 4),
			wantOK: true,
		},
		{
			name:   "monthly",
			rec:    TodoRecurrence{Type: RecurrenceMonthly, Interval: 1},
			after:  start,
			want:   start.AddDate(0, 1, 0),
			wantOK: true,
		},
		{
			name:   "yearly",
			rec:    TodoRecurrence{Type: RecurrenceYearly, Interval: 1},
			after:  start,
			want:   start.AddDate(1, 0, 0),
			wantOK: true,
		},
		{
			name:   "series ended",
			rec:    TodoRecurrence{Type: RecurrenceDaily, Interval: 1, EndDate: &end},
			after:  start.AddDate(0, 0, 1),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ok, err := tt.rec.Next(start, tt.after)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.True(t, tt.want.Equal(next), "want %s, got %s", tt.want, next)
			}
		})
	}
}

func TestTodoRecurrenceErrors(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	_, _, err := TodoRecurrence{Type: RecurrenceCustom}.Next(start, start)
	assert.Error(t, err)

	_, _, err = TodoRecurrence{Type: "hourly"}.Next(start, start)
	assert.Error(t, err)

	_, _, err = TodoRecurrence{Type: RecurrenceWeekly, DaysOfWeek: []string{"funday"}}.Next(start, start)
	assert.Error(t, err)
}
