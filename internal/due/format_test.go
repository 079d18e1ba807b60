package due

import (
	"fmt"
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestFormatTimeLeft(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		diff time.Duration
		want string
	}{
		{"now", 0, "1 minute left"},
		{"seconds ahead", 20 * time.Second, "1 minute left"},
		{"seconds behind", -20 * time.Second, "Overdue by 1 minute"},
		{"one minute", time.Minute, "1 minute left"},
		{"half an hour", 30 * time.Minute, "30 minutes left"},
		{"rounds minutes up", 90 * time.Second, "2 minutes left"},
		{"just under an hour", 59*time.Minute + 40*time.Second, "60 minutes left"},
		{"one hour", time.Hour, "1 hour left (today)"},
		{"five hours", 5 * time.Hour, "5 hours left (today)"},
		{"ninety minutes overdue", -90 * time.Minute, "Overdue by 2 hours"},
		{"hours overdue", -3 * time.Hour, "Overdue by 3 hours"},
		{"one day", Day, "1 day left"},
		{"three days", 3 * Day, "3 days left"},
		{"rounds days", 2*Day + 13*time.Hour, "3 days left"},
		{"days overdue", -10 * Day, "Overdue by 10 days"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(FormatTimeLeft(now.Add(tt.diff), now), tt.want)
		})
	}
}

func TestFormatTimeLeft_Monotonic(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	prev := 0
	for m := 1; m < 60; m++ {
		label := FormatTimeLeft(now.Add(time.Duration(m)*time.Minute), now)
		var n int
		_, err := fmt.Sscan(label, &n)
		is.NoErr(err)
		is.True(n >= prev) // minute counts never shrink as the gap grows
		prev = n
	}
}

func TestIsOverdue(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	is.True(IsOverdue(false, now.Add(-time.Second), now))
	is.True(!IsOverdue(true, now.Add(-time.Second), now)) // completed
	is.True(!IsOverdue(false, now, now))                  // strictly before
	is.True(!IsOverdue(false, now.Add(time.Hour), now))   // future
}

func TestFormatDMY(t *testing.T) {
	is := is.New(t)
	is.Equal(FormatDMY(time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)), "07-03-2024")
}
