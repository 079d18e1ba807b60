package model

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestNormalizePriority(t *testing.T) {
	tests := []struct {
		raw  string
		want Priority
	}{
		{"high", PriorityHigh},
		{" LOW ", PriorityLow},
		{"Medium", PriorityMedium},
		{"urgent", PriorityMedium},
		{"", PriorityMedium},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			is := is.New(t)
			is.Equal(NormalizePriority(tt.raw), tt.want)
		})
	}
}

func TestPriority_Next(t *testing.T) {
	is := is.New(t)
	is.Equal(PriorityHigh.Next(), PriorityMedium)
	is.Equal(PriorityMedium.Next(), PriorityLow)
	is.Equal(PriorityLow.Next(), PriorityHigh)
	is.Equal(Priority("bogus").Next(), PriorityLow) // treated as medium
}

func TestTask_IsOverdue(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	past, future, junk := "2024-05-31", "2024-06-02", "not-a-date"

	is.True(Task{DueDate: &past}.IsOverdue(now))
	is.True(!Task{DueDate: &past, Completed: true}.IsOverdue(now))
	is.True(!Task{DueDate: &future}.IsOverdue(now))
	is.True(!Task{DueDate: &junk}.IsOverdue(now))
	is.True(!Task{}.IsOverdue(now))
}

func TestSession(t *testing.T) {
	is := is.New(t)
	s := NewSession("http://x", " ab12 ", " Alice ")
	is.Equal(s.Room, "AB12")
	is.Equal(s.User, "Alice")
	is.True(s.Ready())
	is.True(!NewSession("http://x", "AB12", "").Ready())
}

func TestRoom_IsMember(t *testing.T) {
	is := is.New(t)
	r := Room{Members: []string{"Alice", "bob"}}
	is.True(r.IsMember("alice"))
	is.True(r.IsMember("BOB"))
	is.True(!r.IsMember("carol"))
	is.True(!r.IsMember(""))
	is.True(!SameUser("", ""))
}
