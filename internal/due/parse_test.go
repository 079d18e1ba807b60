package due

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestParseIn(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	tests := []struct {
		name string
		args []string
		want time.Time
	}{
		{"date only", []string{"2024-12-25", " 2024-12-25 "}, time.Date(2024, 12, 25, 0, 0, 0, 0, loc)},
		{"date and time", []string{"2024-12-25 13:45:10", "2024-12-25T13:45:10"}, time.Date(2024, 12, 25, 13, 45, 10, 0, loc)},
		{"date and minutes", []string{"2024-12-25T13:45", "2024-12-25 13:45"}, time.Date(2024, 12, 25, 13, 45, 0, 0, loc)},
		{"day month year", []string{"25/12/2024", "25/12/2024 "}, time.Date(2024, 12, 25, 0, 0, 0, 0, loc)},
		{"day before month", []string{"01/02/2024"}, time.Date(2024, 2, 1, 0, 0, 0, 0, loc)},
		{"iso utc", []string{"2024-12-25T10:00:00Z", "2024-12-25T10:00:00.000Z"}, time.Date(2024, 12, 25, 10, 0, 0, 0, time.UTC)},
		{"iso offset", []string{"2024-12-25T12:00:00+02:00"}, time.Date(2024, 12, 25, 10, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			for _, arg := range tt.args {
				got, ok := ParseIn(arg, loc)
				is.True(ok)                 // parse succeeded
				is.True(got.Equal(tt.want)) // same instant
			}
		})
	}
}

func TestParseIn_CalendarFields(t *testing.T) {
	is := is.New(t)
	got, ok := ParseIn("25/12/2024", time.Local)
	is.True(ok)
	is.Equal(got.Year(), 2024)
	is.Equal(got.Month(), time.December)
	is.Equal(got.Day(), 25)
	is.Equal(got.Hour(), 0)
	is.Equal(got.Location(), time.Local)
}

func TestParseIn_NoDueDate(t *testing.T) {
	for _, arg := range []string{
		"",
		"   ",
		"not-a-date",
		"31/02/2024",
		"25/13/2024",
		"aa/bb/cccc",
		"25/12",
		"2024-13-01",
		"2024-02-30",
		"tomorrow",
	} {
		t.Run(arg, func(t *testing.T) {
			is := is.New(t)
			_, ok := ParseIn(arg, time.UTC)
			is.True(!ok) // treated as no due date
		})
	}
}

func TestParse_UsesLocal(t *testing.T) {
	is := is.New(t)
	got, ok := Parse("2099-01-01")
	is.True(ok)
	is.True(got.Equal(time.Date(2099, 1, 1, 0, 0, 0, 0, time.Local)))
}
