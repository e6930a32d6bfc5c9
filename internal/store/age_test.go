package store_test

import (
	"testing"
	"time"

	"github.com/Sanmit243/KodJobs/internal/store"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

// Age must flip on the month/day boundary, not on plain year subtraction.
func TestCalculateAge(t *testing.T) {
	cases := []struct {
		dob   string
		today string
		want  int
	}{
		{"2000-06-15", "2024-06-14", 23}, // day before the birthday
		{"2000-06-15", "2024-06-15", 24}, // on the birthday
		{"2000-06-15", "2024-06-16", 24}, // day after
		{"2000-06-15", "2024-12-31", 24},
		{"2000-06-15", "2024-01-01", 23}, // earlier month
		{"2000-12-31", "2024-12-30", 23},
		{"2000-12-31", "2024-12-31", 24},
		{"2000-01-01", "2024-06-15", 24},
		{"2024-06-15", "2024-06-15", 0}, // born today
	}
	for _, c := range cases {
		if got := store.CalculateAge(c.dob, date(c.today)); got != c.want {
			t.Errorf("CalculateAge(%q, %s) = %d, want %d", c.dob, c.today, got, c.want)
		}
	}
}

func TestCalculateAge_InvalidInput(t *testing.T) {
	today := date("2024-06-15")
	for _, dob := range []string{"", "not-a-date", "15/06/2000", "2030-01-01"} {
		if got := store.CalculateAge(dob, today); got != 0 {
			t.Errorf("CalculateAge(%q) = %d, want 0", dob, got)
		}
	}
}
