package analyze

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	t.Parallel()
	cases := []struct {
		date, clock string
		want        time.Time
		ok          bool
	}{
		{"01.01.24", "09:05", time.Date(2024, 1, 1, 9, 5, 0, 0, time.UTC), true},
		{"1/2/24", "23:59", time.Date(2024, 2, 1, 23, 59, 0, 0, time.UTC), true},
		{"15-08-2023", "00:00", time.Date(2023, 8, 15, 0, 0, 0, 0, time.UTC), true},
		{"15.08.49", "10:00", time.Date(2049, 8, 15, 10, 0, 0, 0, time.UTC), true},
		{"15.08.50", "10:00", time.Date(1950, 8, 15, 10, 0, 0, 0, time.UTC), true},
		{"31.02.24", "10:00", time.Time{}, false},
		{"01.13.24", "10:00", time.Time{}, false},
		{"01.01.024", "10:00", time.Time{}, false},
		{"01.01", "10:00", time.Time{}, false},
		{"aa.01.24", "10:00", time.Time{}, false},
		{"01.01.24", "24:00", time.Time{}, false},
		{"01.01.24", "0900", time.Time{}, false},
	}
	for _, c := range cases {
		got, ok := ParseTimestamp(c.date, c.clock)
		if ok != c.ok || !got.Equal(c.want) {
			t.Errorf("ParseTimestamp(%q, %q)=%v,%v want %v,%v", c.date, c.clock, got, ok, c.want, c.ok)
		}
	}
}

func TestTimestampOrderAgreesWithDates(t *testing.T) {
	t.Parallel()
	a, _ := ParseTimestamp("31.12.23", "23:59")
	b, _ := ParseTimestamp("01.01.24", "00:00")
	if !a.Before(b) {
		t.Fatalf("%v should be before %v", a, b)
	}
	if d := b.Sub(a); d != time.Minute {
		t.Fatalf("gap=%v", d)
	}
}
