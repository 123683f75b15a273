package shift

import (
	"testing"
	"time"
)

func entry(number int, clockIn string, clockOut string) TimeEntry {
	in, err := time.Parse(time.RFC3339, clockIn)
	if err != nil {
		panic(err)
	}
	e := TimeEntry{EntryNumber: number, ClockIn: in}
	if clockOut != "" {
		out, err := time.Parse(time.RFC3339, clockOut)
		if err != nil {
			panic(err)
		}
		e.ClockOut = &out
	}
	return e
}

func TestTotalHours(t *testing.T) {
	cases := []struct {
		name    string
		entries []TimeEntry
		want    float64
	}{
		{
			name: "two closed pairs with a lunch break",
			entries: []TimeEntry{
				entry(1, "2025-06-14T09:00:00Z", "2025-06-14T12:00:00Z"),
				entry(2, "2025-06-14T13:00:00Z", "2025-06-14T17:00:00Z"),
			},
			want: 7.00,
		},
		{
			name: "open pair contributes zero",
			entries: []TimeEntry{
				entry(1, "2025-06-14T09:00:00Z", "2025-06-14T12:00:00Z"),
				entry(2, "2025-06-14T13:00:00Z", ""),
			},
			want: 3.00,
		},
		{
			name: "clock out before clock in contributes zero",
			entries: []TimeEntry{
				entry(1, "2025-06-14T12:00:00Z", "2025-06-14T09:00:00Z"),
			},
			want: 0,
		},
		{
			name: "partial hours round to two decimals",
			entries: []TimeEntry{
				entry(1, "2025-06-14T09:00:00Z", "2025-06-14T09:50:00Z"),
			},
			want: 0.83,
		},
		{
			name:    "no entries",
			entries: nil,
			want:    0,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := TotalHours(c.entries); got != c.want {
				t.Errorf("TotalHours() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestEntryMinutes(t *testing.T) {
	closed := entry(1, "2025-06-14T09:00:00Z", "2025-06-14T10:30:00Z")
	if got := EntryMinutes(closed); got != 90 {
		t.Errorf("EntryMinutes(closed) = %v, want 90", got)
	}

	open := entry(1, "2025-06-14T09:00:00Z", "")
	if got := EntryMinutes(open); got != 0 {
		t.Errorf("EntryMinutes(open) = %v, want 0", got)
	}
}
