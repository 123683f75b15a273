package shift

import (
	"math"
)

// EntryMinutes returns the worked minutes of one clock pair. An open pair
// (nil ClockOut) contributes zero.
func EntryMinutes(e TimeEntry) float64 {
	if e.ClockOut == nil {
		return 0
	}
	minutes := e.ClockOut.Sub(e.ClockIn).Minutes()
	if minutes < 0 {
		return 0
	}
	return minutes
}

// TotalHours sums the worked minutes over a sequence of clock pairs and
// converts to hours, rounded to two decimals.
func TotalHours(entries []TimeEntry) float64 {
	var minutes float64
	for _, e := range entries {
		minutes += EntryMinutes(e)
	}
	return math.Round(minutes/60.0*100) / 100
}
