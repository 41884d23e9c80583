package vesting

import (
	"time"
)

// Point is the cumulative vested amount on one calendar day.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is a date-ordered sequence of points, one per calendar day.
type Series []Point

// Release is a day on which the cumulative vested amount increased.
type Release struct {
	Date       time.Time `json:"date"`
	Amount     float64   `json:"amount"`
	Cumulative float64   `json:"cumulative"`
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return Day(t), nil
}

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

func dayKey(t time.Time) int64 {
	return Day(t).Unix() / 86400
}

// Final returns the last recorded value, or 0 for an empty series.
func (s Series) Final() float64 {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Value
}

// ValueAt returns the value recorded for date. Dates before the first point
// are 0; dates after the last point carry the last value.
func (s Series) ValueAt(date time.Time) float64 {
	if len(s) == 0 {
		return 0
	}
	k := dayKey(date)
	first := dayKey(s[0].Date)
	if k < first {
		return 0
	}
	// Daily series are contiguous, so index directly when possible.
	if idx := int(k - first); idx < len(s) && dayKey(s[idx].Date) == k {
		return s[idx].Value
	}
	value := 0.0
	for _, p := range s {
		if dayKey(p.Date) > k {
			break
		}
		value = p.Value
	}
	return value
}

// Releases lists every date on which the cumulative value jumps.
func Releases(s Series) []Release {
	var out []Release
	prev := 0.0
	for _, p := range s {
		if p.Value > prev {
			out = append(out, Release{Date: p.Date, Amount: p.Value - prev, Cumulative: p.Value})
		}
		prev = p.Value
	}
	return out
}
