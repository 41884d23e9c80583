// Package vesting computes RSU vesting schedules as daily cumulative series
// and sums several schedules into a combined series.
package vesting

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidSchedule is returned for parameters that cannot produce a schedule.
var ErrInvalidSchedule = errors.New("invalid vesting schedule")

// Variant selects how the quarterly fraction and horizon are chosen.
type Variant string

const (
	// VariantParameterized vests 1/(duration*4) per quarter up to 2030-12-31.
	VariantParameterized Variant = "parameterized"
	// VariantQuarterly16 vests a fixed 1/16 per quarter up to 2032-12-31.
	VariantQuarterly16 Variant = "quarterly16"
)

// Fixed horizons. They are not configurable.
var (
	ParameterizedHorizon = time.Date(2030, time.December, 31, 0, 0, 0, 0, time.UTC)
	Quarterly16Horizon   = time.Date(2032, time.December, 31, 0, 0, 0, 0, time.UTC)
)

const (
	monthsPerCheckpoint = 3
	daysPerCliffYear    = 365
	// residual below this share of the total is treated as fully vested
	overshootTolerance = 1e-9
)

// Params describes one award's schedule inputs.
type Params struct {
	GrantDate     time.Time
	TotalValue    float64
	CliffYears    int
	DurationYears int
	Variant       Variant
}

// ParseVariant maps user input to a Variant. Empty input selects the default.
func ParseVariant(s string) (Variant, error) {
	switch Variant(s) {
	case "", VariantParameterized:
		return VariantParameterized, nil
	case VariantQuarterly16:
		return VariantQuarterly16, nil
	default:
		return "", fmt.Errorf("%w: unknown variant %q", ErrInvalidSchedule, s)
	}
}

// Horizon returns the exclusive end date for a variant.
func Horizon(v Variant) time.Time {
	if v == VariantQuarterly16 {
		return Quarterly16Horizon
	}
	return ParameterizedHorizon
}

// QuarterlyFraction returns the share of the total released per checkpoint.
func QuarterlyFraction(v Variant, durationYears int) (float64, error) {
	switch v {
	case VariantQuarterly16:
		return 1.0 / 16, nil
	case VariantParameterized, "":
		if durationYears <= 0 {
			return 0, fmt.Errorf("%w: duration must be a positive number of years, got %d", ErrInvalidSchedule, durationYears)
		}
		return 1.0 / float64(durationYears*4), nil
	default:
		return 0, fmt.Errorf("%w: unknown variant %q", ErrInvalidSchedule, v)
	}
}

// ForParams validates p and generates its schedule.
func ForParams(p Params) (Series, error) {
	fraction, err := QuarterlyFraction(p.Variant, p.DurationYears)
	if err != nil {
		return nil, err
	}
	return Generate(p.GrantDate, p.TotalValue, p.CliffYears, fraction, Horizon(p.Variant))
}

// Generate walks every day from grant up to (not including) horizon and
// records the cumulative vested amount.
//
// Checkpoints fall every three calendar months after grant. A checkpoint
// before grant + cliffYears*365 days only queues one more fraction; later
// checkpoints release totalValue times the queued fraction.
func Generate(grant time.Time, totalValue float64, cliffYears int, quarterlyFraction float64, horizon time.Time) (Series, error) {
	grant, horizon = Day(grant), Day(horizon)
	if err := validate(grant, totalValue, cliffYears, quarterlyFraction, horizon); err != nil {
		return nil, err
	}

	cliffEnd := grant.AddDate(0, 0, daysPerCliffYear*cliffYears)
	days := int(horizon.Sub(grant).Hours() / 24)
	series := make(Series, 0, days)

	vested := 0.0
	pending := quarterlyFraction
	n := 1
	next := Checkpoint(grant, n)

	for date := grant; date.Before(horizon); date = date.AddDate(0, 0, 1) {
		if date.Equal(next) {
			if date.Before(cliffEnd) {
				pending += quarterlyFraction
			} else if vested < totalValue {
				vested = release(vested, totalValue*pending, totalValue)
				pending = quarterlyFraction
			}
			n++
			next = Checkpoint(grant, n)
		}
		series = append(series, Point{Date: date, Value: vested})
	}
	return series, nil
}

func validate(grant time.Time, totalValue float64, cliffYears int, fraction float64, horizon time.Time) error {
	switch {
	case math.IsNaN(totalValue) || math.IsInf(totalValue, 0) || totalValue < 0:
		return fmt.Errorf("%w: total value must be a non-negative number, got %v", ErrInvalidSchedule, totalValue)
	case cliffYears < 0:
		return fmt.Errorf("%w: cliff must not be negative, got %d", ErrInvalidSchedule, cliffYears)
	case math.IsNaN(fraction) || fraction <= 0 || fraction > 1:
		return fmt.Errorf("%w: quarterly fraction must be in (0, 1], got %v", ErrInvalidSchedule, fraction)
	case !horizon.After(grant):
		return fmt.Errorf("%w: grant date %s is not before horizon %s", ErrInvalidSchedule,
			grant.Format(DateLayout), horizon.Format(DateLayout))
	}
	return nil
}

func release(vested, amount, total float64) float64 {
	vested += amount
	if vested > total || total-vested <= total*overshootTolerance {
		return total
	}
	return vested
}

// Checkpoint returns the n-th quarterly checkpoint after grant. The grant's
// day of month is kept; months without that day use their last day.
func Checkpoint(grant time.Time, n int) time.Time {
	y, m, d := grant.Date()
	first := time.Date(y, m+time.Month(monthsPerCheckpoint*n), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// Checkpoints lists checkpoints after grant and strictly before until.
func Checkpoints(grant, until time.Time) []time.Time {
	grant, until = Day(grant), Day(until)
	var out []time.Time
	for n := 1; ; n++ {
		c := Checkpoint(grant, n)
		if !c.Before(until) {
			return out
		}
		out = append(out, c)
	}
}
