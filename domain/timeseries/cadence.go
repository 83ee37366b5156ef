package timeseries

import "time"

// Cadence defines the fixed interval between consecutive samples after
// resampling: the "heartbeat" of an aligned time series.
type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

// IsValid reports whether the cadence is one of the recognized values
func (c Cadence) IsValid() bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceMonthly:
		return true
	}
	return false
}

// Truncate rounds t down to the cadence boundary (day, Monday, or first of
// the month).
func (c Cadence) Truncate(t time.Time) time.Time {
	switch c {
	case CadenceDaily:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	case CadenceWeekly:
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		monday := t.AddDate(0, 0, -(weekday - 1))
		return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
	case CadenceMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	default:
		return t
	}
}

// Advance moves t forward by n cadence steps using calendar arithmetic, so
// monthly grids land on the first of each month rather than drifting.
func (c Cadence) Advance(t time.Time, n int) time.Time {
	switch c {
	case CadenceDaily:
		return t.AddDate(0, 0, n)
	case CadenceWeekly:
		return t.AddDate(0, 0, 7*n)
	case CadenceMonthly:
		return t.AddDate(0, n, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}
