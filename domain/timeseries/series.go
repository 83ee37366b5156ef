package timeseries

import (
	"fmt"
	"math"
	"time"
)

// TimeSeries is an ordered sequence of (timestamp, value) samples.
//
// Invariants enforced at construction: timestamps strictly increasing with no
// duplicates, values finite. A TimeSeries is immutable once constructed;
// derived series (resampled, smoothed, decomposed) are new instances.
type TimeSeries struct {
	timestamps []time.Time
	values     []float64
}

// New validates the samples and constructs an immutable TimeSeries.
// The input slices are copied, so callers retain ownership of their data.
func New(timestamps []time.Time, values []float64) (*TimeSeries, error) {
	if len(timestamps) != len(values) {
		return nil, fmt.Errorf("timestamp/value length mismatch: %d vs %d", len(timestamps), len(values))
	}
	if len(timestamps) == 0 {
		return nil, fmt.Errorf("time series must contain at least one sample")
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("non-finite value %v at index %d", v, i)
		}
		if i > 0 && !timestamps[i].After(timestamps[i-1]) {
			return nil, fmt.Errorf("timestamps must be strictly increasing: index %d (%s) does not follow %s",
				i, timestamps[i].Format(time.RFC3339), timestamps[i-1].Format(time.RFC3339))
		}
	}

	ts := &TimeSeries{
		timestamps: make([]time.Time, len(timestamps)),
		values:     make([]float64, len(values)),
	}
	copy(ts.timestamps, timestamps)
	copy(ts.values, values)
	return ts, nil
}

// Len returns the number of samples
func (s *TimeSeries) Len() int { return len(s.values) }

// At returns the sample at index i
func (s *TimeSeries) At(i int) (time.Time, float64) {
	return s.timestamps[i], s.values[i]
}

// First returns the earliest sample
func (s *TimeSeries) First() (time.Time, float64) { return s.At(0) }

// Last returns the most recent sample
func (s *TimeSeries) Last() (time.Time, float64) { return s.At(s.Len() - 1) }

// Timestamps returns a copy of the timestamp grid
func (s *TimeSeries) Timestamps() []time.Time {
	out := make([]time.Time, len(s.timestamps))
	copy(out, s.timestamps)
	return out
}

// Values returns a copy of the sample values
func (s *TimeSeries) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Span returns the time covered from first to last sample
func (s *TimeSeries) Span() time.Duration {
	return s.timestamps[len(s.timestamps)-1].Sub(s.timestamps[0])
}
