// Package temporal transforms two irregularly sampled series into
// chronologically aligned time series on a shared cadence grid. Without this
// alignment the engine is blind to lag structure.
package temporal

import (
	"time"

	"heliocorr/domain/core"
	"heliocorr/domain/timeseries"
)

// Config controls the resampling behavior
type Config struct {
	Cadence timeseries.Cadence
	// MinPoints is the minimum number of aligned grid points required;
	// below it correlation and spectral estimates are meaningless.
	MinPoints int
}

// DefaultMinPoints applies when Config.MinPoints is zero.
const DefaultMinPoints = 8

// Align resamples both series onto one cadence grid.
//
// The grid spans the union of both series' ranges, truncated to cadence
// boundaries. Each grid slot takes the mean of the raw samples lying nearer
// its center than any neighboring slot's; a slot with no sample in either
// series is omitted from both, so the pair stays index-aligned. Fails with
// core.ErrAlignment when not a single slot is populated in both series, and
// with core.ErrInsufficientData when fewer than MinPoints slots survive.
func Align(source, target *timeseries.TimeSeries, cfg Config) (*timeseries.AlignedPair, error) {
	if !cfg.Cadence.IsValid() {
		return nil, core.NewInvalidParameterError("resample_cadence", "unrecognized cadence "+string(cfg.Cadence))
	}
	if cfg.MinPoints == 0 {
		cfg.MinPoints = DefaultMinPoints
	}

	srcFirst, _ := source.First()
	tgtFirst, _ := target.First()
	srcLast, _ := source.Last()
	tgtLast, _ := target.Last()

	start := cfg.Cadence.Truncate(minTime(srcFirst, tgtFirst))
	end := maxTime(srcLast, tgtLast)

	grid := make([]time.Time, 0, 64)
	for t, i := start, 0; !t.After(end); i++ {
		grid = append(grid, t)
		t = cfg.Cadence.Advance(start, i+1)
	}

	srcValues, srcObserved := resampleToGrid(source, grid, cfg.Cadence)
	tgtValues, tgtObserved := resampleToGrid(target, grid, cfg.Cadence)

	// Symmetric omission: a slot survives only when both series observed it.
	pair := &timeseries.AlignedPair{Cadence: cfg.Cadence}
	for i := range grid {
		if srcObserved[i] && tgtObserved[i] {
			pair.Grid = append(pair.Grid, grid[i])
			pair.Source = append(pair.Source, srcValues[i])
			pair.Target = append(pair.Target, tgtValues[i])
		}
	}

	if pair.Len() == 0 {
		return nil, core.NewAlignmentError("series share no grid slots at cadence " + string(cfg.Cadence))
	}
	if pair.Len() < cfg.MinPoints {
		return nil, core.NewInsufficientDataError("alignment", pair.Len(), cfg.MinPoints)
	}
	return pair, nil
}

// resampleToGrid aggregates samples onto the grid. Each slot owns the span
// [midpoint(prev, center), midpoint(center, next)), which tiles the timeline
// exactly: every sample is aggregated into the one slot whose center is
// nearest. Fixed-width windows would overlap across short months and leave a
// gap in long ones, counting some samples twice and others not at all.
func resampleToGrid(s *timeseries.TimeSeries, grid []time.Time, cadence timeseries.Cadence) ([]float64, []bool) {
	values := make([]float64, len(grid))
	observed := make([]bool, len(grid))

	// Both the grid and the series are sorted, so a single cursor suffices.
	cursor := 0
	for i, center := range grid {
		prev := cadence.Advance(center, -1)
		if i > 0 {
			prev = grid[i-1]
		}
		next := cadence.Advance(center, 1)
		if i < len(grid)-1 {
			next = grid[i+1]
		}
		lo := midpoint(prev, center)
		hi := midpoint(center, next)

		for cursor < s.Len() {
			ts, _ := s.At(cursor)
			if !ts.Before(lo) {
				break
			}
			cursor++
		}

		sum, count := 0.0, 0
		for j := cursor; j < s.Len(); j++ {
			ts, v := s.At(j)
			if !ts.Before(hi) {
				break
			}
			sum += v
			count++
		}

		if count > 0 {
			observed[i] = true
			values[i] = sum / float64(count)
		}
	}

	return values, observed
}

func midpoint(a, b time.Time) time.Time {
	return a.Add(b.Sub(a) / 2)
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
