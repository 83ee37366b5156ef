package timeseries

import "time"

// AlignedPair holds two series resampled onto one shared timestamp grid.
// Invariant: len(Source) == len(Target) == len(Grid), and index i of both
// series refers to Grid[i].
//
// By convention Source is the activity (driver) series and Target the
// biological/event series; a positive lag in downstream analysis means the
// target lags the source.
type AlignedPair struct {
	Grid    []time.Time `json:"grid"`
	Source  []float64   `json:"source"`
	Target  []float64   `json:"target"`
	Cadence Cadence     `json:"cadence"`
}

// Len returns the number of aligned grid points
func (p *AlignedPair) Len() int { return len(p.Grid) }

// Start returns the first grid timestamp
func (p *AlignedPair) Start() time.Time { return p.Grid[0] }

// End returns the last grid timestamp
func (p *AlignedPair) End() time.Time { return p.Grid[len(p.Grid)-1] }
