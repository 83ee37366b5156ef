package app

import (
	"encoding/binary"
	"encoding/json"
	"math"
	"sync"

	"golang.org/x/sync/singleflight"

	"heliocorr/domain/analysis"
	"heliocorr/domain/core"
	"heliocorr/domain/timeseries"
)

// ResultCache memoizes completed reports by request fingerprint. The engine
// is deterministic, so a fingerprint hit is always safe to return. Concurrent
// requests for the same fingerprint compute at most once.
type ResultCache struct {
	mu      sync.RWMutex
	reports map[core.Fingerprint]*analysis.AnalysisReport
	group   singleflight.Group
}

// NewResultCache creates an empty cache
func NewResultCache() *ResultCache {
	return &ResultCache{
		reports: make(map[core.Fingerprint]*analysis.AnalysisReport),
	}
}

// GetOrCompute returns the cached report for fp, or runs compute exactly once
// per fingerprint and caches the result. Errors are never cached.
func (c *ResultCache) GetOrCompute(fp core.Fingerprint, compute func() (*analysis.AnalysisReport, error)) (*analysis.AnalysisReport, error) {
	c.mu.RLock()
	report, ok := c.reports[fp]
	c.mu.RUnlock()
	if ok {
		return report, nil
	}

	v, err, _ := c.group.Do(fp.String(), func() (interface{}, error) {
		// Re-check under the flight: a previous flight may have stored it.
		c.mu.RLock()
		cached, ok := c.reports[fp]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		report, err := compute()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.reports[fp] = report
		c.mu.Unlock()
		return report, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*analysis.AnalysisReport), nil
}

// Len reports how many distinct requests have been cached
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.reports)
}

// RequestFingerprint hashes both input series and the parameters into the
// cache key. Timestamps enter as Unix nanoseconds and values as raw float
// bits, so two requests collide only when they are byte-for-byte the same
// analysis.
func RequestFingerprint(activity, event *timeseries.TimeSeries, params analysis.Params) core.Fingerprint {
	buf := make([]byte, 0, 16*(activity.Len()+event.Len())+64)
	buf = appendSeries(buf, activity)
	buf = appendSeries(buf, event)

	paramsJSON, _ := json.Marshal(params)
	buf = append(buf, paramsJSON...)

	return core.NewFingerprint(buf)
}

func appendSeries(buf []byte, s *timeseries.TimeSeries) []byte {
	for i := 0; i < s.Len(); i++ {
		ts, v := s.At(i)
		buf = binary.BigEndian.AppendUint64(buf, uint64(ts.UnixNano()))
		buf = binary.BigEndian.AppendUint64(buf, math.Float64bits(v))
	}
	return buf
}
