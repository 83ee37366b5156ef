package temporal

import (
	"testing"
	"time"

	"heliocorr/domain/core"
	"heliocorr/domain/timeseries"
)

func mustSeries(t *testing.T, timestamps []time.Time, values []float64) *timeseries.TimeSeries {
	t.Helper()
	s, err := timeseries.New(timestamps, values)
	if err != nil {
		t.Fatalf("building series: %v", err)
	}
	return s
}

func dailyStamps(start time.Time, offsets ...int) []time.Time {
	out := make([]time.Time, len(offsets))
	for i, off := range offsets {
		out[i] = start.AddDate(0, 0, off)
	}
	return out
}

func TestAlign_BasicDailyAlignment(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	source := mustSeries(t,
		dailyStamps(start, 0, 1, 2, 3, 4, 5, 6, 7),
		[]float64{1, 2, 3, 4, 5, 6, 7, 8})
	target := mustSeries(t,
		dailyStamps(start, 0, 1, 2, 3, 4, 5, 6, 7),
		[]float64{10, 20, 30, 40, 50, 60, 70, 80})

	pair, err := Align(source, target, Config{Cadence: timeseries.CadenceDaily})
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}

	if pair.Len() != 8 {
		t.Errorf("Expected 8 aligned slots, got %d", pair.Len())
	}
	if pair.Source[0] != 1 || pair.Target[0] != 10 {
		t.Errorf("First slot mismatch: %v / %v", pair.Source[0], pair.Target[0])
	}
	if len(pair.Grid) != pair.Len() {
		t.Errorf("Grid length %d does not match values %d", len(pair.Grid), pair.Len())
	}
}

func TestAlign_SymmetricOmission(t *testing.T) {
	// Source misses day 4, target misses day 6: both slots must vanish
	// from both sides so the pair stays index-aligned.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	source := mustSeries(t,
		dailyStamps(start, 0, 1, 2, 3, 5, 6, 7, 8, 9),
		[]float64{1, 2, 3, 4, 6, 7, 8, 9, 10})
	target := mustSeries(t,
		dailyStamps(start, 0, 1, 2, 3, 4, 5, 7, 8, 9),
		[]float64{10, 20, 30, 40, 50, 60, 80, 90, 100})

	pair, err := Align(source, target, Config{Cadence: timeseries.CadenceDaily})
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}

	// Days 0,1,2,3,5,7,8,9 survive; days 4 and 6 are omitted.
	if pair.Len() != 8 {
		t.Fatalf("Expected 8 surviving slots, got %d", pair.Len())
	}
	for i, g := range pair.Grid {
		d := int(g.Sub(start).Hours() / 24)
		if d == 4 || d == 6 {
			t.Errorf("Slot %d: day %d should have been omitted", i, d)
		}
	}
	// Values on both sides must still correspond to the same day.
	for i := range pair.Grid {
		if pair.Target[i] != pair.Source[i]*10 {
			t.Errorf("Slot %d: source %v and target %v no longer correspond", i, pair.Source[i], pair.Target[i])
		}
	}
}

func TestAlign_AggregatesWithinSlot(t *testing.T) {
	// Two source samples land in the same monthly slot: the slot takes
	// their mean.
	src := mustSeries(t,
		[]time.Time{
			time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 7, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 8, 5, 0, 0, 0, 0, time.UTC),
		},
		[]float64{10, 20, 3, 4, 5, 6, 7, 8, 9})
	tgt := mustSeries(t,
		[]time.Time{
			time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 2, 6, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 4, 6, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 6, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 7, 6, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 8, 6, 0, 0, 0, 0, time.UTC),
		},
		[]float64{1, 1, 1, 1, 1, 1, 1, 1})

	pair, err := Align(src, tgt, Config{Cadence: timeseries.CadenceMonthly})
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}
	if pair.Source[0] != 15 {
		t.Errorf("Expected January mean of 15, got %v", pair.Source[0])
	}
}

func monthlyOnes(t *testing.T, n int, extra time.Time, extraValue float64) *timeseries.TimeSeries {
	t.Helper()
	timestamps := make([]time.Time, 0, n+1)
	values := make([]float64, 0, n+1)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		stamp := start.AddDate(0, i, 0)
		if !extra.IsZero() && extra.Before(stamp) {
			timestamps = append(timestamps, extra)
			values = append(values, extraValue)
			extra = time.Time{}
		}
		timestamps = append(timestamps, stamp)
		values = append(values, 1)
	}
	return mustSeries(t, timestamps, values)
}

func sourceAt(t *testing.T, pair *timeseries.AlignedPair, month time.Month) float64 {
	t.Helper()
	for i, g := range pair.Grid {
		if g.Month() == month {
			return pair.Source[i]
		}
	}
	t.Fatalf("No slot for %s in grid %v", month, pair.Grid)
	return 0
}

func TestAlign_MidMonthSampleAggregatedIntoOneSlot(t *testing.T) {
	// A raw sample between two monthly slot centers belongs to exactly one
	// slot, the nearer one. February 15 sits before the Feb/Mar midpoint,
	// so it must raise the February mean and leave March untouched.
	source := monthlyOnes(t, 10, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), 100)
	target := monthlyOnes(t, 10, time.Time{}, 0)

	pair, err := Align(source, target, Config{Cadence: timeseries.CadenceMonthly})
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}
	if pair.Len() != 10 {
		t.Fatalf("Expected 10 slots, got %d", pair.Len())
	}
	if got := sourceAt(t, pair, time.February); got != 50.5 {
		t.Errorf("February slot should average in the extra sample once, got %v", got)
	}
	if got := sourceAt(t, pair, time.March); got != 1 {
		t.Errorf("March slot must not see the February sample, got %v", got)
	}
}

func TestAlign_LongMonthLeavesNoDeadZone(t *testing.T) {
	// January has 31 days, so a fixed 30-day window would strand a sample
	// on the 16th between the January and February windows. The midpoint
	// spans must still assign it to January.
	source := monthlyOnes(t, 10, time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC), 100)
	target := monthlyOnes(t, 10, time.Time{}, 0)

	pair, err := Align(source, target, Config{Cadence: timeseries.CadenceMonthly})
	if err != nil {
		t.Fatalf("Align failed: %v", err)
	}
	if got := sourceAt(t, pair, time.January); got != 50.5 {
		t.Errorf("January slot should include the mid-month sample, got %v", got)
	}
	if got := sourceAt(t, pair, time.February); got != 1 {
		t.Errorf("February slot must stay at 1, got %v", got)
	}
}

func TestAlign_InsufficientData(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	source := mustSeries(t, dailyStamps(start, 0, 1, 2), []float64{1, 2, 3})
	target := mustSeries(t, dailyStamps(start, 0, 1, 2), []float64{4, 5, 6})

	_, err := Align(source, target, Config{Cadence: timeseries.CadenceDaily})
	if err == nil {
		t.Fatal("Expected insufficient-data error with only 3 aligned points")
	}
	if !core.IsInsufficientDataError(err) {
		t.Errorf("Expected insufficient-data error, got %v", err)
	}
}

func TestAlign_DisjointRanges(t *testing.T) {
	a := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	b := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	source := mustSeries(t, dailyStamps(a, 0, 1, 2), []float64{1, 2, 3})
	target := mustSeries(t, dailyStamps(b, 0, 1, 2), []float64{4, 5, 6})

	_, err := Align(source, target, Config{Cadence: timeseries.CadenceDaily})
	if err == nil {
		t.Fatal("Expected alignment error for disjoint ranges")
	}
	if !core.IsAlignmentError(err) {
		t.Errorf("Expected alignment error, got %v", err)
	}
}

func TestAlign_RejectsBadCadence(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := mustSeries(t, dailyStamps(start, 0, 1), []float64{1, 2})

	_, err := Align(s, s, Config{Cadence: "hourly"})
	if !core.IsInvalidParameterError(err) {
		t.Errorf("Expected invalid-parameter error, got %v", err)
	}
}

func TestAlign_MinPointsOverride(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	source := mustSeries(t, dailyStamps(start, 0, 1, 2, 3), []float64{1, 2, 3, 4})
	target := mustSeries(t, dailyStamps(start, 0, 1, 2, 3), []float64{5, 6, 7, 8})

	pair, err := Align(source, target, Config{Cadence: timeseries.CadenceDaily, MinPoints: 4})
	if err != nil {
		t.Fatalf("Align with MinPoints=4 failed: %v", err)
	}
	if pair.Len() != 4 {
		t.Errorf("Expected 4 slots, got %d", pair.Len())
	}
}
