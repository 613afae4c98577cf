package geo

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"
)

// fakeRouter resolves distances from a fixed table, keyed by candidate
// latitude, and can simulate per-point failures and slowness.
type fakeRouter struct {
	mu        sync.Mutex
	distances map[float64]float64
	failures  map[float64]bool
	delay     time.Duration
	calls     int
}

func (f *fakeRouter) DrivingDistance(ctx context.Context, from, to Point) (float64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	if f.failures[to.Latitude] {
		return 0, errors.New("routing unavailable")
	}
	meters, ok := f.distances[to.Latitude]
	if !ok {
		return 0, ErrNoRoute
	}
	return meters, nil
}

func resultIDs(results []Result) []int64 {
	ids := make([]int64, 0, len(results))
	for _, r := range results {
		ids = append(ids, r.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func TestWithinRadiusKeepsOnlyCloseCandidates(t *testing.T) {
	router := &fakeRouter{
		distances: map[float64]float64{
			1.0: 3_000,  // within 5 km
			2.0: 4_999,  // within 5 km
			3.0: 5_001,  // just outside
			4.0: 40_000, // far away
		},
	}
	filter := NewFilter(router, 3, time.Second)

	results := filter.WithinRadius(context.Background(), Point{}, []Candidate{
		{ID: 1, Point: Point{Latitude: 1.0}},
		{ID: 2, Point: Point{Latitude: 2.0}},
		{ID: 3, Point: Point{Latitude: 3.0}},
		{ID: 4, Point: Point{Latitude: 4.0}},
	}, 5)

	got := resultIDs(results)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("WithinRadius() ids = %v, want [1 2]", got)
	}
}

func TestWithinRadiusExcludesFailedLookups(t *testing.T) {
	router := &fakeRouter{
		distances: map[float64]float64{1.0: 1_000, 2.0: 1_000},
		failures:  map[float64]bool{2.0: true},
	}
	filter := NewFilter(router, 2, time.Second)

	results := filter.WithinRadius(context.Background(), Point{}, []Candidate{
		{ID: 1, Point: Point{Latitude: 1.0}},
		{ID: 2, Point: Point{Latitude: 2.0}},
	}, 10)

	got := resultIDs(results)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("WithinRadius() ids = %v, want [1]", got)
	}
}

func TestWithinRadiusReturnsPartialResultsOnDeadline(t *testing.T) {
	router := &fakeRouter{
		distances: map[float64]float64{1.0: 1_000, 2.0: 1_000, 3.0: 1_000},
		delay:     60 * time.Millisecond,
	}
	// One worker, deadline long enough for a single lookup only.
	filter := NewFilter(router, 1, 100*time.Millisecond)

	results := filter.WithinRadius(context.Background(), Point{}, []Candidate{
		{ID: 1, Point: Point{Latitude: 1.0}},
		{ID: 2, Point: Point{Latitude: 2.0}},
		{ID: 3, Point: Point{Latitude: 3.0}},
	}, 10)

	if len(results) >= 3 {
		t.Errorf("expected partial results under deadline, got %d", len(results))
	}
}

func TestWithinRadiusEmptyInput(t *testing.T) {
	router := &fakeRouter{}
	filter := NewFilter(router, 2, time.Second)

	if results := filter.WithinRadius(context.Background(), Point{}, nil, 10); results != nil {
		t.Errorf("WithinRadius(nil) = %v, want nil", results)
	}
	if router.calls != 0 {
		t.Errorf("router called %d times for empty input", router.calls)
	}
}

func TestValidRadius(t *testing.T) {
	for _, r := range RadiusOptions {
		if !ValidRadius(r) {
			t.Errorf("ValidRadius(%d) = false", r)
		}
	}
	for _, r := range []int{0, 1, 7, 100, -5} {
		if ValidRadius(r) {
			t.Errorf("ValidRadius(%d) = true", r)
		}
	}
}
