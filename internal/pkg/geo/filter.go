package geo

import (
	"context"
	"sync"
	"time"

	"github.com/nvera/donaescuela/internal/pkg/logger"
)

// RadiusOptions lists the radii, in kilometers, a client may filter by.
var RadiusOptions = []int{5, 10, 25, 50}

// ValidRadius reports whether the given radius is one of the supported
// filter options.
func ValidRadius(radiusKm int) bool {
	for _, r := range RadiusOptions {
		if r == radiusKm {
			return true
		}
	}
	return false
}

// Candidate is an entity with a location that can be distance-filtered.
type Candidate struct {
	ID    int64
	Point Point
}

// Result is a candidate that passed the radius filter, annotated with
// its resolved driving distance.
type Result struct {
	ID             int64
	DistanceMeters float64
}

// Filter resolves driving distances for candidates concurrently and
// keeps those within a radius.
type Filter struct {
	client   RoutingClient
	workers  int
	deadline time.Duration
}

// NewFilter creates a distance filter with a bounded worker count and
// an overall deadline per filter run.
func NewFilter(client RoutingClient, workers int, deadline time.Duration) *Filter {
	if workers < 1 {
		workers = 1
	}
	return &Filter{
		client:   client,
		workers:  workers,
		deadline: deadline,
	}
}

// WithinRadius returns the candidates whose driving distance from
// origin is at most radiusKm kilometers. Results are unordered; callers
// sort as needed. Candidates whose distance cannot be resolved before
// the deadline are excluded, so a slow routing service degrades to
// partial results instead of failing the request.
func (f *Filter) WithinRadius(ctx context.Context, origin Point, candidates []Candidate, radiusKm int) []Result {
	if len(candidates) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, f.deadline)
	defer cancel()

	maxMeters := float64(radiusKm) * 1000

	jobs := make(chan Candidate)
	results := make(chan Result, len(candidates))

	var wg sync.WaitGroup
	for i := 0; i < f.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for cand := range jobs {
				meters, err := f.client.DrivingDistance(ctx, origin, cand.Point)
				if err != nil {
					logger.Debug().Err(err).Int64("candidateId", cand.ID).Msg("Distance lookup failed, excluding candidate")
					continue
				}
				if meters <= maxMeters {
					results <- Result{ID: cand.ID, DistanceMeters: meters}
				}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, cand := range candidates {
			select {
			case jobs <- cand:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var within []Result
	for res := range results {
		within = append(within, res)
	}
	return within
}
