// Package timing records how long named operations take.
package timing

import (
	"sync"
	"time"
)

// Span is one in-flight measurement started by Tracker.Start.
type Span struct {
	tracker   *Tracker
	operation string
	start     time.Time
}

type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	enabled bool
	now     func() time.Time
	limit   int
}

// NewTracker keeps at most limit samples per operation; limit <= 0 means 100.
func NewTracker(limit int) *Tracker {
	if limit <= 0 {
		limit = 100
	}
	return &Tracker{
		timings: make(map[string][]time.Duration),
		enabled: true,
		now:     time.Now,
		limit:   limit,
	}
}

func (tt *Tracker) Start(operation string) *Span {
	return &Span{tracker: tt, operation: operation, start: tt.now()}
}

// End records the span and returns its duration. A nil or disabled tracker records nothing.
func (s *Span) End() time.Duration {
	if s == nil || s.tracker == nil {
		return 0
	}

	tt := s.tracker
	duration := tt.now().Sub(s.start)

	tt.mu.Lock()
	defer tt.mu.Unlock()

	if !tt.enabled {
		return duration
	}

	samples := append(tt.timings[s.operation], duration)
	if len(samples) > tt.limit {
		samples = samples[len(samples)-tt.limit:]
	}
	tt.timings[s.operation] = samples

	return duration
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return 0
	}

	var total time.Duration
	for _, duration := range timings {
		total += duration
	}

	return total / time.Duration(len(timings))
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}
