package libs

import (
	"sync"
	"time"
)

// callerRecord tracks one caller's admissions inside the rolling window.
// Records are created lazily and never evicted: a process serving an
// unbounded caller population will grow this map for its lifetime.
type callerRecord struct {
	timestamps []time.Time
	blocked    int64
}

// RateLimiterStats reports admission counts for one caller or in aggregate.
type RateLimiterStats struct {
	CallerID     string `json:"callerId,omitempty" yaml:"callerId,omitempty"`
	Requests     int    `json:"requests"           yaml:"requests"`
	Blocked      int64  `json:"blocked"            yaml:"blocked"`
	TotalCallers int    `json:"totalCallers"       yaml:"totalCallers"`
}

// RateLimiter admits up to max requests per caller within a rolling window.
// It records exact timestamps and prunes those older than the window on every
// check, so admission has sliding precision without fixed-boundary bursts.
//
// The limiter only does bookkeeping: a false result carries no side effects
// beyond the blocked counter, and translating a rejection into a
// RateLimitError is the caller's job.
//
// All methods are safe for concurrent use.
type RateLimiter struct {
	mu      sync.Mutex
	callers map[string]*callerRecord
	max     int
	window  time.Duration
}

// NewRateLimiter creates a limiter admitting max requests per window per caller.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		callers: make(map[string]*callerRecord),
		max:     max,
		window:  window,
	}
}

// Allow reports whether callerID may proceed. An admission records the
// current time; a rejection increments the caller's blocked count and
// records nothing.
func (rl *RateLimiter) Allow(callerID string) bool {
	now := time.Now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	record, ok := rl.callers[callerID]
	if !ok {
		record = &callerRecord{}
		rl.callers[callerID] = record
	}

	cutoff := now.Add(-rl.window)
	kept := record.timestamps[:0]

	for _, ts := range record.timestamps {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	record.timestamps = kept

	if len(record.timestamps) >= rl.max {
		record.blocked++

		return false
	}

	record.timestamps = append(record.timestamps, now)

	return true
}

// RetryAfter returns a hint for when the caller's oldest recorded request
// will fall out of the window. Zero when the caller is not currently limited.
func (rl *RateLimiter) RetryAfter(callerID string) time.Duration {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	record, ok := rl.callers[callerID]
	if !ok || len(record.timestamps) < rl.max {
		return 0
	}

	oldest := record.timestamps[0]

	remaining := rl.window - time.Since(oldest)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// Stats returns admission counts for one caller.
func (rl *RateLimiter) Stats(callerID string) RateLimiterStats {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	stats := RateLimiterStats{CallerID: callerID}

	if record, ok := rl.callers[callerID]; ok {
		stats.Requests = len(record.timestamps)
		stats.Blocked = record.blocked
	}

	return stats
}

// TotalStats returns aggregate counts across all callers.
func (rl *RateLimiter) TotalStats() RateLimiterStats {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	stats := RateLimiterStats{TotalCallers: len(rl.callers)}

	for _, record := range rl.callers {
		stats.Requests += len(record.timestamps)
		stats.Blocked += record.blocked
	}

	return stats
}
