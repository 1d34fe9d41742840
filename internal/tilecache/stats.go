package tilecache

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultMaxBytes is the default tile-cache byte budget (2 GiB), per
// spec.md §4.7 and the --cache-size-gb CLI default of 2.
const DefaultMaxBytes = 2 * 1024 * 1024 * 1024

// Stats holds the atomic counters spec.md §3 requires, plus the bookkeeping
// an exponentially smoothed throughput estimate needs.
type Stats struct {
	hits       atomic.Int64
	misses     atomic.Int64
	served     atomic.Int64
	servedNs   atomic.Int64

	speedMu   sync.Mutex
	speedEMA  float64
	lastTick  time.Time
	lastCount int64
}

func newStats() *Stats {
	return &Stats{lastTick: time.Now()}
}

func (s *Stats) recordHit() { s.hits.Add(1) }

func (s *Stats) recordMiss() { s.misses.Add(1) }

func (s *Stats) recordServed(d time.Duration) {
	s.served.Add(1)
	s.servedNs.Add(d.Nanoseconds())
}

// Hits, Misses, Served return the raw atomic counters.
func (s *Stats) Hits() int64   { return s.hits.Load() }
func (s *Stats) Misses() int64 { return s.misses.Load() }
func (s *Stats) Served() int64 { return s.served.Load() }

// HitRate returns cache_hits / (cache_hits + cache_misses), or 0 if no
// requests have been observed yet.
func (s *Stats) HitRate() float64 {
	hits, misses := s.hits.Load(), s.misses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

// Speed returns an exponentially smoothed tiles-per-second estimate,
// updated at most once per call by comparing the served counter against
// its value at the previous call (spec.md §4.7's speed()).
func (s *Stats) Speed() float64 {
	s.speedMu.Lock()
	defer s.speedMu.Unlock()

	now := time.Now()
	elapsed := now.Sub(s.lastTick).Seconds()
	if elapsed <= 0 {
		return s.speedEMA
	}
	served := s.served.Load()
	delta := served - s.lastCount
	instant := float64(delta) / elapsed

	const alpha = 0.3
	s.speedEMA = alpha*instant + (1-alpha)*s.speedEMA
	s.lastTick = now
	s.lastCount = served
	return s.speedEMA
}
