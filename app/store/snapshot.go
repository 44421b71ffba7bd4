package store

import (
	"sync"
	"time"

	"github.com/lysyi3m/event-comb/app/event"
	"github.com/lysyi3m/event-comb/app/metrics"
)

// Snapshot holds the last successfully projected event list. Read
// endpoints fall back to it when the live fetch fails, so a refresh
// failure must leave the previous contents intact: only Set replaces
// them, and only with a complete list.
type Snapshot struct {
	mu        sync.RWMutex
	events    []event.Record
	updatedAt time.Time
}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

func (s *Snapshot) Set(events []event.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events = make([]event.Record, len(events))
	copy(s.events, events)
	s.updatedAt = time.Now()

	metrics.SnapshotEvents.Set(float64(len(events)))
	metrics.SnapshotUpdated.Set(float64(s.updatedAt.Unix()))
}

// Get returns a copy of the snapshot contents and its refresh time. The
// boolean is false until the first successful Set.
func (s *Snapshot) Get() ([]event.Record, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.updatedAt.IsZero() {
		return nil, time.Time{}, false
	}

	events := make([]event.Record, len(s.events))
	copy(events, s.events)
	return events, s.updatedAt, true
}

func (s *Snapshot) Age() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.updatedAt.IsZero() {
		return 0
	}
	return time.Since(s.updatedAt)
}
