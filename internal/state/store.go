package state

import (
	"sync"
	"time"

	"github.com/five82/appdeck/internal/catalog"
)

// Phase names the fetch lifecycle position a Snapshot describes.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
	PhaseFailure
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	case PhaseFailure:
		return "failure"
	default:
		return "idle"
	}
}

// Snapshot represents the fetch state visible to the UI.
type Snapshot struct {
	Records             []catalog.Record
	Loading             bool
	Error               string // empty when there is no error
	LastUpdated         time.Time
	ConsecutiveFailures int
	Fetches             uint64 // fetches started so far
}

// HasError reports whether the last completed fetch failed.
func (s Snapshot) HasError() bool {
	return s.Error != ""
}

// Phase derives the lifecycle position from the snapshot fields.
func (s Snapshot) Phase() Phase {
	switch {
	case s.Loading:
		return PhaseLoading
	case s.Error != "":
		return PhaseFailure
	case !s.LastUpdated.IsZero():
		return PhaseSuccess
	default:
		return PhaseIdle
	}
}

const subscriberBuffer = 16

// Store holds the single FetchState. The zero value is ready to use.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	subs     map[chan Snapshot]struct{}
}

// Begin publishes the loading state. Any previous error is cleared and the
// records are kept.
func (s *Store) Begin() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loading = true
	s.snapshot.Error = ""
	s.snapshot.Fetches++
	s.publishLocked()
}

// Succeed replaces the records wholesale.
func (s *Store) Succeed(records []catalog.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Records = cloneRecords(records)
	s.snapshot.Loading = false
	s.snapshot.Error = ""
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	s.publishLocked()
}

// Fail records message while keeping the previous records for display.
func (s *Store) Fail(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.Loading = false
	s.snapshot.Error = message
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
	s.publishLocked()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.copyLocked()
}

// Subscribe returns a channel that receives every snapshot published after the
// call, in order, and a func that unsubscribes and closes the channel. When a
// subscriber falls behind by more than the channel buffer the oldest pending
// snapshot is dropped.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, subscriberBuffer)

	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[chan Snapshot]struct{})
	}
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, ch)
			close(ch)
		})
	}
	return ch, cancel
}

func (s *Store) publishLocked() {
	for ch := range s.subs {
		snap := s.copyLocked()
		select {
		case ch <- snap:
			continue
		default:
		}
		// Full: drop the oldest pending snapshot to make room.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

func (s *Store) copyLocked() Snapshot {
	snap := s.snapshot
	snap.Records = cloneRecords(s.snapshot.Records)
	return snap
}

func cloneRecords(records []catalog.Record) []catalog.Record {
	if len(records) == 0 {
		return nil
	}
	dup := make([]catalog.Record, len(records))
	copy(dup, records)
	return dup
}
