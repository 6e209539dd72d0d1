package state

import (
	"testing"
	"time"

	"github.com/five82/appdeck/internal/catalog"
)

func TestStore_ZeroValueIsIdle(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.Phase() != PhaseIdle {
		t.Fatalf("Phase = %v, want idle", snap.Phase())
	}
	if len(snap.Records) != 0 || snap.Loading || snap.HasError() {
		t.Fatalf("zero snapshot = %#v, want empty", snap)
	}
}

func TestStore_SucceedAndSnapshotClone(t *testing.T) {
	var s Store

	records := []catalog.Record{{ID: "1", Name: "Netflix"}, {ID: "2", Name: "YouTube"}}
	before := time.Now()
	s.Begin()
	s.Succeed(records)

	// Mutating the caller's slice must not leak into the store.
	records[0].Name = "changed"

	snap := s.Snapshot()
	if snap.Phase() != PhaseSuccess {
		t.Fatalf("Phase = %v, want success", snap.Phase())
	}
	if len(snap.Records) != 2 || snap.Records[0].Name != "Netflix" {
		t.Fatalf("snapshot records = %#v, want Netflix first", snap.Records)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	snap.Records[0].ID = "999"
	if got := s.Snapshot().Records[0].ID; got != "1" {
		t.Fatalf("Snapshot should clone records; got id %q want 1", got)
	}
}

func TestStore_BeginClearsErrorKeepsRecords(t *testing.T) {
	var s Store

	s.Succeed([]catalog.Record{{ID: "1"}})
	s.Fail("boom")
	s.Begin()

	snap := s.Snapshot()
	if !snap.Loading || snap.HasError() {
		t.Fatalf("after Begin: loading=%v error=%q, want loading and no error", snap.Loading, snap.Error)
	}
	if len(snap.Records) != 1 || snap.Records[0].ID != "1" {
		t.Fatalf("Begin changed records: %#v", snap.Records)
	}
	if snap.Fetches != 1 {
		t.Fatalf("Fetches = %d, want 1", snap.Fetches)
	}
}

func TestStore_FailKeepsPreviousRecords(t *testing.T) {
	var s Store

	s.Succeed([]catalog.Record{{ID: "1"}})
	s.Begin()
	s.Fail("Network error")

	snap := s.Snapshot()
	if snap.Phase() != PhaseFailure {
		t.Fatalf("Phase = %v, want failure", snap.Phase())
	}
	if snap.Error != "Network error" || snap.Loading {
		t.Fatalf("snapshot = %#v, want error and not loading", snap)
	}
	if len(snap.Records) != 1 || snap.Records[0].ID != "1" {
		t.Fatalf("Fail changed records: %#v", snap.Records)
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	s.Fail("fail 1")
	s.Fail("fail 2")
	if got := s.Snapshot().ConsecutiveFailures; got != 2 {
		t.Fatalf("ConsecutiveFailures = %d, want 2", got)
	}

	s.Succeed(nil)
	if got := s.Snapshot().ConsecutiveFailures; got != 0 {
		t.Fatalf("ConsecutiveFailures = %d, want 0 after success", got)
	}
}

func TestStore_SubscribeReceivesTransitionsInOrder(t *testing.T) {
	var s Store
	updates, cancel := s.Subscribe()
	defer cancel()

	s.Begin()
	s.Fail("Network error")
	s.Begin()
	s.Succeed([]catalog.Record{{ID: "1"}})

	want := []Phase{PhaseLoading, PhaseFailure, PhaseLoading, PhaseSuccess}
	for i, phase := range want {
		select {
		case snap := <-updates:
			if snap.Phase() != phase {
				t.Fatalf("update %d phase = %v, want %v", i, snap.Phase(), phase)
			}
			if phase == PhaseLoading && snap.HasError() {
				t.Fatalf("update %d: loading snapshot carries error %q", i, snap.Error)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for update %d", i)
		}
	}
}

func TestStore_SlowSubscriberGetsNewest(t *testing.T) {
	var s Store
	updates, cancel := s.Subscribe()
	defer cancel()

	for i := 0; i < subscriberBuffer*3; i++ {
		s.Fail("old")
	}
	s.Succeed([]catalog.Record{{ID: "latest"}})

	var last Snapshot
	for n := 0; n < subscriberBuffer; n++ {
		last = <-updates
	}
	if last.Phase() != PhaseSuccess || last.Records[0].ID != "latest" {
		t.Fatalf("last buffered snapshot = %#v, want newest success", last)
	}
}

func TestStore_CancelClosesChannel(t *testing.T) {
	var s Store
	updates, cancel := s.Subscribe()

	cancel()
	cancel() // idempotent

	if _, ok := <-updates; ok {
		t.Fatalf("channel still open after cancel")
	}
	// Publishing after cancel must not panic.
	s.Begin()
}
