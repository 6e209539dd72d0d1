// Package state holds the fetch state shared between the fetch controller and
// the UI.
//
// # Overview
//
// There is exactly one writer (the fetch controller) and any number of
// readers. The Store owns a single Snapshot describing the most recent fetch:
//
//	Records              last successfully fetched list, response order
//	Loading              a fetch is in flight
//	Error                message of the last failed fetch, "" when none
//	LastUpdated          completion time of the last fetch
//	ConsecutiveFailures  failures since the last success
//	Fetches              number of fetches started
//
// # Transitions
//
//	Begin()            Loading=true, Error="", Records unchanged
//	Succeed(records)   Loading=false, Error="", Records replaced
//	Fail(message)      Loading=false, Error=message, Records unchanged
//
// Records are never mutated in place. Succeed stores a copy and every reader
// gets its own copy, so a snapshot handed to the UI stays valid regardless of
// later fetches.
//
// # Observing
//
// Readers either call Snapshot for the current value or Subscribe for a
// channel that receives every transition in publication order:
//
//	updates, cancel := store.Subscribe()
//	defer cancel()
//	for snap := range updates {
//		render(snap)
//	}
//
// Publishing never blocks the writer. Each subscriber has a small buffer; if
// it fills, the oldest pending snapshot is discarded so the newest state is
// always delivered. cancel closes the channel and may be called more than
// once.
//
// # Zero Value
//
// A zero Store is ready to use and reports PhaseIdle with no records.
package state
