// Package trailproof records a tamper-evident audit trail of
// application events. Each event is linked to its predecessor by a
// cryptographic digest, so any retroactive modification, reordering,
// insertion, or deletion is detectable by a later call to Verify. An
// optional keyed MAC additionally proves that recorded events
// originated from a holder of a shared secret.
package trailproof

import "github.com/trailproof/trailproof/internal/store"

// Event is a single tamper-evident record. EventID, EventType,
// Timestamp, ActorID, TenantID, Payload, PrevHash, and Hash are always
// present; TraceID, SessionID, and Signature are omitted from JSON when
// unset.
type Event = store.Event

// Filter describes a Query: zero-valued fields are not applied.
type Filter = store.Filter

// QueryResult is the page of events a Query returns, plus the cursor to
// resume from (empty when no further records remain).
type QueryResult = store.QueryResult

// VerificationResult is the structured outcome of Verify.
type VerificationResult struct {
	// Intact is true iff Broken is empty.
	Intact bool
	// Total is the number of records read from the store.
	Total int
	// Broken holds the 0-indexed positions found to be tampered,
	// cascading: once index k breaks, every index > k is reported
	// broken too without further recomputation.
	Broken []int
}
