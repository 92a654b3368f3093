package store

import (
	"fmt"
	"strings"
)

// Event is the on-the-wire record shape for both backings: eleven
// logical fields, the first eight mandatory and the last three omitted
// entirely from JSON when absent. This is the standard (non-canonical)
// JSON form used for JSONL persistence; internal/canon produces the
// separate canonical form used for hashing and signing.
type Event struct {
	EventID   string                 `json:"event_id"`
	EventType string                 `json:"event_type"`
	Timestamp string                 `json:"timestamp"`
	ActorID   string                 `json:"actor_id"`
	TenantID  string                 `json:"tenant_id"`
	Payload   map[string]interface{} `json:"payload"`
	PrevHash  string                 `json:"prev_hash"`
	Hash      string                 `json:"hash"`
	TraceID   string                 `json:"trace_id,omitempty"`
	SessionID string                 `json:"session_id,omitempty"`
	Signature string                 `json:"signature,omitempty"`
}

// CanonicalFields builds the map internal/canon.Bytes hashes and signs
// over: hash and signature are always excluded, and trace_id/session_id
// are included only when set, per the canonical serializer's
// absent-field-omission rule.
func (e Event) CanonicalFields() map[string]interface{} {
	fields := map[string]interface{}{
		"event_id":   e.EventID,
		"event_type": e.EventType,
		"timestamp":  e.Timestamp,
		"actor_id":   e.ActorID,
		"tenant_id":  e.TenantID,
		"payload":    e.Payload,
		"prev_hash":  e.PrevHash,
	}
	if e.TraceID != "" {
		fields["trace_id"] = e.TraceID
	}
	if e.SessionID != "" {
		fields["session_id"] = e.SessionID
	}
	return fields
}

// isHexDigest reports whether s is exactly n lowercase hex characters.
func isHexDigest(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// Validate checks that the eight mandatory fields of §3 are present and
// well-formed. It is used by the JSONL backing to skip corrupt or
// partial lines at load time.
func (e Event) Validate() error {
	switch {
	case strings.TrimSpace(e.EventID) == "":
		return fmt.Errorf("event_id must not be empty")
	case strings.TrimSpace(e.EventType) == "":
		return fmt.Errorf("event_type must not be empty")
	case strings.TrimSpace(e.Timestamp) == "":
		return fmt.Errorf("timestamp must not be empty")
	case strings.TrimSpace(e.ActorID) == "":
		return fmt.Errorf("actor_id must not be empty")
	case strings.TrimSpace(e.TenantID) == "":
		return fmt.Errorf("tenant_id must not be empty")
	case e.Payload == nil:
		return fmt.Errorf("payload must be present")
	case !isHexDigest(e.PrevHash, 64):
		return fmt.Errorf("prev_hash must be 64 lowercase hex characters")
	case !isHexDigest(e.Hash, 64):
		return fmt.Errorf("hash must be 64 lowercase hex characters")
	}
	return nil
}
