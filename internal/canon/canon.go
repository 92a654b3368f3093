// Package canon implements Trailproof's canonical serialization: a
// deterministic byte encoding such that any two implementations produce
// byte-identical output for the same logical event.
package canon

import (
	"encoding/json"
	"fmt"

	"github.com/ucarion/jcs"
)

// Bytes produces the canonical UTF-8 encoding of fields: recursive
// lexicographic key order, compact separators, shortest round-trip
// numbers, literal (non-escaped) UTF-8, and no null-valued object keys
// anywhere in the tree. The caller is responsible for having already
// excluded hash/signature and any top-level fields that are absent.
//
// fields is first round-tripped through encoding/json so that Go-typed
// values (ints, floats, types with their own MarshalJSON) normalize to the same plain
// JSON types the jcs canonicalizer expects, mirroring how
// internal/auth and internal/chain consume canonical bytes regardless
// of the caller's original Go types.
func Bytes(fields map[string]interface{}) ([]byte, error) {
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshaling fields: %w", err)
	}

	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, fmt.Errorf("normalizing fields: %w", err)
	}

	canonicalJSON, err := jcs.Format(stripNulls(normalized))
	if err != nil {
		return nil, fmt.Errorf("canonicalizing fields: %w", err)
	}

	return []byte(canonicalJSON), nil
}

// stripNulls recursively removes object keys whose value is JSON null.
// Arrays keep null elements in place — only object fields are ever
// omitted, matching the "absent fields are omitted entirely" rule.
func stripNulls(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, child := range val {
			if child == nil {
				continue
			}
			out[k] = stripNulls(child)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, child := range val {
			out[i] = stripNulls(child)
		}
		return out
	default:
		return val
	}
}
