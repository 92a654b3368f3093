package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/trailproof/trailproof/internal/chain"
)

func validEvent(id, hash string) Event {
	return Event{
		EventID:   id,
		EventType: "login",
		Timestamp: "2026-01-01T00:00:00.000Z",
		ActorID:   "alice",
		TenantID:  "t1",
		Payload:   map[string]interface{}{},
		PrevHash:  chain.Genesis(),
		Hash:      hash,
	}
}

func TestJSONLNoIOBeforeFirstAppend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.jsonl")

	if _, err := NewJSONL(path); err != nil {
		t.Fatalf("NewJSONL on a missing path: %v", err)
	}
	if _, err := os.Stat(path); err == nil {
		t.Errorf("NewJSONL created %s before any Append", path)
	}
}

func TestJSONLAppendAndReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.jsonl")

	hash64 := strings.Repeat("1", 63) + "a"

	j, err := NewJSONL(path)
	if err != nil {
		t.Fatalf("NewJSONL: %v", err)
	}
	if err := j.Append(validEvent("e1", hash64)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	reloaded, err := NewJSONL(path)
	if err != nil {
		t.Fatalf("NewJSONL reload: %v", err)
	}
	events, err := reloaded.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 1 || events[0].EventID != "e1" {
		t.Fatalf("ReadAll after reload = %+v, want [e1]", events)
	}
}

func TestJSONLSkipsCorruptLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ledger.jsonl")

	hash64 := strings.Repeat("2", 63) + "b"
	good := validEvent("e1", hash64)
	goodLine, err := marshalLine(good)
	if err != nil {
		t.Fatalf("marshalLine: %v", err)
	}

	content := goodLine + "not valid json\n" + `{"event_id":"e2"}` + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	j, err := NewJSONL(path)
	if err != nil {
		t.Fatalf("NewJSONL: %v", err)
	}
	events, err := j.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 1 || events[0].EventID != "e1" {
		t.Fatalf("ReadAll = %+v, want only the well-formed record e1", events)
	}
}

func TestJSONLLastDigestEmptyIsGenesis(t *testing.T) {
	dir := t.TempDir()
	j, err := NewJSONL(filepath.Join(dir, "ledger.jsonl"))
	if err != nil {
		t.Fatalf("NewJSONL: %v", err)
	}
	got, err := j.LastDigest()
	if err != nil {
		t.Fatalf("LastDigest: %v", err)
	}
	if got != chain.Genesis() {
		t.Errorf("LastDigest on empty store = %s, want genesis", got)
	}
}

func marshalLine(e Event) (string, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(data) + "\n", nil
}
