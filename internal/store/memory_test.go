package store

import (
	"testing"

	"github.com/trailproof/trailproof/internal/chain"
)

func TestMemoryLastDigestEmptyIsGenesis(t *testing.T) {
	m := NewMemory()
	got, err := m.LastDigest()
	if err != nil {
		t.Fatalf("LastDigest: %v", err)
	}
	if got != chain.Genesis() {
		t.Errorf("LastDigest on empty store = %s, want genesis", got)
	}
}

func TestMemoryAppendAndReadAll(t *testing.T) {
	m := NewMemory()
	if err := m.Append(Event{EventID: "e1"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := m.Append(Event{EventID: "e2"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	events, err := m.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(events) != 2 || events[0].EventID != "e1" || events[1].EventID != "e2" {
		t.Fatalf("ReadAll = %+v, want [e1, e2] in insertion order", events)
	}
}

func TestMemoryReadAllIsDefensiveCopy(t *testing.T) {
	m := NewMemory()
	_ = m.Append(Event{EventID: "e1"})

	events, _ := m.ReadAll()
	events[0].EventID = "mutated"

	again, _ := m.ReadAll()
	if again[0].EventID != "e1" {
		t.Errorf("mutating a ReadAll result affected internal state: %s", again[0].EventID)
	}
}

func TestMemoryLastDigestFollowsLastAppend(t *testing.T) {
	m := NewMemory()
	_ = m.Append(Event{EventID: "e1", Hash: "hash-1"})
	_ = m.Append(Event{EventID: "e2", Hash: "hash-2"})

	got, err := m.LastDigest()
	if err != nil {
		t.Fatalf("LastDigest: %v", err)
	}
	if got != "hash-2" {
		t.Errorf("LastDigest = %s, want hash-2", got)
	}
}

func TestMemoryCount(t *testing.T) {
	m := NewMemory()
	_ = m.Append(Event{EventID: "e1"})
	_ = m.Append(Event{EventID: "e2"})
	_ = m.Append(Event{EventID: "e3"})

	n, err := m.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 3 {
		t.Errorf("Count = %d, want 3", n)
	}
}
