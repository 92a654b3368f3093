package store

import (
	"sync"

	"github.com/trailproof/trailproof/internal/chain"
)

// Memory is the volatile in-memory Store backing: an ordered slice of
// records, reset on every process restart.
type Memory struct {
	mu     sync.Mutex
	events []Event
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Append adds e to the tail of the store.
func (m *Memory) Append(e Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, e)
	return nil
}

// ReadAll returns a defensive copy of every record in insertion order, so
// callers cannot mutate the store's internal state.
func (m *Memory) ReadAll() ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

// Query applies f to a snapshot of the store.
func (m *Memory) Query(f Filter) (QueryResult, error) {
	all, err := m.ReadAll()
	if err != nil {
		return QueryResult{}, err
	}
	return ApplyFilter(all, f)
}

// LastDigest returns the hash of the most recently appended record, or
// the genesis digest when the store is empty.
func (m *Memory) LastDigest() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) == 0 {
		return chain.Genesis(), nil
	}
	return m.events[len(m.events)-1].Hash, nil
}

// Count returns the number of records held.
func (m *Memory) Count() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events), nil
}

// Flush is a no-op: the in-memory store has nothing buffered.
func (m *Memory) Flush() error {
	return nil
}
