package store

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/trailproof/trailproof/internal/bufpool"
	"github.com/trailproof/trailproof/internal/chain"
	"github.com/trailproof/trailproof/internal/logging"
)

// maxLineSize bounds a single JSONL record so one corrupt or hostile
// line cannot force an unbounded read into memory while scanning.
const maxLineSize = 16 * 1024 * 1024

// JSONL is the durable line-delimited-JSON Store backing described in
// §4.4.3: one record per line, one write-plus-flush per append, and a
// full line-by-line scan at construction that skips and warns on any
// line that fails to parse or fails mandatory-field validation.
//
// Grounded on the teacher's store.DB (construct-against-a-path, append,
// read-all, last-event) for the API shape, and on
// Mindburn-Labs-helm/core/pkg/store/ledger.FileLedger for the
// load-at-construct / mutex-guarded in-memory mirror idiom appropriate
// to a plain file rather than a SQL engine.
type JSONL struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	events []Event
}

// NewJSONL opens path, scanning and validating it if it already exists.
// If path does not exist, no I/O occurs until the first Append, per
// spec.md's "no I/O occurs until the first append" construction rule.
func NewJSONL(path string) (*JSONL, error) {
	j := &JSONL{path: path}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return j, nil
		}
		return nil, fmt.Errorf("statting %s: %w", path, err)
	}

	if err := j.load(); err != nil {
		return nil, err
	}
	return j, nil
}

func (j *JSONL) load() error {
	f, err := os.Open(j.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", j.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	events := make([]Event, 0)
	for idx := 0; scanner.Scan(); idx++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		var e Event
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			logging.Warn("skipping corrupt jsonl line", logging.Fields{
				Component: "store.jsonl", Path: j.path, Line: idx, Error: err.Error(),
			})
			continue
		}
		if err := e.Validate(); err != nil {
			logging.Warn("skipping invalid jsonl record", logging.Fields{
				Component: "store.jsonl", Path: j.path, Line: idx, Error: err.Error(),
			})
			continue
		}
		events = append(events, e)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanning %s: %w", j.path, err)
	}

	j.events = events
	return nil
}

// Append serializes e as standard (non-canonical) JSON, appends one line
// plus a trailing newline, and flushes the write before mirroring e into
// memory. If the write fails, the in-memory mirror is left untouched.
func (j *JSONL) Append(e Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return fmt.Errorf("opening %s: %w", j.path, err)
		}
		j.file = f
	}

	buf := bufpool.Get()
	defer bufpool.Put(buf)

	enc := json.NewEncoder(buf)
	if err := enc.Encode(e); err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	if _, err := j.file.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing record: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("flushing record: %w", err)
	}

	j.events = append(j.events, e)
	return nil
}

// ReadAll returns a defensive copy of every loaded and appended record,
// in insertion order.
func (j *JSONL) ReadAll() ([]Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Event, len(j.events))
	copy(out, j.events)
	return out, nil
}

// Query applies f to a snapshot of the store.
func (j *JSONL) Query(f Filter) (QueryResult, error) {
	all, err := j.ReadAll()
	if err != nil {
		return QueryResult{}, err
	}
	return ApplyFilter(all, f)
}

// LastDigest returns the hash of the most recently appended record, or
// the genesis digest when the store is empty.
func (j *JSONL) LastDigest() (string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if len(j.events) == 0 {
		return chain.Genesis(), nil
	}
	return j.events[len(j.events)-1].Hash, nil
}

// Count returns the number of records held.
func (j *JSONL) Count() (int, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return len(j.events), nil
}

// Flush surfaces any buffered writes to the filesystem. Every append
// already syncs its own line, so this only matters if a future writer
// relaxes that default; kept for callers that explicitly want to force
// durability before reading the file from another process.
func (j *JSONL) Flush() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.file == nil {
		return nil
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("flushing %s: %w", j.path, err)
	}
	return nil
}
