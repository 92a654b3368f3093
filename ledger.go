package trailproof

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/trailproof/trailproof/internal/assert"
	"github.com/trailproof/trailproof/internal/auth"
	"github.com/trailproof/trailproof/internal/canon"
	"github.com/trailproof/trailproof/internal/chain"
	"github.com/trailproof/trailproof/internal/store"
)

// timestampLayout is the ISO-8601 UTC, millisecond-precision,
// Z-suffixed format every Timestamp field uses.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// Ledger is the facade: it owns a Store, an optional HMAC key, and an
// optional default tenant, and implements Emit/Query/GetTrace/Verify/Flush.
// A Ledger is not safe for concurrent use from multiple goroutines — the
// hash chain requires a strictly serial "read last digest, then append"
// sequence; callers needing concurrency must serialize calls themselves.
type Ledger struct {
	store         store.Store
	key           []byte
	hasKey        bool
	defaultTenant string
	now           func() time.Time
	newEventID    func() string
}

// Option configures a Ledger at construction time.
type Option func(*Ledger)

// WithKey configures a shared HMAC-SHA256 key. Events emitted afterward
// carry a Signature; Verify requires the same key to check them.
func WithKey(key string) Option {
	return func(l *Ledger) {
		l.key = []byte(key)
		l.hasKey = true
	}
}

// WithDefaultTenant supplies the tenant_id Emit uses when a caller omits
// one.
func WithDefaultTenant(tenant string) Option {
	return func(l *Ledger) {
		l.defaultTenant = tenant
	}
}

// WithClock overrides the time source Emit uses to stamp new records.
// Production defaults to time.Now; tests can pin it to a fixed sequence.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithIDGenerator overrides the event_id generator. Production defaults
// to a fresh UUID per call; tests can inject a deterministic sequence.
func WithIDGenerator(gen func() string) Option {
	return func(l *Ledger) {
		l.newEventID = gen
	}
}

// New constructs a Ledger backed by storeKind ("memory" or "jsonl"). path
// is required, and only used, when storeKind is "jsonl". Unknown kinds
// and a missing jsonl path fail with a validation error before any I/O.
func New(storeKind, path string, opts ...Option) (*Ledger, error) {
	l := &Ledger{
		now:        time.Now,
		newEventID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(l)
	}

	switch storeKind {
	case "memory":
		l.store = store.NewMemory()
	case "jsonl":
		if path == "" {
			return nil, newError(KindValidation, "New", fmt.Errorf("jsonl store requires a path"))
		}
		s, err := store.NewJSONL(path)
		if err != nil {
			return nil, newError(KindStore, "New", err)
		}
		l.store = s
	default:
		return nil, newError(KindValidation, "New", fmt.Errorf("unknown store kind %q", storeKind))
	}

	return l, nil
}

// EmitInput carries the caller-supplied fields of a new event. EventType
// and ActorID are required; a nil Payload is stored as an empty map;
// TenantID falls back to the Ledger's default tenant when empty; TraceID
// and SessionID are optional.
type EmitInput struct {
	EventType string
	ActorID   string
	TenantID  string
	Payload   map[string]interface{}
	TraceID   string
	SessionID string
}

// Emit validates in, assigns a fresh event_id and timestamp, links the
// new record to the store's current last digest, signs it if a key is
// configured, appends it, and returns the completed record.
func (l *Ledger) Emit(in EmitInput) (Event, error) {
	tenant := in.TenantID
	if tenant == "" {
		tenant = l.defaultTenant
	}

	if err := assert.Check(in.EventType != "", "event_type must not be empty"); err != nil {
		return Event{}, newError(KindValidation, "Emit", err)
	}
	if err := assert.Check(in.ActorID != "", "actor_id must not be empty"); err != nil {
		return Event{}, newError(KindValidation, "Emit", err)
	}
	if err := assert.Check(tenant != "", "tenant_id must not be empty"); err != nil {
		return Event{}, newError(KindValidation, "Emit", err)
	}

	payload := in.Payload
	if payload == nil {
		payload = map[string]interface{}{}
	}

	prevHash, err := l.store.LastDigest()
	if err != nil {
		return Event{}, newError(KindStore, "Emit", err)
	}

	ev := Event{
		EventID:   l.newEventID(),
		EventType: in.EventType,
		Timestamp: l.now().UTC().Format(timestampLayout),
		ActorID:   in.ActorID,
		TenantID:  tenant,
		Payload:   payload,
		PrevHash:  prevHash,
		TraceID:   in.TraceID,
		SessionID: in.SessionID,
	}

	canonicalBytes, err := canon.Bytes(ev.CanonicalFields())
	if err != nil {
		return Event{}, newError(KindChain, "Emit", err)
	}
	ev.Hash = chain.Compute(prevHash, canonicalBytes)

	if l.hasKey {
		ev.Signature = auth.Sign(l.key, canonicalBytes)
	}

	if err := l.store.Append(ev); err != nil {
		return Event{}, newError(KindStore, "Emit", err)
	}

	return ev, nil
}

// Query forwards filter to the underlying store unchanged.
func (l *Ledger) Query(filter Filter) (QueryResult, error) {
	result, err := l.store.Query(filter)
	if err != nil {
		return QueryResult{}, newError(KindStore, "Query", err)
	}
	return result, nil
}

// GetTrace returns every event carrying traceID, sorted by timestamp
// ascending with ties broken by insertion order (a stable sort over the
// store's insertion-ordered result achieves this).
func (l *Ledger) GetTrace(traceID string) ([]Event, error) {
	result, err := l.store.Query(Filter{TraceID: traceID, Limit: maxTraceWindow})
	if err != nil {
		return nil, newError(KindStore, "GetTrace", err)
	}
	events := result.Events
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})
	return events, nil
}

// maxTraceWindow stands in for "no effective limit": large enough that
// no real trace is ever truncated by pagination.
const maxTraceWindow = 1 << 30

// Verify walks the store from the first record, recomputing each
// record's expected digest from the running predecessor digest. A
// record is broken when its stored hash does not match the recomputed
// digest, its prev_hash does not match the running predecessor, or (with
// a key configured) its signature fails MAC verification. Once index k
// breaks, every later index is reported broken without further
// recomputation — later digests were derived from the now-tampered
// predecessor. If any record carries a signature and no key is
// configured, Verify fails outright rather than silently skipping the
// check.
func (l *Ledger) Verify() (VerificationResult, error) {
	events, err := l.store.ReadAll()
	if err != nil {
		return VerificationResult{}, newError(KindStore, "Verify", err)
	}

	if len(events) == 0 {
		return VerificationResult{Intact: true, Total: 0}, nil
	}

	if l.hasSignedRecord(events) && !l.hasKey {
		return VerificationResult{}, newError(KindSignature, "Verify", fmt.Errorf("records carry signatures but no key is configured"))
	}

	result := VerificationResult{Total: len(events)}
	prevDigest := chain.Genesis()
	broken := false

	for i, e := range events {
		if broken {
			result.Broken = append(result.Broken, i)
			continue
		}

		canonicalBytes, err := canon.Bytes(e.CanonicalFields())
		if err != nil {
			return VerificationResult{}, newError(KindChain, "Verify", err)
		}
		expected := chain.Compute(prevDigest, canonicalBytes)

		recordBroken := expected != e.Hash || e.PrevHash != prevDigest
		if !recordBroken && l.hasKey && e.Signature != "" {
			if err := auth.Verify(l.key, e.Signature, canonicalBytes); err != nil {
				recordBroken = true
			}
		}

		if recordBroken {
			broken = true
			result.Broken = append(result.Broken, i)
			continue
		}

		prevDigest = e.Hash
	}

	result.Intact = len(result.Broken) == 0
	return result, nil
}

func (l *Ledger) hasSignedRecord(events []Event) bool {
	for _, e := range events {
		if e.Signature != "" {
			return true
		}
	}
	return false
}

// Flush surfaces any writes the store has buffered. A no-op for the
// in-memory store.
func (l *Ledger) Flush() error {
	if err := l.store.Flush(); err != nil {
		return newError(KindStore, "Flush", err)
	}
	return nil
}

// Count returns the number of records the store holds.
func (l *Ledger) Count() (int, error) {
	n, err := l.store.Count()
	if err != nil {
		return 0, newError(KindStore, "Count", err)
	}
	return n, nil
}
