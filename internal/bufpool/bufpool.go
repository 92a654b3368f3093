// Package bufpool is a small sync.Pool of scratch byte buffers, adapted
// from the teacher's internal/pool buffer half: the JSONL store's
// per-record encode reuses a buffer instead of allocating one per call.
// Canonical-bytes construction does not use the pool.
package bufpool

import (
	"bytes"
	"sync"
)

// maxBufferSize bounds how large a buffer may grow and still be pooled,
// so one oversized payload does not bloat the pool for every future get.
const maxBufferSize = 1024 * 1024

var pool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// Get acquires a buffer from the pool. Always pair with Put.
func Get() *bytes.Buffer {
	return pool.Get().(*bytes.Buffer)
}

// Put resets b and returns it to the pool. Safe to call with nil.
// Buffers that grew past maxBufferSize are dropped instead of pooled.
func Put(b *bytes.Buffer) {
	if b == nil {
		return
	}
	if b.Cap() > maxBufferSize {
		return
	}
	b.Reset()
	pool.Put(b)
}
