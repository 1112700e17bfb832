// Package dedupe remembers which warning keys have already been reported.
package dedupe

import (
	"context"
	"sync"
)

// defaultMaxSize bounds memory for long-running servers.
const defaultMaxSize = 4096

// Deduper records seen keys so each one is acted on at most once.
type Deduper interface {
	// SeenAndRecord atomically checks if key was seen and records it if not.
	// Returns true if key was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, key string) bool

	// Forget removes key so the next SeenAndRecord reports it as new.
	Forget(ctx context.Context, key string)

	Size() int64
}

// ringDeduper keeps at most maxSize keys. When full, the oldest key is
// evicted first. A non-positive maxSize disables eviction.
type ringDeduper struct {
	mu      sync.Mutex
	seen    map[string]uint64 // key -> sequence of its live slot
	order   []slot            // insertion order, oldest at head
	head    int
	seq     uint64
	maxSize int
}

type slot struct {
	key string
	seq uint64
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &ringDeduper{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]uint64)
	return d
}

func (d *ringDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	d.seq++
	d.seen[key] = d.seq
	if d.maxSize <= 0 {
		return false
	}
	d.order = append(d.order, slot{key: key, seq: d.seq})
	for len(d.seen) > d.maxSize {
		d.evictOldest()
	}
	d.compact()
	return false
}

// Forget leaves the key's slot in order; evictOldest skips it by sequence.
func (d *ringDeduper) Forget(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.seen, key)
}

func (d *ringDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}

// evictOldest drops the oldest live key.
func (d *ringDeduper) evictOldest() {
	for d.head < len(d.order) {
		s := d.order[d.head]
		d.order[d.head] = slot{}
		d.head++
		if seq, ok := d.seen[s.key]; ok && seq == s.seq {
			delete(d.seen, s.key)
			return
		}
	}
}

// compact reclaims consumed slots once they make up half the buffer.
func (d *ringDeduper) compact() {
	if d.head == 0 || d.head < len(d.order)/2 {
		return
	}
	d.order = append(d.order[:0], d.order[d.head:]...)
	d.head = 0
}
