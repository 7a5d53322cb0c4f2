package hashtable

import (
	"sync"
	"sync/atomic"
)

// waySize is the associativity of each bucket: up to 4 positions sharing
// the same index race for a slot, replaced by date/depth/selectivity/cost.
const waySize = 4

// bucket is a small lock-free-for-readers slot: readers spin on a
// sequence counter (even = quiescent, odd = write in progress) the way
// a seqlock does, rather than taking a mutex on the hot probe path.
// writeMu serializes the writers themselves (spec.md §5: "Bucket
// writes are serialized per bucket") — without it, two concurrent
// writers' seq.Add(1) calls can both land on odd (or both flip back to
// even while the other is still mutating entries), breaking the
// seqlock invariant and tearing entries written by two goroutines at
// once.
type bucket struct {
	seq     atomic.Uint32
	writeMu sync.Mutex
	entries [waySize]Entry
}

func (bk *bucket) init() {
	e := emptyEntry()
	for i := range bk.entries {
		bk.entries[i] = e
	}
}

// load takes a consistent snapshot of the bucket, retrying if a writer
// was in the middle of mutating it.
func (bk *bucket) load() [waySize]Entry {
	for {
		s1 := bk.seq.Load()
		if s1&1 != 0 {
			continue
		}
		snap := bk.entries
		s2 := bk.seq.Load()
		if s1 == s2 {
			return snap
		}
	}
}

// mutate runs fn against the bucket's entries under the seqlock's write
// half: readers see either the pre- or post-image, never a torn one.
// writeMu ensures only one goroutine ever holds the odd (write-in-
// progress) half of the sequence counter at a time.
func (bk *bucket) mutate(fn func(entries *[waySize]Entry)) {
	bk.writeMu.Lock()
	defer bk.writeMu.Unlock()

	bk.seq.Add(1) // now odd: writers in progress
	fn(&bk.entries)
	bk.seq.Add(1) // back to even
}
