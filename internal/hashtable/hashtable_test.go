package hashtable

import (
	"sync"
	"testing"
)

func TestProbeMissOnEmptyTable(t *testing.T) {
	tb := New("test", 4)
	if _, ok := tb.Probe(0x1234); ok {
		t.Fatalf("expected miss on empty table")
	}
}

func TestStoreThenProbeExact(t *testing.T) {
	tb := New("test", 4)
	hash := uint64(0xABCDEF0123456789)
	tb.Store(hash, 10, 0, 5, -64, 64, 12, 20)

	e, ok := tb.Probe(hash)
	if !ok {
		t.Fatalf("expected hit after store")
	}
	if e.Lower != 12 || e.Upper != 12 {
		t.Errorf("exact score not pinned: lower=%d upper=%d", e.Lower, e.Upper)
	}
	if e.Move[0] != 20 {
		t.Errorf("move hint = %d, want 20", e.Move[0])
	}
}

func TestStoreFailHighTightensLowerOnly(t *testing.T) {
	tb := New("test", 4)
	hash := uint64(0x1111)
	tb.Store(hash, 8, 0, 1, -10, 10, 10, 5) // score==beta -> fail high

	e, _ := tb.Probe(hash)
	if e.Lower != 10 {
		t.Errorf("lower = %d, want 10", e.Lower)
	}
	if e.Upper != ScoreMax {
		t.Errorf("upper = %d, want untouched ScoreMax", e.Upper)
	}
}

func TestStoreFailLowTightensUpperOnly(t *testing.T) {
	tb := New("test", 4)
	hash := uint64(0x2222)
	tb.Store(hash, 8, 0, 1, -10, 10, -10, 5) // score==alpha -> fail low

	e, _ := tb.Probe(hash)
	if e.Upper != -10 {
		t.Errorf("upper = %d, want -10", e.Upper)
	}
	if e.Lower != ScoreMin {
		t.Errorf("lower = %d, want untouched ScoreMin", e.Lower)
	}
}

// TestReplacementPrefersStaleOverDeep reproduces the spec's hash
// replacement scenario: a bucket is filled to capacity in one
// generation, then NewGame() is called and a shallow fresh write must
// still find a slot by evicting exactly one stale entry, even though
// the stale entries were searched far deeper.
func TestReplacementPrefersStaleOverDeep(t *testing.T) {
	tb := New("test", 4) // 16 buckets, 4-way
	// Pick hashes that collide into the same bucket: identical low bits,
	// distinct lock (bits 32-63) so they occupy distinct ways.
	base := uint64(0x0000000000000003) // bucket index fixed at 3
	hashes := make([]uint64, waySize)
	for i := range hashes {
		hashes[i] = base | (uint64(i+1) << 32)
	}

	for i, h := range hashes {
		tb.Store(h, 20+i, 0, 1, -64, 64, 1, -1) // deep, current generation
	}
	tb.NewGame() // everything above is now "stale"

	newHash := base | (uint64(99) << 32)
	tb.Store(newHash, 1, 0, 1, -64, 64, 2, -1) // shallow, but current generation

	if _, ok := tb.Probe(newHash); !ok {
		t.Fatalf("expected the new, current-generation entry to find a slot")
	}

	survivors := 0
	for _, h := range hashes {
		if _, ok := tb.Probe(h); ok {
			survivors++
		}
	}
	if survivors != waySize-1 {
		t.Errorf("expected exactly %d of the %d stale entries to survive, got %d", waySize-1, waySize, survivors)
	}
}

func TestMergeUpdatesSameLockEntryInPlace(t *testing.T) {
	tb := New("test", 4)
	hash := uint64(0x5555)
	tb.Store(hash, 4, 0, 1, -64, 64, 0, 7)
	tb.Store(hash, 10, 0, 1, -64, 64, 3, 9) // deeper re-search, same position

	e, ok := tb.Probe(hash)
	if !ok {
		t.Fatalf("expected hit")
	}
	if e.Depth != 10 {
		t.Errorf("depth = %d, want upgraded to 10", e.Depth)
	}
	if e.Move[0] != 9 || e.Move[1] != 7 {
		t.Errorf("move hints = %v, want [9 7]", e.Move)
	}
}

func TestConcurrentProbeDuringStoreNeverTorn(t *testing.T) {
	tb := New("test", 6)
	hash := uint64(0x77777777)
	tb.Store(hash, 5, 0, 1, -64, 64, 2, 3)

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			tb.Store(hash, 5, 0, 1, -64, 64, 2, 3)
		}
		close(stop)
	}()
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			if e, ok := tb.Probe(hash); ok && e.Lower > e.Upper {
				t.Errorf("observed torn entry: %+v", e)
			}
		}
	}()
	wg.Wait()
}
