package book

import (
	"bytes"
	"testing"
)

func TestLookupMissOnEmptyBook(t *testing.T) {
	b := New()
	move, ok := b.Lookup(0x1234)
	if ok {
		t.Error("expected a miss on an empty book")
	}
	if move != -1 {
		t.Errorf("expected move -1 on miss, got %d", move)
	}
}

func TestLookupReturnsTheOnlyEntry(t *testing.T) {
	b := New()
	b.Add(0xabcd, 19, 50)

	move, ok := b.Lookup(0xabcd)
	if !ok {
		t.Fatal("expected a hit")
	}
	if move != 19 {
		t.Errorf("Lookup = %d, want 19", move)
	}
}

func TestLookupAllSortsByDescendingWeight(t *testing.T) {
	b := New()
	b.Add(0x1, 20, 10)
	b.Add(0x1, 21, 90)
	b.Add(0x1, 22, 50)

	entries := b.LookupAll(0x1)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Weight < entries[i].Weight {
			t.Errorf("entries not sorted by descending weight: %v", entries)
		}
	}
	if entries[0].Move != 21 {
		t.Errorf("expected heaviest entry's move to be 21, got %d", entries[0].Move)
	}
}

func TestLookupWithoutWeightsPicksFirstDeterministically(t *testing.T) {
	b := New()
	b.Add(0x1, 44, 0)

	move, ok := b.Lookup(0x1)
	if !ok || move != 44 {
		t.Errorf("Lookup with all-zero weight = (%d, %v), want (44, true)", move, ok)
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	b := New()
	b.Add(0x1122334455667788, 37, 120)
	b.Add(0x1122334455667788, 44, 30)
	b.Add(0xdeadbeefcafef00d, 19, 255)

	var buf bytes.Buffer
	if err := SaveWriter(&buf, b); err != nil {
		t.Fatalf("SaveWriter: %v", err)
	}

	loaded, err := LoadReader(&buf)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if loaded.Size() != b.Size() {
		t.Fatalf("Size = %d, want %d", loaded.Size(), b.Size())
	}

	got := loaded.LookupAll(0x1122334455667788)
	if len(got) != 2 || got[0].Move != 37 || got[0].Weight != 120 {
		t.Errorf("unexpected round-tripped entries: %+v", got)
	}
}

func TestLoadReaderSkipsMalformedSquares(t *testing.T) {
	var buf bytes.Buffer
	var rec [16]byte
	rec[8] = 200 // out of the 0-63 square range
	buf.Write(rec[:])

	b, err := LoadReader(&buf)
	if err != nil {
		t.Fatalf("LoadReader: %v", err)
	}
	if b.Size() != 0 {
		t.Errorf("expected the malformed record to be skipped, got size %d", b.Size())
	}
}

func TestLookupOnNilBookIsAMiss(t *testing.T) {
	var b *Book
	if _, ok := b.Lookup(1); ok {
		t.Error("expected a nil book to report a miss")
	}
	if b.Size() != 0 {
		t.Errorf("expected a nil book's Size to be 0, got %d", b.Size())
	}
}
