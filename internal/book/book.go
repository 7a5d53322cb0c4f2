// Package book implements a minimal opening-book lookup, the
// narrowly-scoped supplement to the "book lookup is assumed" external
// collaborator named in spec.md §1. It is deliberately read-only: no
// book-building or merging algorithm is implemented.
package book

import (
	"encoding/binary"
	"io"
	"math/rand"
	"os"
	"sort"
)

// Entry is a single book move for a position: the square to play and a
// relative weight used for weighted-random move choice among several
// book moves for the same position.
type Entry struct {
	Move   int8
	Weight uint16
}

// Book maps a canonical position fingerprint (board.CanonicalKey) to
// the book moves recorded for it.
type Book struct {
	entries map[uint64][]Entry
}

// New creates an empty book.
func New() *Book {
	return &Book{entries: make(map[uint64][]Entry)}
}

// Load reads a book file from disk.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader parses the book's binary layout, structurally identical
// to Polyglot's fixed 16-byte record:
//
//	8 bytes: position fingerprint (big-endian uint64)
//	1 byte:  move square, 0-63 (-1/pass entries are never stored)
//	2 bytes: weight (big-endian uint16)
//	5 bytes: reserved, ignored
//
// A fingerprint may repeat across consecutive records; all of its
// entries accumulate under the same key.
func LoadReader(r io.Reader) (*Book, error) {
	b := New()
	var rec [16]byte
	for {
		_, err := io.ReadFull(r, rec[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		key := binary.BigEndian.Uint64(rec[0:8])
		square := int8(rec[8])
		weight := binary.BigEndian.Uint16(rec[9:11])
		if square < 0 || square > 63 {
			continue
		}
		b.entries[key] = append(b.entries[key], Entry{Move: square, Weight: weight})
	}
	return b, nil
}

// Save writes b back out in the LoadReader layout, for tools that
// build a book offline and want to hand it to the engine unchanged.
func Save(path string, b *Book) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return SaveWriter(f, b)
}

// SaveWriter writes every entry in an unspecified but stable order
// (sorted by key, then by descending weight) so two saves of the same
// book produce byte-identical output.
func SaveWriter(w io.Writer, b *Book) error {
	if b == nil {
		return nil
	}
	keys := make([]uint64, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var rec [16]byte
	for _, key := range keys {
		entries := append([]Entry(nil), b.entries[key]...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Weight > entries[j].Weight })
		for _, e := range entries {
			binary.BigEndian.PutUint64(rec[0:8], key)
			rec[8] = byte(e.Move)
			binary.BigEndian.PutUint16(rec[9:11], e.Weight)
			for i := 11; i < 16; i++ {
				rec[i] = 0
			}
			if _, err := w.Write(rec[:]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Lookup returns a book move for the position with the given
// canonical fingerprint, chosen by weighted random selection among the
// entries recorded for it. ok is false when the book has nothing for
// this position, including when b is nil.
func (b *Book) Lookup(hash uint64) (move int8, ok bool) {
	if b == nil {
		return -1, false
	}
	entries, found := b.entries[hash]
	if !found || len(entries) == 0 {
		return -1, false
	}

	var total uint32
	for _, e := range entries {
		total += uint32(e.Weight)
	}
	if total == 0 {
		return entries[0].Move, true
	}

	r := rand.Uint32() % total
	var cumulative uint32
	for _, e := range entries {
		cumulative += uint32(e.Weight)
		if r < cumulative {
			return e.Move, true
		}
	}
	return entries[len(entries)-1].Move, true
}

// LookupAll returns every book move recorded for hash, sorted by
// descending weight, for callers (e.g. a protocol "book moves" query)
// that want the full ranking rather than one weighted pick.
func (b *Book) LookupAll(hash uint64) []Entry {
	if b == nil {
		return nil
	}
	entries, ok := b.entries[hash]
	if !ok {
		return nil
	}
	result := append([]Entry(nil), entries...)
	sort.Slice(result, func(i, j int) bool { return result[i].Weight > result[j].Weight })
	return result
}

// Add appends a book move for hash (an existing entry for the same move
// is not merged or replaced), for tests and small offline
// book-construction scripts; not exposed as an engine-facing API.
func (b *Book) Add(hash uint64, move int8, weight uint16) {
	b.entries[hash] = append(b.entries[hash], Entry{Move: move, Weight: weight})
}

// Size returns the number of distinct positions recorded.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
