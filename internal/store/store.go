package store

import (
	"encoding/binary"
	"encoding/json"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/hailam/edaxgo/internal/config"
)

const (
	keyHashConfig = "hash_config"
	keyStats      = "search_stats"
	pvKeyPrefix   = "pv:"
)

// Stats accumulates search activity across runs, the same "persistent
// tally updated after each unit of work" shape as the teacher's
// GameStats, retargeted from completed games to completed searches.
type Stats struct {
	SearchesRun     int           `json:"searches_run"`
	TotalNodes      uint64        `json:"total_nodes"`
	TotalSearchTime time.Duration `json:"total_search_time"`
	DeepestDepth    int           `json:"deepest_depth"`
}

func newStats() *Stats { return &Stats{} }

// PVEntry is one cross-process principal-variation snapshot record.
type PVEntry struct {
	Move  int8
	Score int
}

// Store wraps BadgerDB for the engine's local persistence, mirroring
// the teacher's Storage wrapper in internal/storage/storage.go.
type Store struct {
	db *badger.DB
}

// Open opens (creating if necessary) the engine's database in the
// platform data directory, with ZSTD value-log compression the way
// the teacher's storage layer can be configured.
func Open() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return OpenAt(dir)
}

// OpenAt opens the database at an explicit directory, used by tests
// and by callers that want an isolated data directory.
func OpenAt(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithCompression(options.ZSTD)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveHashConfig persists the hash-table sizing and worker count the
// engine was run with, so a restart can reopen tables at the same
// size rather than falling back to defaults.
func (s *Store) SaveHashConfig(cfg config.HashConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyHashConfig), data)
	})
}

// LoadHashConfig loads the persisted hash configuration, or
// config.DefaultHashConfig() if none has been saved yet.
func (s *Store) LoadHashConfig() (config.HashConfig, error) {
	cfg := config.DefaultHashConfig()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyHashConfig))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &cfg)
		})
	})
	return cfg, err
}

// LoadStats loads the cumulative search statistics, or an empty Stats
// if none have been recorded yet.
func (s *Store) LoadStats() (*Stats, error) {
	stats := newStats()
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})
	return stats, err
}

func (s *Store) saveStats(stats *Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// RecordSearch folds one completed search's totals into the
// cumulative statistics.
func (s *Store) RecordSearch(nodes uint64, elapsed time.Duration, depth int) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}
	stats.SearchesRun++
	stats.TotalNodes += nodes
	stats.TotalSearchTime += elapsed
	if depth > stats.DeepestDepth {
		stats.DeepestDepth = depth
	}
	return s.saveStats(stats)
}

// SavePV records a principal-variation result for a canonical board
// fingerprint (board.CanonicalKey), the "keep date" persistence option
// extended to survive process restarts: a later run started from the
// same position can read this move back with LoadPV (the shell reports
// it as a hint; the search itself does not use it).
func (s *Store) SavePV(fingerprint uint64, entry PVEntry) error {
	key := make([]byte, len(pvKeyPrefix)+8)
	copy(key, pvKeyPrefix)
	binary.BigEndian.PutUint64(key[len(pvKeyPrefix):], fingerprint)

	val := make([]byte, 9)
	val[0] = byte(entry.Move)
	binary.BigEndian.PutUint64(val[1:], uint64(int64(entry.Score)))

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

// LoadPV looks up a previously saved principal-variation entry for a
// board fingerprint.
func (s *Store) LoadPV(fingerprint uint64) (PVEntry, bool, error) {
	key := make([]byte, len(pvKeyPrefix)+8)
	copy(key, pvKeyPrefix)
	binary.BigEndian.PutUint64(key[len(pvKeyPrefix):], fingerprint)

	var entry PVEntry
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			if len(val) != 9 {
				return nil
			}
			entry = PVEntry{
				Move:  int8(val[0]),
				Score: int(int64(binary.BigEndian.Uint64(val[1:]))),
			}
			found = true
			return nil
		})
	})
	return entry, found, err
}
