/*
store.go - The date -> record mapping

PURPOSE:
  Store owns the attendance map. It is the single authority for record
  reads and writes; all derived state (statistics, rest credits, rollover)
  is recomputed from its current snapshot.

CONTRACT:
  - Get(key):        stored record or the synthesized default; never fails
  - Set(key, rec):   replaces the record wholesale
  - SetMany(keys, t): replaces every listed record with a copy of t
  - Clear():         empties the mapping

PERSISTENCE:
  The store is loaded from the injected adapter at construction and flushed
  after every mutation. A failed flush is logged, never fatal: the in-memory
  map stays authoritative for the rest of the session.

VERSIONING:
  Every mutation bumps a version counter. Aggregation caches key their
  entries on this counter, so derived results can never outlive the
  snapshot they were computed from.

SEE ALSO:
  - editor.go: the only interactive mutation path
  - store/adapter.go: the persistence contract
*/
package ledger

import (
	"log/slog"
	"sync"

	"github.com/shiftledger/attendance-engine/store"
)

// Store holds the per-day attendance records.
type Store struct {
	mu      sync.RWMutex
	records map[DateKey]DayRecord
	version uint64

	persist store.Adapter // nil means in-memory only
	log     *slog.Logger
}

// Open builds a store backed by the given adapter. A nil adapter yields a
// purely in-memory store. A malformed persisted attendance field falls back
// to an empty map; startup never fails on corrupt data.
func Open(adapter store.Adapter, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{
		records: make(map[DateKey]DayRecord),
		persist: adapter,
		log:     logger.With("component", "ledger"),
	}
	if adapter != nil {
		var loaded map[DateKey]DayRecord
		ok, err := adapter.Load(store.FieldAttendance, &loaded)
		switch {
		case err != nil:
			s.log.Warn("attendance field unreadable, starting empty", "error", err)
		case ok && loaded != nil:
			s.records = loaded
		}
	}
	return s
}

// Get returns the record for the key, synthesizing the default when absent.
func (s *Store) Get(key DateKey) DayRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records[key]
}

// Contains reports whether a record is materialized for the key.
func (s *Store) Contains(key DateKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.records[key]
	return ok
}

// Set replaces the record for key wholesale.
func (s *Store) Set(key DateKey, rec DayRecord) {
	s.mu.Lock()
	s.records[key] = rec
	s.version++
	s.mu.Unlock()
	s.flush()
}

// SetMany replaces the record for every key with an independent copy of
// template. Keys not previously present become new entries.
func (s *Store) SetMany(keys []DateKey, template DayRecord) {
	s.mu.Lock()
	for _, k := range keys {
		s.records[k] = template
	}
	s.version++
	s.mu.Unlock()
	s.flush()
}

// Clear empties the store.
func (s *Store) Clear() {
	s.mu.Lock()
	s.records = make(map[DateKey]DayRecord)
	s.version++
	s.mu.Unlock()
	s.flush()
}

// Replace swaps the whole mapping, used by restore. The map is copied.
func (s *Store) Replace(records map[DateKey]DayRecord) {
	next := make(map[DateKey]DayRecord, len(records))
	for k, v := range records {
		next[k] = v
	}
	s.mu.Lock()
	s.records = next
	s.version++
	s.mu.Unlock()
	s.flush()
}

// Records returns a copy of the mapping for iteration.
func (s *Store) Records() map[DateKey]DayRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[DateKey]DayRecord, len(s.records))
	for k, v := range s.records {
		out[k] = v
	}
	return out
}

// Len returns the number of materialized records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Version returns the mutation counter. It increases on every
// Set/SetMany/Clear/Replace, so equal versions imply identical snapshots.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// EarliestYear returns the minimum year present in any record key.
// ok is false when the store is empty or holds only malformed keys.
func (s *Store) EarliestYear() (year int, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k := range s.records {
		y := k.Year()
		if y == 0 {
			continue
		}
		if !ok || y < year {
			year, ok = y, true
		}
	}
	return year, ok
}

func (s *Store) flush() {
	if s.persist == nil {
		return
	}
	if err := s.persist.Save(store.FieldAttendance, s.Records()); err != nil {
		s.log.Error("attendance flush failed, in-memory state remains authoritative", "error", err)
	}
}
