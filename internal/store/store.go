package store

import "sync"

// Record is one stored item: a server-assigned id and the JSON payload the
// client submitted.
type Record struct {
	ID      int `json:"id"`
	Payload any `json:"payload"`
}

// Store is an insertion-ordered in-memory collection of records guarded by a
// single mutex. It is created empty, mutated only under the lock, and never
// persisted.
type Store struct {
	mu      sync.Mutex
	records []Record
	nextID  int
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

// Append adds a record with the given payload and returns its id.
// Ids are assigned from a monotonic counter and are never reused, even after
// deletions.
func (s *Store) Append(payload any) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	s.records = append(s.records, Record{ID: s.nextID, Payload: payload})
	return s.nextID
}

// All returns the records in insertion order. Callers must not mutate the
// returned records.
func (s *Store) All() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id int) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Delete removes the first record with the given id, preserving the order of
// the remaining records. Returns false when no record matches.
func (s *Store) Delete(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
