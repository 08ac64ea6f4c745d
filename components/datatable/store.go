package datatable

import "sync"

// Store holds the records behind a table. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	records []Record
}

// NewStore copies records into a new Store.
func NewStore(records []Record) *Store {
	return &Store{records: append([]Record{}, records...)}
}

// NewDefaultStore returns a Store seeded with DefaultRecords.
func NewDefaultStore() (*Store, error) {
	records, err := DefaultRecords()
	if err != nil {
		return nil, err
	}
	return NewStore(records), nil
}

// All returns a copy of every record in order.
func (s *Store) All() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Record{}, s.records...)
}

// Len reports the number of records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Get returns the record with id.
func (s *Store) Get(id int) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// Remove drops the record with id and reports whether it existed.
func (s *Store) Remove(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

// Filter applies FilterRecords to a snapshot of the store.
func (s *Store) Filter(query string, fields ...string) []Record {
	return FilterRecords(s.All(), query, fields...)
}
