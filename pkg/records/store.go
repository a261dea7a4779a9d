package records

// Store is an ordered collection of records. Order is file order and is
// significant: the temporal matcher walks it with a cursor.
type Store struct {
	records []Record
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// NewStoreFrom creates a store holding copies of recs.
func NewStoreFrom(recs ...Record) *Store {
	s := &Store{records: make([]Record, len(recs))}
	copy(s.records, recs)
	return s
}

// Add appends a record and returns its position.
func (s *Store) Add(r Record) int {
	s.records = append(s.records, r)
	return len(s.records) - 1
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// At returns the record at position i for in-place mutation.
func (s *Store) At(i int) *Record {
	return &s.records[i]
}

// All returns a copy of the records in order.
func (s *Store) All() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// IDs returns the identifier of every record in order.
func (s *Store) IDs() []string {
	ids := make([]string, len(s.records))
	for i := range s.records {
		ids[i] = s.records[i].ID
	}
	return ids
}

// Each calls fn with every record in order.
func (s *Store) Each(fn func(i int, r *Record)) {
	for i := range s.records {
		fn(i, &s.records[i])
	}
}

// HasSpectralIndex reports whether any record with the given identifier
// has a spectral index attached.
func (s *Store) HasSpectralIndex(id string) bool {
	for i := range s.records {
		if s.records[i].ID == id && s.records[i].HasSpectralIndex() {
			return true
		}
	}
	return false
}

// Contains reports whether any record has the given identifier.
func (s *Store) Contains(id string) bool {
	for i := range s.records {
		if s.records[i].ID == id {
			return true
		}
	}
	return false
}

// FullyPopulated returns copies of the records with an optical frequency.
func (s *Store) FullyPopulated() []Record {
	return s.filter(func(r *Record) bool { return r.IsFullyPopulated() })
}

// Unpopulated returns copies of the records still without an optical frequency.
func (s *Store) Unpopulated() []Record {
	return s.filter(func(r *Record) bool { return !r.IsFullyPopulated() })
}

func (s *Store) filter(keep func(*Record) bool) []Record {
	var out []Record
	for i := range s.records {
		if keep(&s.records[i]) {
			out = append(out, s.records[i])
		}
	}
	return out
}
