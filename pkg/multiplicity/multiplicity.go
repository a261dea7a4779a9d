// Package multiplicity counts how many times each identifier occurs in a
// dataset. Input is expected grouped by identifier; each maximal run of
// equal consecutive identifiers becomes one Entry. Runs are never sorted or
// merged, so an identifier split across two runs yields two entries.
package multiplicity

// Entry is the number of contiguous occurrences of one identifier.
type Entry struct {
	ID    string `json:"id" yaml:"id"`
	Count int    `json:"count" yaml:"count"`
}

// Index is an ordered list of entries for one dataset.
type Index []Entry

// Builder accumulates identifiers one at a time. Flush must be called after
// the last identifier to emit the trailing run.
type Builder struct {
	entries Index
	current string
	count   int
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add records one occurrence of id.
func (b *Builder) Add(id string) {
	if b.count > 0 && id == b.current {
		b.count++
		return
	}
	b.flushRun()
	b.current = id
	b.count = 1
}

// Flush emits the trailing run and returns the index built so far.
// Calling Flush again without further Adds returns the same index.
func (b *Builder) Flush() Index {
	b.flushRun()
	out := make(Index, len(b.entries))
	copy(out, b.entries)
	return out
}

func (b *Builder) flushRun() {
	if b.count == 0 {
		return
	}
	b.entries = append(b.entries, Entry{ID: b.current, Count: b.count})
	b.count = 0
	b.current = ""
}

// Build indexes ids in order.
func Build(ids []string) Index {
	b := NewBuilder()
	for _, id := range ids {
		b.Add(id)
	}
	return b.Flush()
}

// Total returns the sum of all counts, which equals the number of rows indexed.
func (idx Index) Total() int {
	total := 0
	for _, e := range idx {
		total += e.Count
	}
	return total
}

// Counts returns the total count per identifier, adding together
// identifiers that appear in more than one run.
func (idx Index) Counts() map[string]int {
	counts := make(map[string]int, len(idx))
	for _, e := range idx {
		counts[e.ID] += e.Count
	}
	return counts
}

// Has reports whether id appears in the index.
func (idx Index) Has(id string) bool {
	for _, e := range idx {
		if e.ID == id {
			return true
		}
	}
	return false
}

// IDs returns the distinct identifiers in first-appearance order.
func (idx Index) IDs() []string {
	seen := make(map[string]bool, len(idx))
	var ids []string
	for _, e := range idx {
		if !seen[e.ID] {
			seen[e.ID] = true
			ids = append(ids, e.ID)
		}
	}
	return ids
}

// Retain returns a new index holding the entries keep accepts, in order.
// The receiver is not modified.
func (idx Index) Retain(keep func(Entry) bool) Index {
	out := make(Index, 0, len(idx))
	for _, e := range idx {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
