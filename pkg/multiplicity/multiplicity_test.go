package multiplicity_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/agentstation/betaox/pkg/multiplicity"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		ids  []string
		want multiplicity.Index
	}{
		{
			name: "empty",
			ids:  nil,
			want: multiplicity.Index{},
		},
		{
			name: "single row",
			ids:  []string{"A"},
			want: multiplicity.Index{{ID: "A", Count: 1}},
		},
		{
			name: "trailing run is flushed",
			ids:  []string{"A", "A", "B", "B", "B"},
			want: multiplicity.Index{{ID: "A", Count: 2}, {ID: "B", Count: 3}},
		},
		{
			name: "unsorted groups keep file order",
			ids:  []string{"C", "A", "A", "B"},
			want: multiplicity.Index{{ID: "C", Count: 1}, {ID: "A", Count: 2}, {ID: "B", Count: 1}},
		},
		{
			name: "split identifier yields two entries",
			ids:  []string{"A", "B", "A"},
			want: multiplicity.Index{{ID: "A", Count: 1}, {ID: "B", Count: 1}, {ID: "A", Count: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := multiplicity.Build(tt.ids)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Build() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTotalMatchesRowCount(t *testing.T) {
	groupings := [][]int{
		{1},
		{3, 1, 2},
		{5, 5, 5, 5},
		{1, 1, 1, 1, 1, 1, 1},
	}

	for _, sizes := range groupings {
		var ids []string
		for g, n := range sizes {
			for i := 0; i < n; i++ {
				ids = append(ids, fmt.Sprintf("GRB%d", g))
			}
		}
		idx := multiplicity.Build(ids)
		assert.Equal(t, len(ids), idx.Total(), "grouping %v", sizes)
		assert.Len(t, idx, len(sizes))
	}
}

func TestBuilderFlushIsIdempotent(t *testing.T) {
	b := multiplicity.NewBuilder()
	b.Add("A")
	b.Add("A")
	first := b.Flush()
	second := b.Flush()
	assert.Equal(t, first, second)
	assert.Equal(t, 2, first.Total())

	b.Add("B")
	assert.Equal(t, multiplicity.Index{{ID: "A", Count: 2}, {ID: "B", Count: 1}}, b.Flush())
}

func TestCountsAndRetain(t *testing.T) {
	idx := multiplicity.Index{{ID: "A", Count: 1}, {ID: "B", Count: 2}, {ID: "A", Count: 3}}

	assert.Equal(t, map[string]int{"A": 4, "B": 2}, idx.Counts())
	assert.Equal(t, []string{"A", "B"}, idx.IDs())
	assert.True(t, idx.Has("B"))
	assert.False(t, idx.Has("C"))

	kept := idx.Retain(func(e multiplicity.Entry) bool { return e.ID == "A" })
	assert.Equal(t, multiplicity.Index{{ID: "A", Count: 1}, {ID: "A", Count: 3}}, kept)
	assert.Len(t, idx, 3, "Retain must not modify the receiver")
}
