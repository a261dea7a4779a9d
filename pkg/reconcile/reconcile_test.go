package reconcile_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/betaox/pkg/multiplicity"
	"github.com/agentstation/betaox/pkg/reconcile"
	"github.com/agentstation/betaox/pkg/records"
)

func TestReconcileSymmetricDifference(t *testing.T) {
	xray := multiplicity.Index{{ID: "A", Count: 2}, {ID: "B", Count: 3}}
	optical := multiplicity.Index{{ID: "A", Count: 1}, {ID: "C", Count: 4}}

	result := reconcile.Reconcile(xray, optical)

	assert.Equal(t, multiplicity.Index{{ID: "A", Count: 2}}, result.XRay)
	assert.Equal(t, multiplicity.Index{{ID: "A", Count: 1}}, result.Optical)
	assert.Equal(t, 2, result.TotalPossible)
	assert.Equal(t, []string{"B"}, result.Stats.RemovedFromXRay)
	assert.Equal(t, []string{"C"}, result.Stats.RemovedFromOptical)
	assert.Equal(t, 2, result.Stats.XRayBefore)
	assert.Equal(t, 1, result.Stats.XRayAfter)

	// inputs are untouched
	assert.Len(t, xray, 2)
	assert.Len(t, optical, 2)
}

// The indexes below share identifiers but list them in different orders.
// Pairing entries by position would give 2*1 + 3*4 = 14; joining by
// identifier gives 2*4 + 3*1 = 11, which is the count a perfect matcher
// could actually produce.
func TestTotalPossibleJoinsByIdentifier(t *testing.T) {
	xray := multiplicity.Index{{ID: "A", Count: 2}, {ID: "B", Count: 3}}
	optical := multiplicity.Index{{ID: "B", Count: 1}, {ID: "A", Count: 4}}

	assert.Equal(t, 11, reconcile.TotalPossible(xray, optical))
	assert.Equal(t, 11, reconcile.Reconcile(xray, optical).TotalPossible)
}

func TestTotalPossibleSplitRuns(t *testing.T) {
	xray := multiplicity.Build([]string{"A", "B", "A"})
	optical := multiplicity.Build([]string{"A", "A"})

	assert.Equal(t, 4, reconcile.TotalPossible(xray, optical))
}

func TestReconcileEmpty(t *testing.T) {
	result := reconcile.Reconcile(nil, multiplicity.Index{{ID: "A", Count: 1}})
	assert.Equal(t, 0, result.TotalPossible)
	assert.Empty(t, result.Optical)
	assert.Contains(t, result.Summary(), "No possible pairings")
}

func TestRows(t *testing.T) {
	xray := multiplicity.Index{{ID: "B", Count: 3}, {ID: "A", Count: 2}}
	optical := multiplicity.Index{{ID: "A", Count: 1}, {ID: "B", Count: 2}}

	result := reconcile.Reconcile(xray, optical)
	want := []reconcile.Row{
		{ID: "A", XRay: 2, Optical: 1, Possible: 2},
		{ID: "B", XRay: 3, Optical: 2, Possible: 6},
	}
	if diff := cmp.Diff(want, result.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, result.Summary(), "8 possible pairings across 2 shared identifiers")
}

func TestPruneUnindexed(t *testing.T) {
	a1 := records.New("A", 1, 1, 1, 1)
	a2 := records.New("A", 2, 1, 1, 1)
	a2.SetSpectralIndex(0.5, 0.1, 0.1)
	b := records.New("B", 3, 1, 1, 1)
	c := records.New("C", 4, 1, 1, 1)
	c.SetSpectralIndex(0, 0, 0)

	store := records.NewStoreFrom(a1, a2, b, c)
	idx := multiplicity.Build(store.IDs())

	pruned, result := reconcile.PruneUnindexed(idx, store)

	require.Equal(t, multiplicity.Index{{ID: "A", Count: 2}, {ID: "C", Count: 1}}, pruned)
	assert.Equal(t, reconcile.PruneResult{Before: 3, After: 2, Removed: []string{"B"}}, result)
	assert.Len(t, idx, 3, "input index is untouched")
}
