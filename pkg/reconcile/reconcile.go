// Package reconcile establishes the denominators used to report pairing
// success: which identifiers could have paired at all, and how many
// pairings a perfect matcher would have produced.
//
// Multiplicity indexes are treated as values. Every operation returns new
// indexes and leaves its inputs untouched.
package reconcile

import (
	"sort"

	"github.com/agentstation/betaox/pkg/multiplicity"
	"github.com/agentstation/betaox/pkg/records"
)

// PruneUnindexed drops X-ray entries whose identifier has no record with a
// spectral index in xray. It must run before Reconcile so that the
// possible-pairings total only counts identifiers that could ever pair.
func PruneUnindexed(idx multiplicity.Index, xray *records.Store) (multiplicity.Index, PruneResult) {
	eligible := make(map[string]bool)
	xray.Each(func(_ int, r *records.Record) {
		if r.HasSpectralIndex() {
			eligible[r.ID] = true
		}
	})

	kept := idx.Retain(func(e multiplicity.Entry) bool { return eligible[e.ID] })
	return kept, PruneResult{
		Before:  len(idx),
		After:   len(kept),
		Removed: removedIDs(idx, kept),
	}
}

// Reconcile removes identifiers present in only one of the two indexes and
// computes the theoretical maximum number of pairings between them.
func Reconcile(xray, optical multiplicity.Index) *Result {
	opticalIDs := optical.Counts()
	keptXRay := xray.Retain(func(e multiplicity.Entry) bool {
		_, ok := opticalIDs[e.ID]
		return ok
	})

	xrayIDs := keptXRay.Counts()
	keptOptical := optical.Retain(func(e multiplicity.Entry) bool {
		_, ok := xrayIDs[e.ID]
		return ok
	})

	return &Result{
		XRay:    keptXRay,
		Optical: keptOptical,
		Stats: Statistics{
			XRayBefore:         len(xray),
			XRayAfter:          len(keptXRay),
			OpticalBefore:      len(optical),
			OpticalAfter:       len(keptOptical),
			RemovedFromXRay:    removedIDs(xray, keptXRay),
			RemovedFromOptical: removedIDs(optical, keptOptical),
		},
		TotalPossible: TotalPossible(keptXRay, keptOptical),
	}
}

// TotalPossible sums xrayCount(id)*opticalCount(id) over identifiers in
// both indexes. Counts are joined by identifier, so the two indexes need
// not share an order, and split runs of one identifier are added together.
func TotalPossible(xray, optical multiplicity.Index) int {
	opticalCounts := optical.Counts()
	total := 0
	for id, n := range xray.Counts() {
		total += n * opticalCounts[id]
	}
	return total
}

// Rows returns the reconciled indexes joined by identifier, sorted by
// identifier, for display.
func (r *Result) Rows() []Row {
	xc := r.XRay.Counts()
	oc := r.Optical.Counts()
	rows := make([]Row, 0, len(xc))
	for id, n := range xc {
		rows = append(rows, Row{
			ID:       id,
			XRay:     n,
			Optical:  oc[id],
			Possible: n * oc[id],
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

// removedIDs lists the distinct identifiers of before that do not appear in after.
func removedIDs(before, after multiplicity.Index) []string {
	kept := after.Counts()
	var removed []string
	for _, id := range before.IDs() {
		if _, ok := kept[id]; !ok {
			removed = append(removed, id)
		}
	}
	return removed
}
