package reconcile

import (
	"fmt"

	"github.com/agentstation/betaox/pkg/multiplicity"
)

// Result represents the outcome of reconciling two multiplicity indexes
type Result struct {
	// XRay is the X-ray index restricted to shared identifiers
	XRay multiplicity.Index

	// Optical is the optical index restricted to shared identifiers
	Optical multiplicity.Index

	// TotalPossible is the number of pairings a perfect matcher would produce
	TotalPossible int

	// Stats about the identifiers removed
	Stats Statistics
}

// Statistics contains statistics about a reconciliation
type Statistics struct {
	// Entry counts before and after disjoint identifiers were removed
	XRayBefore    int `json:"xray_before" yaml:"xray_before"`
	XRayAfter     int `json:"xray_after" yaml:"xray_after"`
	OpticalBefore int `json:"optical_before" yaml:"optical_before"`
	OpticalAfter  int `json:"optical_after" yaml:"optical_after"`

	// Disjoint identifiers removed from each index
	RemovedFromXRay    []string `json:"removed_from_xray" yaml:"removed_from_xray"`
	RemovedFromOptical []string `json:"removed_from_optical" yaml:"removed_from_optical"`
}

// PruneResult summarizes the removal of X-ray identifiers without a spectral index.
type PruneResult struct {
	Before  int      `json:"before" yaml:"before"`
	After   int      `json:"after" yaml:"after"`
	Removed []string `json:"removed" yaml:"removed"`
}

// Row is one shared identifier with its multiplicity in each dataset.
type Row struct {
	ID       string `json:"id" yaml:"id"`
	XRay     int    `json:"xray" yaml:"xray"`
	Optical  int    `json:"optical" yaml:"optical"`
	Possible int    `json:"possible" yaml:"possible"`
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	if r.TotalPossible == 0 {
		return fmt.Sprintf("No possible pairings (%d X-ray and %d optical identifiers disjoint)",
			len(r.Stats.RemovedFromXRay), len(r.Stats.RemovedFromOptical))
	}
	return fmt.Sprintf("%d possible pairings across %d shared identifiers (%d X-ray and %d optical identifiers disjoint)",
		r.TotalPossible, len(r.XRay.Counts()), len(r.Stats.RemovedFromXRay), len(r.Stats.RemovedFromOptical))
}
