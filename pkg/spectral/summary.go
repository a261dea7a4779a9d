package spectral

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/agentstation/betaox/pkg/records"
)

// Summary describes the distribution of derived indexes.
type Summary struct {
	Count  int     `json:"count" yaml:"count"`
	Mean   float64 `json:"mean" yaml:"mean"`
	StdDev float64 `json:"stddev" yaml:"stddev"`
	Min    float64 `json:"min" yaml:"min"`
	Max    float64 `json:"max" yaml:"max"`
}

// Summarize returns statistics of the derived index over the fully
// populated records. StdDev is zero for fewer than two records.
func Summarize(recs []records.Record) Summary {
	values := make([]float64, 0, len(recs))
	for i := range recs {
		if recs[i].IsFullyPopulated() {
			values = append(values, recs[i].BetaOX.Value)
		}
	}

	s := Summary{Count: len(values)}
	if s.Count == 0 {
		return s
	}
	s.Mean = stat.Mean(values, nil)
	if s.Count > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	s.Min = floats.Min(values)
	s.Max = floats.Max(values)
	return s
}
