// Package spectral computes the cross-band spectral index between the
// X-ray and optical bands of a fully paired record.
package spectral

import (
	"math"

	"github.com/agentstation/betaox/pkg/records"
)

// Degenerate flags which of the three computed quantities were non-finite
// and clamped to zero.
type Degenerate struct {
	Value bool
	Upper bool
	Lower bool
}

// Any reports whether any quantity was clamped.
func (d Degenerate) Any() bool {
	return d.Value || d.Upper || d.Lower
}

// Count returns the number of clamped quantities.
func (d Degenerate) Count() int {
	n := 0
	for _, b := range []bool{d.Value, d.Upper, d.Lower} {
		if b {
			n++
		}
	}
	return n
}

// Compute returns the spectral index between an X-ray flux fx (uncertainty
// sx) at freqX and an optical flux fo (uncertainty so) at freqO:
//
//	value = log(fx/fo) / log(freqX/freqO)
//	upper = log((1 + sx/fx) / (1 - so/fo)) / log(freqX/freqO)
//	lower = |log((1 - sx/fx) / (1 + so/fo)) / log(freqX/freqO)|
//
// Any non-finite result is replaced by zero and flagged in Degenerate.
func Compute(fx, sx, fo, so, freqX, freqO float64) (records.Derived, Degenerate) {
	span := math.Log(freqX / freqO)

	value := math.Log(fx/fo) / span
	upper := math.Log((1+sx/fx)/(1-so/fo)) / span
	lower := math.Abs(math.Log((1-sx/fx)/(1+so/fo)) / span)

	var d Degenerate
	value, d.Value = clamp(value)
	upper, d.Upper = clamp(upper)
	lower, d.Lower = clamp(lower)

	return records.Derived{Value: value, Upper: upper, Lower: lower}, d
}

// ForRecord computes the index of a fully populated record. It reports
// false without computing anything when r has no optical frequency.
func ForRecord(r *records.Record) (records.Derived, Degenerate, bool) {
	if !r.IsFullyPopulated() {
		return records.Derived{}, Degenerate{}, false
	}
	freqO, _ := r.FrequencyOptical.Get()
	d, deg := Compute(
		r.XRay.Flux, r.XRay.Sigma,
		r.Optical.Flux, r.Optical.Sigma,
		r.FrequencyXRay, freqO,
	)
	return d, deg, true
}

func clamp(v float64) (float64, bool) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, true
	}
	return v, false
}

// Rate returns 100*numerator/denominator. It reports false when the
// denominator is zero, which callers present as "no data".
func Rate(numerator, denominator int) (float64, bool) {
	if denominator == 0 {
		return 0, false
	}
	return 100 * float64(numerator) / float64(denominator), true
}
