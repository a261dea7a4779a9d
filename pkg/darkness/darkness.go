// Package darkness classifies paired bursts as optically dark.
//
// Two criteria are supported. Jakobsson et al. (2004) call a burst dark when
// its cross-band index is shallower than 0.5. van der Horst et al. (2009)
// call it dark when the cross-band index is shallower than the X-ray index
// minus 0.5. Both measure a signed distance D from the dark boundary; a
// pairing is dark when D is positive.
package darkness

import (
	"fmt"
	"math"
	"strings"

	"github.com/agentstation/betaox/pkg/constants"
	"github.com/agentstation/betaox/pkg/records"
)

// Method selects a darkness criterion.
type Method string

const (
	Jakobsson   Method = "jakobsson"
	VanDerHorst Method = "vanderhorst"
)

// Methods lists the supported criteria.
func Methods() []Method {
	return []Method{Jakobsson, VanDerHorst}
}

// Label returns the criterion name used in file names and titles.
func (m Method) Label() string {
	switch m {
	case Jakobsson:
		return "Jakobsson"
	case VanDerHorst:
		return "VanDerHorst"
	}
	return string(m)
}

// ParseMethod parses a criterion name, ignoring case.
func ParseMethod(s string) (Method, error) {
	switch Method(strings.ToLower(strings.TrimSpace(s))) {
	case Jakobsson, "jak":
		return Jakobsson, nil
	case VanDerHorst, "van-der-horst", "vdh":
		return VanDerHorst, nil
	}
	return "", fmt.Errorf("unknown darkness method %q", s)
}

// Pairing is one X-ray/optical pairing as reported in the terse table.
// Times are in hours.
type Pairing struct {
	ID          string  `json:"id" yaml:"id"`
	DtXRay      float64 `json:"dt_xray_hr" yaml:"dt_xray_hr"`
	DtOptical   float64 `json:"dt_optical_hr" yaml:"dt_optical_hr"`
	Separation  float64 `json:"dt_hr" yaml:"dt_hr"`
	BetaX       float64 `json:"beta_x" yaml:"beta_x"`
	BetaXUpper  float64 `json:"beta_x_upper" yaml:"beta_x_upper"`
	BetaXLower  float64 `json:"beta_x_lower" yaml:"beta_x_lower"`
	BetaOX      float64 `json:"beta_ox" yaml:"beta_ox"`
	BetaOXUpper float64 `json:"beta_ox_upper" yaml:"beta_ox_upper"`
	BetaOXLower float64 `json:"beta_ox_lower" yaml:"beta_ox_lower"`
}

// FromRecord builds the terse view of an enriched record.
func FromRecord(r *records.Record) Pairing {
	dtX := r.XRay.Dt / constants.SecondsPerHour
	dtO := r.Optical.Dt / constants.SecondsPerHour
	return Pairing{
		ID:          r.ID,
		DtXRay:      dtX,
		DtOptical:   dtO,
		Separation:  math.Abs(dtX - dtO),
		BetaX:       r.BetaX.Value.Or(0),
		BetaXUpper:  r.BetaX.Upper.Or(0),
		BetaXLower:  r.BetaX.Lower.Or(0),
		BetaOX:      r.BetaOX.Value,
		BetaOXUpper: r.BetaOX.Upper,
		BetaOXLower: r.BetaOX.Lower,
	}
}

// DeltaBeta returns the widening of the cross-band index uncertainty that
// accounts for temporal mismatch of up to tolerance percent.
func DeltaBeta(tolerance float64) float64 {
	return math.Log10(1 + tolerance/100)
}

// Classified is a pairing together with its distance from the dark boundary.
type Classified struct {
	Pairing  `yaml:",inline"`
	Distance float64 `json:"distance" yaml:"distance"`
}

// Classifier applies one criterion with a fixed temporal term.
type Classifier struct {
	method    Method
	deltaBeta float64
}

// NewClassifier creates a classifier. deltaBeta is added to the upper
// uncertainty of the cross-band index; pass zero to ignore temporal mismatch.
func NewClassifier(method Method, deltaBeta float64) (*Classifier, error) {
	switch method {
	case Jakobsson, VanDerHorst:
	default:
		return nil, fmt.Errorf("unknown darkness method %q", method)
	}
	return &Classifier{method: method, deltaBeta: deltaBeta}, nil
}

// Method returns the criterion in use.
func (c *Classifier) Method() Method {
	return c.method
}

// Distance returns the signed distance of p from the dark boundary.
func (c *Classifier) Distance(p Pairing) float64 {
	if c.method == VanDerHorst {
		return (-p.BetaX - p.BetaXLower + p.BetaOX - (p.BetaOXUpper + c.deltaBeta) - constants.VanDerHorstOffset) / math.Sqrt2
	}
	return constants.JakobssonThreshold + p.BetaOX - p.BetaOXUpper - c.deltaBeta
}

// IsDark reports whether p is dark and its distance. Pairings with a zero
// cross-band index were never calculated and are never dark.
func (c *Classifier) IsDark(p Pairing) (bool, float64) {
	d := c.Distance(p)
	if p.BetaOX == 0 {
		return false, d
	}
	if c.method == VanDerHorst {
		shallower := -p.BetaX-constants.VanDerHorstOffset > -p.BetaOX+p.BetaOXUpper+c.deltaBeta
		steeper := -p.BetaOX+constants.VanDerHorstOffset < -p.BetaX-p.BetaXLower
		return shallower && steeper, d
	}
	return d > 0, d
}

// Dark returns the dark pairings in input order.
func (c *Classifier) Dark(pairings []Pairing) []Classified {
	var dark []Classified
	for _, p := range pairings {
		if ok, d := c.IsDark(p); ok {
			dark = append(dark, Classified{Pairing: p, Distance: d})
		}
	}
	return dark
}

// Darkest returns, for each contiguous run of equal identifiers in dark,
// the pairing with the largest distance. The first of equal distances wins.
func Darkest(dark []Classified) []Classified {
	var out []Classified
	for i, c := range dark {
		if i == 0 || c.ID != dark[i-1].ID {
			out = append(out, c)
			continue
		}
		if last := &out[len(out)-1]; c.Distance > last.Distance {
			*last = c
		}
	}
	return out
}

// FilterBurst returns the pairings with the given identifier. An empty id
// returns pairings unchanged.
func FilterBurst(pairings []Pairing, id string) []Pairing {
	if id == "" {
		return pairings
	}
	var out []Pairing
	for _, p := range pairings {
		if p.ID == id {
			out = append(out, p)
		}
	}
	return out
}

// Pairings strips the distances from classified pairings.
func Pairings(classified []Classified) []Pairing {
	out := make([]Pairing, len(classified))
	for i := range classified {
		out[i] = classified[i].Pairing
	}
	return out
}
