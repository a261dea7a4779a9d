// Package records holds the merged observational state of a burst.
//
// A Record is created once per X-ray row with its X-ray fields fixed. Later
// stages attach a spectral index, an optical observation, an optical
// frequency and finally the derived cross-band index. Optional fields use
// optional.Float so that "never assigned" is distinct from any numeric value.
package records

import (
	"github.com/agentstation/betaox/pkg/constants"
	"github.com/agentstation/betaox/pkg/optional"
)

// Unset marks an optical text field that has not been assigned.
const Unset = "NULL"

// XRay holds the fields read from one X-ray row.
type XRay struct {
	Dt       float64 `json:"dt_s" yaml:"dt_s"`             // time since trigger [s]
	Exposure float64 `json:"exposure_s" yaml:"exposure_s"` // [s]
	Flux     float64 `json:"flux_ujy" yaml:"flux_ujy"`     // flux density [µJy]
	Sigma    float64 `json:"sigma_ujy" yaml:"sigma_ujy"`   // flux uncertainty [µJy]
}

// SpectralIndex is an index with asymmetric uncertainty bounds.
type SpectralIndex struct {
	Value optional.Float `json:"value" yaml:"value"`
	Upper optional.Float `json:"upper" yaml:"upper"`
	Lower optional.Float `json:"lower" yaml:"lower"`
}

// Setup identifies the optical configuration an observation was taken with.
type Setup struct {
	Telescope  string `json:"telescope" yaml:"telescope"`
	Instrument string `json:"instrument" yaml:"instrument"`
	Filter     string `json:"filter" yaml:"filter"`
}

// UnsetSetup returns a Setup with every field marked unset.
func UnsetSetup() Setup {
	return Setup{Telescope: Unset, Instrument: Unset, Filter: Unset}
}

// Optical holds the fields read from one optical row.
type Optical struct {
	Dt       float64 `json:"dt_s" yaml:"dt_s"` // time since trigger [s]
	Setup    `yaml:",inline"`
	Exposure float64 `json:"exposure_s" yaml:"exposure_s"`
	Flux     float64 `json:"flux_ujy" yaml:"flux_ujy"`
	Sigma    float64 `json:"sigma_ujy" yaml:"sigma_ujy"`
}

// Derived holds the cross-band index and its bounds. Zero until calculated.
type Derived struct {
	Value float64 `json:"value" yaml:"value"`
	Upper float64 `json:"upper" yaml:"upper"`
	Lower float64 `json:"lower" yaml:"lower"`
}

// Record is one burst measurement with everything merged onto it so far.
type Record struct {
	ID                string         `json:"id" yaml:"id"`
	XRay              XRay           `json:"xray" yaml:"xray"`
	BetaX             SpectralIndex  `json:"beta_x" yaml:"beta_x"`
	Optical           Optical        `json:"optical" yaml:"optical"`
	FrequencyXRay     float64        `json:"frequency_xray_hz" yaml:"frequency_xray_hz"`
	FrequencyOptical  optional.Float `json:"frequency_optical_hz" yaml:"frequency_optical_hz"`
	WavelengthOptical optional.Float `json:"wavelength_optical_nm" yaml:"wavelength_optical_nm"`
	BetaOX            Derived        `json:"beta_ox" yaml:"beta_ox"`
}

// New creates a record from the fields of one X-ray row. No validation is
// performed; non-physical values surface later as degenerate results.
func New(id string, dt, exposure, flux, sigma float64) Record {
	return Record{
		ID: id,
		XRay: XRay{
			Dt:       dt,
			Exposure: exposure,
			Flux:     flux,
			Sigma:    sigma,
		},
		Optical:       Optical{Setup: UnsetSetup()},
		FrequencyXRay: constants.FrequencyXRay,
	}
}

// SetSpectralIndex attaches the X-ray spectral index and its bounds.
func (r *Record) SetSpectralIndex(value, upper, lower float64) {
	r.BetaX = SpectralIndex{
		Value: optional.Some(value),
		Upper: optional.Some(upper),
		Lower: optional.Some(lower),
	}
}

// HasSpectralIndex reports whether a spectral index has been attached.
func (r *Record) HasSpectralIndex() bool {
	return r.BetaX.Value.IsSet()
}

// SetOptical attaches an optical observation. It does not make the record
// fully populated; only SetFrequency does.
func (r *Record) SetOptical(obs Optical) {
	r.Optical = obs
}

// SetFrequency attaches the optical observing frequency [Hz] and the
// wavelength [nm] it was looked up with.
func (r *Record) SetFrequency(frequency, wavelength float64) {
	r.FrequencyOptical = optional.Some(frequency)
	r.WavelengthOptical = optional.Some(wavelength)
}

// IsFullyPopulated reports whether an optical frequency has been assigned.
// This is the only gate used by the calculator and the writers.
func (r *Record) IsFullyPopulated() bool {
	return r.FrequencyOptical.IsSet()
}

// SetDerived stores the calculated cross-band index.
func (r *Record) SetDerived(d Derived) {
	r.BetaOX = d
}

// Enrich returns a new record carrying r's X-ray and spectral-index fields
// with obs attached. Optical frequency and derived values start unset.
func (r *Record) Enrich(obs Optical) Record {
	enriched := New(r.ID, r.XRay.Dt, r.XRay.Exposure, r.XRay.Flux, r.XRay.Sigma)
	enriched.BetaX = r.BetaX
	enriched.FrequencyXRay = r.FrequencyXRay
	enriched.SetOptical(obs)
	return enriched
}
