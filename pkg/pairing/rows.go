// Package pairing joins the independently loaded datasets onto X-ray records.
//
// Three joins are provided:
//   - AttachSpectralIndex copies a spectral-index row onto every X-ray record
//     with the same identifier.
//   - Matcher pairs optical observations to X-ray records that share an
//     identifier, already carry a spectral index, and were observed within a
//     percent-difference tolerance of the optical elapsed time.
//   - AssignFrequencies looks up the optical frequency of each enriched record
//     by its telescope, instrument and filter, independent of identifier.
package pairing

import "github.com/agentstation/betaox/pkg/records"

// SpectralIndexRow is one row of the spectral-index dataset.
type SpectralIndexRow struct {
	ID    string
	Value float64
	Upper float64
	Lower float64
}

// Observation is one row of the optical dataset with its elapsed time
// already converted to seconds.
type Observation struct {
	ID      string          `json:"id" yaml:"id"`
	Optical records.Optical `json:"optical" yaml:"optical"`
}

// FrequencyRow is one row of the optical setup lookup table.
type FrequencyRow struct {
	Setup      records.Setup
	Wavelength float64 // [nm]
	Frequency  float64 // [Hz]
}
