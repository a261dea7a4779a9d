package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agentstation/betaox/pkg/constants"
	"github.com/agentstation/betaox/pkg/darkness"
	"github.com/agentstation/betaox/pkg/errors"
	"github.com/agentstation/betaox/pkg/pairing"
	"github.com/agentstation/betaox/pkg/records"
)

// ReadXRay reads X-ray rows into new records.
func ReadXRay(rd io.Reader, name string) ([]records.Record, error) {
	var out []records.Record
	err := scan(rd, XRay, name, func(r row) error {
		v, err := r.floats(1, 2, 3, 4)
		if err != nil {
			return err
		}
		out = append(out, records.New(r.fields[0], v[0], v[1], v[2], v[3]))
		return nil
	})
	return out, err
}

// ReadSpectralIndex reads spectral-index rows.
func ReadSpectralIndex(rd io.Reader, name string) ([]pairing.SpectralIndexRow, error) {
	var out []pairing.SpectralIndexRow
	err := scan(rd, SpectralIndex, name, func(r row) error {
		v, err := r.floats(1, 2, 3)
		if err != nil {
			return err
		}
		out = append(out, pairing.SpectralIndexRow{
			ID:    r.fields[0],
			Value: v[0],
			Upper: v[1],
			Lower: v[2],
		})
		return nil
	})
	return out, err
}

// ReadOptical reads optical rows. Elapsed time is given in hours and
// returned in seconds.
func ReadOptical(rd io.Reader, name string) ([]pairing.Observation, error) {
	var out []pairing.Observation
	err := scan(rd, Optical, name, func(r row) error {
		v, err := r.floats(1, 5, 6, 7)
		if err != nil {
			return err
		}
		out = append(out, pairing.Observation{
			ID: r.fields[0],
			Optical: records.Optical{
				Dt: v[0] * constants.SecondsPerHour,
				Setup: records.Setup{
					Telescope:  r.fields[2],
					Instrument: r.fields[3],
					Filter:     r.fields[4],
				},
				Exposure: v[1],
				Flux:     v[2],
				Sigma:    v[3],
			},
		})
		return nil
	})
	return out, err
}

// ReadFrequency reads optical setup lookup rows.
func ReadFrequency(rd io.Reader, name string) ([]pairing.FrequencyRow, error) {
	var out []pairing.FrequencyRow
	err := scan(rd, Frequency, name, func(r row) error {
		v, err := r.floats(3, 4)
		if err != nil {
			return err
		}
		out = append(out, pairing.FrequencyRow{
			Setup: records.Setup{
				Telescope:  r.fields[0],
				Instrument: r.fields[1],
				Filter:     r.fields[2],
			},
			Wavelength: v[0],
			Frequency:  v[1],
		})
		return nil
	})
	return out, err
}

// ReadPairings reads a terse pairing table as written by the export
// package. The first row is a header and is skipped.
func ReadPairings(rd io.Reader, name string) ([]darkness.Pairing, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = len(Pairings.Columns())
	cr.TrimLeadingSpace = true

	var out []darkness.Pairing
	for line := 1; ; line++ {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse(string(Pairings), name, err)
		}
		if line == 1 {
			continue
		}

		v := make([]float64, len(fields)-1)
		for i, f := range fields[1:] {
			v[i], err = strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, &errors.ParseError{
					Format:  string(Pairings),
					File:    name,
					Line:    line,
					Column:  i + 2,
					Message: fmt.Sprintf("invalid %s %q", Pairings.Columns()[i+1], f),
					Err:     err,
				}
			}
		}
		out = append(out, darkness.Pairing{
			ID:          strings.TrimSpace(fields[0]),
			DtXRay:      v[0],
			DtOptical:   v[1],
			Separation:  v[2],
			BetaX:       v[3],
			BetaXUpper:  v[4],
			BetaXLower:  v[5],
			BetaOX:      v[6],
			BetaOXUpper: v[7],
			BetaOXLower: v[8],
		})
	}
	return out, nil
}
