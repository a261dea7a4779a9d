// Package export writes the pairing tables as comma-separated files.
//
// Only fully populated records are written. Times are reported in hours and
// every number is rounded to two decimal places.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/agentstation/betaox/pkg/constants"
	"github.com/agentstation/betaox/pkg/darkness"
	"github.com/agentstation/betaox/pkg/errors"
	"github.com/agentstation/betaox/pkg/records"
)

// ComprehensiveHeader names the columns of the comprehensive table.
var ComprehensiveHeader = []string{
	"GRB ID", "X-Ray dt [hr]", "X-Ray Exposure Time [s]", "F_x [uJy]", "Sigma_x [uJy]",
	"Beta_X", "Beta_X Upper Sigma", "Beta_X Lower Sigma",
	"Optical dt [hr]", "Telescope", "Instrument", "Filter",
	"Optical Exposure Time [s]", "F_o [uJy]", "Sigma_o [uJy]",
	"Frequency_X [Hz]", "Wavelength_o [nm]", "Frequency_o [Hz]",
	"Beta_OX", "Upper Bound of Sigma_OX", "Lower Bound of Sigma_OX",
}

// TerseHeader names the columns of the terse table.
var TerseHeader = []string{
	"GRB ID", "X-Ray dt [hr]", "Optical dt [hr]", "|dt_x - dt_o| [hr]",
	"Beta_X", "Beta_X Upper Sigma", "Beta_X Lower Sigma",
	"Beta_OX", "Upper Bound of Sigma_OX", "Lower Bound of Sigma_OX",
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ComprehensiveRow returns every field of r.
func ComprehensiveRow(r *records.Record) []string {
	return []string{
		r.ID,
		num(r.XRay.Dt / constants.SecondsPerHour),
		num(r.XRay.Exposure),
		num(r.XRay.Flux),
		num(r.XRay.Sigma),
		num(r.BetaX.Value.Or(0)),
		num(r.BetaX.Upper.Or(0)),
		num(r.BetaX.Lower.Or(0)),
		num(r.Optical.Dt / constants.SecondsPerHour),
		r.Optical.Telescope,
		r.Optical.Instrument,
		r.Optical.Filter,
		num(r.Optical.Exposure),
		num(r.Optical.Flux),
		num(r.Optical.Sigma),
		num(r.FrequencyXRay),
		num(r.WavelengthOptical.Or(0)),
		num(r.FrequencyOptical.Or(0)),
		num(r.BetaOX.Value),
		num(r.BetaOX.Upper),
		num(r.BetaOX.Lower),
	}
}

// TerseRow returns the identifier, times and indexes of p.
func TerseRow(p darkness.Pairing) []string {
	return []string{
		p.ID,
		num(p.DtXRay),
		num(p.DtOptical),
		num(p.Separation),
		num(p.BetaX),
		num(p.BetaXUpper),
		num(p.BetaXLower),
		num(p.BetaOX),
		num(p.BetaOXUpper),
		num(p.BetaOXLower),
	}
}

// WriteComprehensive writes the comprehensive table of the fully populated records.
func WriteComprehensive(w io.Writer, recs []records.Record) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(ComprehensiveHeader); err != nil {
		return 0, err
	}
	n := 0
	for i := range recs {
		if !recs[i].IsFullyPopulated() {
			continue
		}
		if err := cw.Write(ComprehensiveRow(&recs[i])); err != nil {
			return n, err
		}
		n++
	}
	cw.Flush()
	return n, cw.Error()
}

// WriteTerse writes the terse table of the fully populated records.
func WriteTerse(w io.Writer, recs []records.Record) (int, error) {
	var pairings []darkness.Pairing
	for i := range recs {
		if recs[i].IsFullyPopulated() {
			pairings = append(pairings, darkness.FromRecord(&recs[i]))
		}
	}
	return WritePairings(w, pairings)
}

// WritePairings writes pairings in the terse table layout.
func WritePairings(w io.Writer, pairings []darkness.Pairing) (int, error) {
	cw := csv.NewWriter(w)
	if err := cw.Write(TerseHeader); err != nil {
		return 0, err
	}
	for i, p := range pairings {
		if err := cw.Write(TerseRow(p)); err != nil {
			return i, err
		}
	}
	cw.Flush()
	return len(pairings), cw.Error()
}

// Written describes one file produced by Write.
type Written struct {
	Table Table  `json:"table" yaml:"table"`
	Path  string `json:"path" yaml:"path"`
	Rows  int    `json:"rows" yaml:"rows"`
}

// Write writes the selected tables for recs into the output directory,
// creating it when missing. File names carry the tolerance.
func Write(recs []records.Record, tolerance float64, opts ...Option) ([]Written, error) {
	options := Defaults().Apply(opts...)

	if err := os.MkdirAll(options.Dir(), constants.DirPermissions); err != nil {
		return nil, errors.WrapIO("create", options.Dir(), err)
	}

	var written []Written
	for _, table := range options.Tables() {
		if !table.IsValid() {
			return written, &errors.ValidationError{
				Field:   "table",
				Value:   table,
				Message: "unknown table",
			}
		}
		path := filepath.Join(options.Dir(), table.FileName(tolerance))
		rows, err := writeFile(path, func(w io.Writer) (int, error) {
			if table == TableTerse {
				return WriteTerse(w, recs)
			}
			return WriteComprehensive(w, recs)
		})
		if err != nil {
			return written, err
		}
		written = append(written, Written{Table: table, Path: path, Rows: rows})
	}
	return written, nil
}

// WritePairingsFile writes pairings in the terse layout to path.
func WritePairingsFile(path string, pairings []darkness.Pairing) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return 0, errors.WrapIO("create", filepath.Dir(path), err)
	}
	return writeFile(path, func(w io.Writer) (int, error) {
		return WritePairings(w, pairings)
	})
}

func writeFile(path string, fn func(io.Writer) (int, error)) (int, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.FilePermissions) //nolint:gosec // path is built from the configured output directory
	if err != nil {
		return 0, errors.WrapIO("create", path, err)
	}
	rows, err := fn(f)
	if err != nil {
		_ = f.Close()
		return rows, errors.WrapIO("write", path, err)
	}
	if err := f.Close(); err != nil {
		return rows, errors.WrapIO("close", path, err)
	}
	return rows, nil
}

func fileName(pattern string, tolerance float64) string {
	return fmt.Sprintf(pattern, FormatTolerance(tolerance))
}
