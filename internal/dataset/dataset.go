// Package dataset reads the whitespace-delimited input files and the terse
// pairing table.
//
// Every reader takes an io.Reader and the name to report in errors, and
// returns rows in file order. Blank lines and lines starting with '#' are
// skipped. A row with the wrong number of fields or a field that is not a
// number fails the whole read with an *errors.ParseError carrying the line
// and column.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/agentstation/betaox/pkg/errors"
)

// Kind identifies one of the input datasets.
type Kind string

const (
	XRay          Kind = "xray"
	SpectralIndex Kind = "beta_x"
	Optical       Kind = "optical"
	Frequency     Kind = "frequency"
	Pairings      Kind = "pairings"
)

// Kinds lists the four pipeline inputs in load order.
func Kinds() []Kind {
	return []Kind{XRay, SpectralIndex, Optical, Frequency}
}

// Description returns a human-readable name for the dataset.
func (k Kind) Description() string {
	switch k {
	case XRay:
		return "X-ray flux"
	case SpectralIndex:
		return "X-ray spectral index"
	case Optical:
		return "optical flux"
	case Frequency:
		return "optical frequency lookup"
	case Pairings:
		return "terse pairing table"
	}
	return string(k)
}

// Columns returns the expected field names of one row.
func (k Kind) Columns() []string {
	switch k {
	case XRay:
		return []string{"id", "dt[s]", "exposure[s]", "flux[uJy]", "sigma[uJy]"}
	case SpectralIndex:
		return []string{"id", "beta_x", "upper", "lower"}
	case Optical:
		return []string{"id", "dt[hr]", "telescope", "instrument", "filter", "exposure[s]", "flux[uJy]", "sigma[uJy]"}
	case Frequency:
		return []string{"telescope", "instrument", "filter", "wavelength[nm]", "frequency[Hz]"}
	case Pairings:
		return []string{"id", "dt_x[hr]", "dt_o[hr]", "dt[hr]", "beta_x", "sigma_x_up", "sigma_x_low", "beta_ox", "sigma_ox_up", "sigma_ox_low"}
	}
	return nil
}

// row is one tokenized input line.
type row struct {
	kind   Kind
	name   string
	line   int
	fields []string
}

func (r row) float(col int) (float64, error) {
	v, err := strconv.ParseFloat(r.fields[col], 64)
	if err != nil {
		return 0, &errors.ParseError{
			Format:  string(r.kind),
			File:    r.name,
			Line:    r.line,
			Column:  col + 1,
			Message: fmt.Sprintf("invalid %s %q", r.kind.Columns()[col], r.fields[col]),
			Err:     err,
		}
	}
	return v, nil
}

// floats parses the given columns in order.
func (r row) floats(cols ...int) ([]float64, error) {
	out := make([]float64, len(cols))
	for i, col := range cols {
		v, err := r.float(col)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// scan tokenizes rd line by line and calls fn for every data row.
func scan(rd io.Reader, kind Kind, name string, fn func(row) error) error {
	want := len(kind.Columns())
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) != want {
			return &errors.ParseError{
				Format:  string(kind),
				File:    name,
				Line:    line,
				Message: fmt.Sprintf("expected %d fields, got %d", want, len(fields)),
			}
		}
		if err := fn(row{kind: kind, name: name, line: line, fields: fields}); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.WrapIO("read", name, err)
	}
	return nil
}
