package export

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/agentstation/betaox/pkg/constants"
	"github.com/agentstation/betaox/pkg/darkness"
)

// Table selects which pairing table to write.
type Table int

// Table constants.
const (
	TableComprehensive Table = iota
	TableTerse
)

// IsValid checks if the table is valid.
func (t Table) IsValid() bool {
	switch t {
	case TableComprehensive, TableTerse:
		return true
	default:
		return false
	}
}

// String returns the string representation of the table.
func (t Table) String() string {
	switch t {
	case TableComprehensive:
		return "comprehensive"
	case TableTerse:
		return "terse"
	}
	return "unknown"
}

// FileName returns the file name of the table written at tolerance.
func (t Table) FileName(tolerance float64) string {
	switch t {
	case TableComprehensive:
		return fileName(constants.ComprehensiveFilePattern, tolerance)
	case TableTerse:
		return fileName(constants.TerseFilePattern, tolerance)
	}
	return ""
}

// PlotFileName returns the file name of the plot produced at tolerance.
func PlotFileName(tolerance float64) string {
	return fileName(constants.PlotFilePattern, tolerance)
}

// DarkBaseName returns the base name, without extension, of a dark-burst
// list classified from the table at source.
func DarkBaseName(method darkness.Method, darkest, deltaBeta bool, source string) string {
	kind := "Dark"
	if darkest {
		kind = "Darkest"
	}
	base := filepath.Base(source)
	name := method.Label() + "_" + kind + "_" + strings.TrimSuffix(base, filepath.Ext(base))
	if deltaBeta {
		name += constants.DeltaBetaSuffix
	}
	return name
}

// FormatTolerance renders a tolerance with the fewest digits that
// represent it exactly, as used in file names.
func FormatTolerance(tolerance float64) string {
	return strconv.FormatFloat(tolerance, 'f', -1, 64)
}

// Options is the configuration for export.
type Options struct {
	dir    string
	tables []Table
}

// Dir returns the output directory.
func (o *Options) Dir() string {
	return o.dir
}

// Tables returns the tables to write.
func (o *Options) Tables() []Table {
	return o.tables
}

// Defaults returns the default export options.
func Defaults() *Options {
	return &Options{
		dir:    constants.DefaultOutputDir,
		tables: []Table{TableComprehensive, TableTerse},
	}
}

// Apply applies the given options to the export options.
func (o *Options) Apply(opts ...Option) Options {
	for _, opt := range opts {
		opt(o)
	}
	return *o
}

// Option is a function that configures export options.
type Option func(*Options)

// WithDir for a custom output directory.
func WithDir(dir string) Option {
	return func(o *Options) {
		if dir != "" {
			o.dir = dir
		}
	}
}

// WithTables restricts which tables are written.
func WithTables(tables ...Table) Option {
	return func(o *Options) {
		o.tables = tables
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Table) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
