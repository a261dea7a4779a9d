// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/agentstation/betaox/internal/cmd/table"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatWide represents wide table output format.
	FormatWide Format = "wide"
)

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// FormatterFunc allows functions to implement Formatter.
type FormatterFunc func(io.Writer, any) error

// Format implements the Formatter interface.
func (f FormatterFunc) Format(w io.Writer, data any) error {
	return f(w, data)
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	case FormatTable, FormatWide:
		return &TableFormatter{Wide: format == FormatWide}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	yamlData, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(yamlData)
	return err
}

// TableFormatter outputs table format.
type TableFormatter struct {
	Wide bool
}

// Format outputs data in table format.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	// Type switch to handle different data types
	switch v := data.(type) {
	case Data:
		return f.formatTable(w, v)
	case *Data:
		return f.formatTable(w, *v)
	default:
		// Try to convert structs/slices to table format using reflection
		if tableData := f.convertToTableData(data); tableData != nil {
			return f.formatTable(w, *tableData)
		}

		// Fall back to JSON for non-table data
		jsonFormatter := &JSONFormatter{Indent: "  "}
		return jsonFormatter.Format(w, data)
	}
}

func (f *TableFormatter) formatTable(w io.Writer, data Data) error {
	// Use tablewriter for proper table formatting
	opts := []tablewriter.Option{}

	// Build config
	config := tablewriter.Config{}

	// Apply column alignment if specified
	if len(data.ColumnAlignment) > 0 {
		// Translate table.Align type to tablewriter's tw.Align type
		twAlign := make([]tw.Align, len(data.ColumnAlignment))
		for i, align := range data.ColumnAlignment {
			switch align {
			case table.AlignLeft:
				twAlign[i] = tw.AlignLeft
			case table.AlignCenter:
				twAlign[i] = tw.AlignCenter
			case table.AlignRight:
				twAlign[i] = tw.AlignRight
			default: // table.AlignDefault
				twAlign[i] = tw.Skip
			}
		}

		config.Header.Alignment = tw.CellAlignment{PerColumn: twAlign}
		config.Row.Alignment = tw.CellAlignment{PerColumn: twAlign}
	}

	// Headers are display labels such as "dt_x [hr]"; keep them verbatim.
	opts = append(opts, tablewriter.WithConfig(config), tablewriter.WithHeaderAutoFormat(tw.Off))
	table := tablewriter.NewTable(w, opts...)

	// Set headers if present
	if len(data.Headers) > 0 {
		// Convert headers to []any for the new API
		headers := make([]any, len(data.Headers))
		for i, h := range data.Headers {
			headers[i] = h
		}
		table.Header(headers...)
	}

	// Add rows
	for _, row := range data.Rows {
		// Convert row to []any for the new API
		rowData := make([]any, len(row))
		for i, cell := range row {
			rowData[i] = cell
		}
		if err := table.Append(rowData...); err != nil {
			return err
		}
	}

	return table.Render()
}

// Data represents data formatted for table output.
type Data = table.Data

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	// Use explicit format if provided
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}

	// Check if output is a terminal
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}

	// Default to JSON for pipes/redirects
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml, wide", s)
	}
}

// convertToTableData converts a struct, or a slice of structs, to Data.
// It returns nil for anything else.
func (f *TableFormatter) convertToTableData(data any) *Data {
	v := reflect.Indirect(reflect.ValueOf(data))

	switch v.Kind() {
	case reflect.Slice:
		if v.Len() == 0 {
			return nil
		}
		if reflect.Indirect(v.Index(0)).Kind() == reflect.Struct {
			return f.structSliceToTableData(v)
		}
	case reflect.Struct:
		return f.singleStructToTableData(v)
	}
	return nil
}

// structSliceToTableData converts a slice of structs to one row per element.
func (f *TableFormatter) structSliceToTableData(v reflect.Value) *Data {
	elemType := reflect.Indirect(v.Index(0)).Type()
	fields := exportedFields(elemType)

	headers := make([]string, 0, len(fields))
	for _, i := range fields {
		headers = append(headers, headerName(elemType.Field(i)))
	}

	rows := make([][]string, 0, v.Len())
	for i := 0; i < v.Len(); i++ {
		elem := reflect.Indirect(v.Index(i))
		row := make([]string, 0, len(fields))
		for _, j := range fields {
			row = append(row, cellValue(elem.Field(j)))
		}
		rows = append(rows, row)
	}

	return &Data{Headers: headers, Rows: rows}
}

// singleStructToTableData converts a single struct to a property/value table.
func (f *TableFormatter) singleStructToTableData(v reflect.Value) *Data {
	elemType := v.Type()

	var rows [][]string
	for _, i := range exportedFields(elemType) {
		rows = append(rows, []string{
			headerName(elemType.Field(i)),
			cellValue(v.Field(i)),
		})
	}

	return &Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}

// exportedFields returns the indexes of the exported fields of t.
func exportedFields(t reflect.Type) []int {
	var idx []int
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).IsExported() {
			idx = append(idx, i)
		}
	}
	return idx
}

// headerName titles a field's json name, or returns its Go name without one.
func headerName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return field.Name
	}
	return cases.Title(language.English).String(strings.ReplaceAll(name, "_", " "))
}

// cellValue renders one field, preferring its String method.
func cellValue(v reflect.Value) string {
	switch x := v.Interface().(type) {
	case fmt.Stringer:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'g', 6, 64)
	default:
		return fmt.Sprintf("%v", x)
	}
}
