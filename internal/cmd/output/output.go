package output

import (
	"io"

	"github.com/agentstation/betaox/internal/cmd/table"
)

// IsTable reports whether format renders as a table.
func IsTable(format Format) bool {
	switch format {
	case FormatTable, FormatWide, "":
		return true
	}
	return false
}

// FormatAny writes data in the given format. Table formats render tableData
// when it is non-nil; structured formats always render data.
func FormatAny(w io.Writer, format Format, data any, tableData *table.Data) error {
	formatter := NewFormatter(format)
	if IsTable(format) && tableData != nil {
		return formatter.Format(w, *tableData)
	}
	return formatter.Format(w, data)
}
