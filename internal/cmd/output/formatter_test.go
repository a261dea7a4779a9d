package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/betaox/internal/cmd/table"
	"github.com/agentstation/betaox/pkg/optional"
)

type sample struct {
	BurstID string  `json:"burst_id"`
	BetaOX  float64 `json:"beta_ox"`
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"table", "JSON", "yaml", "wide", ""} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}

type withHidden struct {
	ID     string         `json:"burst_id"`
	Rate   optional.Float `json:"pairing_rate,omitempty"`
	hidden int
}

func TestConvertToTableData(t *testing.T) {
	f := &TableFormatter{}

	single := f.convertToTableData(&withHidden{ID: "G1", Rate: optional.Some(50), hidden: 1})
	require.NotNil(t, single)
	assert.Equal(t, []string{"Property", "Value"}, single.Headers)
	assert.Equal(t, [][]string{
		{"Burst Id", "G1"},
		{"Pairing Rate", optional.Some(50).String()},
	}, single.Rows)

	slice := f.convertToTableData([]withHidden{{ID: "G2"}})
	require.NotNil(t, slice)
	assert.Equal(t, []string{"Burst Id", "Pairing Rate"}, slice.Headers)
	assert.Equal(t, [][]string{{"G2", optional.None().String()}}, slice.Rows)

	assert.Nil(t, f.convertToTableData([]withHidden{}))
	assert.Nil(t, f.convertToTableData(42))
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatJSON).Format(&buf, sample{BurstID: "G1", BetaOX: 0.5}))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "G1", got["burst_id"])
}

func TestYAMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatYAML).Format(&buf, sample{BurstID: "G1", BetaOX: 0.5}))
	assert.Contains(t, buf.String(), "burst_id: G1")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := table.Data{
		Headers:         []string{"GRB ID", "Beta_OX"},
		Rows:            [][]string{{"G1", "0.50"}},
		ColumnAlignment: []table.Align{table.AlignLeft, table.AlignRight},
	}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	assert.Contains(t, buf.String(), "G1")
	assert.Contains(t, buf.String(), "0.50")
}

func TestTableFormatterKeepsHeaders(t *testing.T) {
	var buf bytes.Buffer
	data := table.Data{
		Headers: []string{"GRB ID", "dt_x [hr]", "Sigma_OX Up"},
		Rows:    [][]string{{"G1", "0.03", "0.10"}},
	}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))
	assert.Contains(t, buf.String(), "dt_x [hr]")
	assert.Contains(t, buf.String(), "Sigma_OX Up")
	assert.NotContains(t, buf.String(), "DT X")
}

func TestTableFormatterReflection(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, []sample{{BurstID: "G7", BetaOX: 1}}))
	assert.Contains(t, buf.String(), "G7")
}

func TestFormatAny(t *testing.T) {
	data := &table.Data{Headers: []string{"A"}, Rows: [][]string{{"from-table"}}}

	var buf bytes.Buffer
	require.NoError(t, FormatAny(&buf, FormatTable, sample{BurstID: "from-json"}, data))
	assert.Contains(t, buf.String(), "from-table")

	buf.Reset()
	require.NoError(t, FormatAny(&buf, FormatJSON, sample{BurstID: "from-json"}, data))
	assert.Contains(t, buf.String(), "from-json")

	assert.True(t, IsTable(FormatWide))
	assert.False(t, IsTable(FormatYAML))
}
