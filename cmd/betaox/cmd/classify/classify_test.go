package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/betaox/internal/appcontext"
	"github.com/agentstation/betaox/internal/dataset"
	"github.com/agentstation/betaox/internal/export"
	"github.com/agentstation/betaox/pkg/darkness"
	"github.com/agentstation/betaox/pkg/errors"
)

func writeTable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pairs.csv")
	_, err := export.WritePairingsFile(path, []darkness.Pairing{
		{ID: "G1", DtXRay: 1, DtOptical: 1, BetaX: -1.0, BetaXUpper: 0.1, BetaXLower: 0.1, BetaOX: 0.3, BetaOXUpper: 0.1, BetaOXLower: 0.1},
		{ID: "G1", DtXRay: 2, DtOptical: 2, BetaX: -1.0, BetaXUpper: 0.1, BetaXLower: 0.1, BetaOX: 0.2, BetaOXUpper: 0.1, BetaOXLower: 0.1},
		{ID: "G2", DtXRay: 1, DtOptical: 1, BetaX: -0.5, BetaXUpper: 0.1, BetaXLower: 0.1, BetaOX: -0.9, BetaOXUpper: 0.1, BetaOXLower: 0.1},
		{ID: "G3", DtXRay: 1, DtOptical: 1, BetaX: -1.0, BetaXUpper: 0.1, BetaXLower: 0.1},
	})
	require.NoError(t, err)
	return path
}

func execute(t *testing.T, app appcontext.Interface, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand(app)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestClassifyBothMethods(t *testing.T) {
	source := writeTable(t)
	app := &appcontext.Mock{OutputFormatFunc: func() string { return "json" }}

	out, err := execute(t, app, source, "--no-write")
	require.NoError(t, err)

	var got Output
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 4, got.Pairings)
	require.Len(t, got.Results, 2)
	for _, res := range got.Results {
		require.Len(t, res.Dark, 2, string(res.Method))
		assert.Equal(t, "G1", res.Dark[0].ID)
		assert.Empty(t, res.Path)
	}
	assert.Equal(t, darkness.Jakobsson, got.Results[0].Method)
	assert.Equal(t, darkness.VanDerHorst, got.Results[1].Method)
	assert.InDelta(t, 0.7, got.Results[0].Dark[0].Distance, 1e-9)
}

func TestClassifyDarkestWritesList(t *testing.T) {
	source := writeTable(t)
	outDir := t.TempDir()

	out, err := execute(t, &appcontext.Mock{}, source, "--method", "jak", "--darkest", "--output-dir", outDir)
	require.NoError(t, err)
	assert.Contains(t, out, "Jakobsson: 1 darkest of 4 pairings")

	path := filepath.Join(outDir, "Jakobsson_Darkest_pairs.csv")
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dark, err := dataset.ReadPairings(f, path)
	require.NoError(t, err)
	require.Len(t, dark, 1)
	assert.Equal(t, "G1", dark[0].ID)
	assert.Equal(t, 0.3, dark[0].BetaOX)
}

func TestClassifyDeltaBetaNaming(t *testing.T) {
	source := writeTable(t)
	outDir := t.TempDir()

	_, err := execute(t, &appcontext.Mock{}, source, "--method", "vdh", "--delta-beta", "-t", "5", "--output-dir", outDir, "--plot")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(outDir, "VanDerHorst_Dark_pairs_w_delBeta.csv"))
	assert.FileExists(t, filepath.Join(outDir, "VanDerHorst_Dark_pairs_w_delBeta.png"))
}

func TestClassifyErrors(t *testing.T) {
	source := writeTable(t)

	_, err := execute(t, &appcontext.Mock{}, source, "--method", "nope")
	assert.True(t, errors.IsValidationError(err))

	_, err = execute(t, &appcontext.Mock{}, source, "--burst", "G9", "--no-write")
	assert.True(t, errors.IsNotFound(err))

	_, err = execute(t, &appcontext.Mock{}, filepath.Join(t.TempDir(), "missing.csv"))
	assert.True(t, errors.IsIOError(err))
}

func TestParseMethods(t *testing.T) {
	methods, err := parseMethods("both")
	require.NoError(t, err)
	assert.Equal(t, darkness.Methods(), methods)

	methods, err = parseMethods("VanDerHorst")
	require.NoError(t, err)
	assert.Equal(t, []darkness.Method{darkness.VanDerHorst}, methods)
}
