package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/betaox/pkg/errors"
	"github.com/agentstation/betaox/pkg/records"
)

func TestReadXRay(t *testing.T) {
	input := `# id dt exposure flux sigma
G1 100 50 10.0 1.0

G1  400	50 8.0 0.8
G2 1e3 25 3 0.3
`
	recs, err := ReadXRay(strings.NewReader(input), "xray.txt")
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "G1", recs[0].ID)
	assert.Equal(t, records.XRay{Dt: 100, Exposure: 50, Flux: 10, Sigma: 1}, recs[0].XRay)
	assert.Equal(t, 400.0, recs[1].XRay.Dt)
	assert.Equal(t, 1000.0, recs[2].XRay.Dt)
	assert.False(t, recs[0].HasSpectralIndex())
	assert.False(t, recs[0].IsFullyPopulated())
}

func TestReadXRayErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"too few fields", "G1 100 50 10.0 1.0\nG2 100 50\n", 2, 0},
		{"too many fields", "G1 100 50 10.0 1.0 9\n", 1, 0},
		{"bad float", "G1 100 50 ten 1.0\n", 1, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadXRay(strings.NewReader(tt.input), "xray.txt")
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))

			var pe *errors.ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, "xray", pe.Format)
			assert.Equal(t, "xray.txt", pe.File)
			assert.Equal(t, tt.line, pe.Line)
			assert.Equal(t, tt.column, pe.Column)
		})
	}
}

func TestReadSpectralIndex(t *testing.T) {
	rows, err := ReadSpectralIndex(strings.NewReader("G1 0.5 0.1 0.2\n"), "beta.txt")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "G1", rows[0].ID)
	assert.Equal(t, 0.5, rows[0].Value)
	assert.Equal(t, 0.1, rows[0].Upper)
	assert.Equal(t, 0.2, rows[0].Lower)
}

func TestReadOpticalConvertsHours(t *testing.T) {
	rows, err := ReadOptical(strings.NewReader("G1 0.5 TelA InstA FilterA 60 5.0 0.5\n"), "optical.txt")
	require.NoError(t, err)
	require.Len(t, rows, 1)

	obs := rows[0]
	assert.Equal(t, "G1", obs.ID)
	assert.Equal(t, 1800.0, obs.Optical.Dt)
	assert.Equal(t, records.Setup{Telescope: "TelA", Instrument: "InstA", Filter: "FilterA"}, obs.Optical.Setup)
	assert.Equal(t, 60.0, obs.Optical.Exposure)
	assert.Equal(t, 5.0, obs.Optical.Flux)
	assert.Equal(t, 0.5, obs.Optical.Sigma)
}

func TestReadFrequency(t *testing.T) {
	rows, err := ReadFrequency(strings.NewReader("TelA InstA FilterA 500 5.99e14\n"), "freq.txt")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "FilterA", rows[0].Setup.Filter)
	assert.Equal(t, 500.0, rows[0].Wavelength)
	assert.Equal(t, 5.99e14, rows[0].Frequency)
}

func TestReadPairings(t *testing.T) {
	input := "ID Number,dt_x [hr],dt_o [hr],dt [hr],Beta_x,sigma_x_Up,sigma_x_Low,Beta_ox,sigma_ox_Up,sigma_ox_Low\n" +
		"G1,0.03,0.03,0.00,-1.20,0.10,0.10,-0.40,0.05,0.05\n" +
		"G2, 1.00, 2.00, 1.00, -0.90, 0.20, 0.30, -0.70, 0.10, 0.10\n"

	pairings, err := ReadPairings(strings.NewReader(input), "terse.csv")
	require.NoError(t, err)
	require.Len(t, pairings, 2)
	assert.Equal(t, "G1", pairings[0].ID)
	assert.Equal(t, -0.4, pairings[0].BetaOX)
	assert.Equal(t, "G2", pairings[1].ID)
	assert.Equal(t, 2.0, pairings[1].DtOptical)
	assert.Equal(t, 0.3, pairings[1].BetaXLower)
}

func TestReadPairingsErrors(t *testing.T) {
	header := "a,b,c,d,e,f,g,h,i,j\n"

	_, err := ReadPairings(strings.NewReader(header+"G1,1,2,3\n"), "terse.csv")
	assert.True(t, errors.IsValidationError(err))

	_, err = ReadPairings(strings.NewReader(header+"G1,1,2,3,4,5,6,x,8,9\n"), "terse.csv")
	var pe *errors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
	assert.Equal(t, 8, pe.Column)
}

func TestOpener(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "xray.txt")
	require.NoError(t, os.WriteFile(good, []byte("G1 1 1 1 1\n"), 0o600))
	missing := filepath.Join(dir, "missing.txt")

	t.Run("no retry", func(t *testing.T) {
		var o *Opener
		_, err := o.Open(XRay, missing)
		require.Error(t, err)
		assert.True(t, errors.IsIOError(err))
	})

	t.Run("retry succeeds", func(t *testing.T) {
		var asked []string
		o := &Opener{Retry: func(kind Kind, path string, _ error) (string, bool) {
			asked = append(asked, path)
			return good, true
		}}
		opened, err := o.Open(XRay, missing)
		require.NoError(t, err)
		defer opened.Close()
		assert.Equal(t, good, opened.Path)
		assert.Equal(t, []string{missing}, asked)

		recs, err := ReadXRay(opened.File, opened.Path)
		require.NoError(t, err)
		assert.Len(t, recs, 1)
	})

	t.Run("attempts bounded", func(t *testing.T) {
		calls := 0
		o := &Opener{
			MaxAttempts: 3,
			Retry: func(Kind, string, error) (string, bool) {
				calls++
				return missing, true
			},
		}
		_, err := o.Open(Optical, missing)
		require.Error(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("retry gives up", func(t *testing.T) {
		o := &Opener{Retry: func(Kind, string, error) (string, bool) { return "", false }}
		_, err := o.Open(Frequency, missing)
		assert.True(t, errors.IsIOError(err))
	})
}

func TestKinds(t *testing.T) {
	for _, k := range append(Kinds(), Pairings) {
		assert.NotEmpty(t, k.Columns(), k)
		assert.NotEqual(t, string(k), k.Description())
	}
}
