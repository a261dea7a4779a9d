package prompt

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/betaox/internal/dataset"
)

func TestPath(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("other.txt\n\n"), &out)

	path, result := p.Path(dataset.Optical, "missing.txt", io.ErrUnexpectedEOF)
	assert.Equal(t, ResultRetry, result)
	assert.Equal(t, "other.txt", path)
	assert.Contains(t, out.String(), "optical flux")
	assert.Contains(t, out.String(), "dt[hr]")

	_, result = p.Path(dataset.Optical, "other.txt", nil)
	assert.Equal(t, ResultCancel, result)

	_, result = p.Path(dataset.Optical, "other.txt", nil)
	assert.Equal(t, ResultCancel, result, "end of input cancels")
}

func TestRetry(t *testing.T) {
	p := New(strings.NewReader("cancel\n"), io.Discard)
	_, ok := p.Retry()(dataset.XRay, "x", nil)
	assert.False(t, ok)
}

func TestTolerance(t *testing.T) {
	var out bytes.Buffer
	p := New(strings.NewReader("abc\n-1\n2.5\n"), &out)
	v, err := p.Tolerance(5)
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid tolerance"))

	p = New(strings.NewReader("\n"), io.Discard)
	v, err = p.Tolerance(5)
	require.NoError(t, err)
	assert.Equal(t, 5.0, v)
}

func TestToleranceRejectsPartialAndInfinite(t *testing.T) {
	for _, bad := range []string{"5abc", "Inf", "+inf", "NaN", "1e999"} {
		t.Run(bad, func(t *testing.T) {
			var out bytes.Buffer
			p := New(strings.NewReader(bad+"\n3\n"), &out)
			v, err := p.Tolerance(5)
			require.NoError(t, err)
			assert.Equal(t, 3.0, v)
			assert.Contains(t, out.String(), "Invalid tolerance")
		})
	}
}
