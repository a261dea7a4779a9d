package errors_test

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/betaox/pkg/errors"
)

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "burst",
			ID:       "050709",
		}
		assert.Equal(t, "burst with ID 050709 not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("burst", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := pkgerrors.NewValidationError("tolerance", -1.0, "must be positive")
		assert.Equal(t, "validation failed for field tolerance: must be positive", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
		assert.Equal(t, -1.0, err.Value)
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{Message: "invalid configuration"}
		assert.Equal(t, "validation failed: invalid configuration", err.Error())
	})
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ParseError
		want string
	}{
		{
			name: "file line and column",
			err:  &pkgerrors.ParseError{Format: "xray", File: "x.txt", Line: 3, Column: 2, Message: "bad float"},
			want: "parse error in xray at x.txt:3:2: bad float",
		},
		{
			name: "file and line",
			err:  &pkgerrors.ParseError{Format: "optical", File: "o.txt", Line: 7, Message: "expected 8 fields"},
			want: "parse error in optical at o.txt:7: expected 8 fields",
		},
		{
			name: "file only",
			err:  &pkgerrors.ParseError{Format: "csv", File: "t.csv", Message: "missing header"},
			want: "parse error in csv file t.csv: missing header",
		},
		{
			name: "no file",
			err:  &pkgerrors.ParseError{Format: "frequency", Message: "empty"},
			want: "frequency parse error: empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, pkgerrors.IsValidationError(tt.err))
		})
	}
}

func TestIOError(t *testing.T) {
	err := pkgerrors.NewIOError("open", "/missing.txt", fs.ErrNotExist)
	assert.Equal(t, "IO error during open of /missing.txt: file does not exist", err.Error())
	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.True(t, pkgerrors.IsIOError(pkgerrors.NewStageError("xray", "/missing.txt", err)))
}

func TestStageError(t *testing.T) {
	base := pkgerrors.NewParseError("beta_x", "b.txt", "bad row", nil)
	err := pkgerrors.NewStageError("beta_x", "b.txt", base)
	assert.Equal(t, "stage beta_x failed for b.txt: parse error in beta_x file b.txt: bad row", err.Error())

	var parseErr *pkgerrors.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "beta_x", parseErr.Format)
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("read", "x", nil))
	assert.NoError(t, pkgerrors.WrapParse("xray", "x", nil))

	err := pkgerrors.WrapParse("xray", "x.txt", errors.New("bad float"))
	assert.True(t, pkgerrors.IsValidationError(err))
	assert.False(t, pkgerrors.IsIOError(err))
}

func TestEmptyInput(t *testing.T) {
	err := pkgerrors.NewStageError("optical", "o.txt", pkgerrors.ErrEmptyInput)
	assert.True(t, pkgerrors.IsEmptyInput(err))
	assert.False(t, pkgerrors.IsNotFound(err))
}
