package optional_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/betaox/pkg/optional"
)

func TestFloat(t *testing.T) {
	t.Run("zero value is unset", func(t *testing.T) {
		var f optional.Float
		assert.False(t, f.IsSet())
		assert.Equal(t, -1.0, f.Or(-1))
		assert.Equal(t, "NULL", f.String())
	})

	t.Run("zero can be set", func(t *testing.T) {
		f := optional.Some(0)
		v, ok := f.Get()
		assert.True(t, ok)
		assert.Equal(t, 0.0, v)
		assert.Equal(t, "0", f.String())
	})

	t.Run("json null round trip", func(t *testing.T) {
		type wrapper struct {
			Index optional.Float `json:"index"`
		}
		data, err := json.Marshal(wrapper{})
		require.NoError(t, err)
		assert.JSONEq(t, `{"index":null}`, string(data))

		var w wrapper
		require.NoError(t, json.Unmarshal([]byte(`{"index":0.75}`), &w))
		assert.Equal(t, 0.75, w.Index.Or(0))

		require.NoError(t, json.Unmarshal([]byte(`{"index":null}`), &w))
		assert.False(t, w.Index.IsSet())
	})
}
