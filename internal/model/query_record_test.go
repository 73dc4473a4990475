package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryStatusTerminal(t *testing.T) {
	assert.False(t, QueryStatusPending.Terminal())
	assert.False(t, QueryStatusProcessing.Terminal())
	assert.True(t, QueryStatusCompleted.Terminal())
	assert.True(t, QueryStatusFailed.Terminal())
}

func TestJSONMapScan(t *testing.T) {
	var m JSONMap
	require.NoError(t, m.Scan([]byte(`{"source":"mobile","retry":2}`)))
	assert.Equal(t, "mobile", m["source"])
	assert.Equal(t, float64(2), m["retry"])

	var fromString JSONMap
	require.NoError(t, fromString.Scan(`{"k":"v"}`))
	assert.Equal(t, "v", fromString["k"])

	var fromNil JSONMap
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)

	var bad JSONMap
	assert.Error(t, bad.Scan(42))
}

func TestJSONMapValue(t *testing.T) {
	v, err := JSONMap{"k": "v"}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"k":"v"}`, string(v.([]byte)))

	nilValue, err := JSONMap(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, nilValue)
}
