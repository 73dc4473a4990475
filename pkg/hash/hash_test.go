package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hashed, err := HashPassword("S3cure-pass")
	require.NoError(t, err)
	require.NotEqual(t, "S3cure-pass", hashed)

	assert.True(t, CheckPassword("S3cure-pass", hashed))
	assert.False(t, CheckPassword("wrong-pass", hashed))
}
