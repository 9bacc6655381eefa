package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	h, err := HashPassword("secret")
	require.NoError(t, err)
	assert.NotEqual(t, "secret", h)

	assert.True(t, CheckPassword(&h, "secret"))
	assert.False(t, CheckPassword(&h, "Secret"))
	assert.False(t, CheckPassword(&h, ""))
}

func TestHashPassword_Empty(t *testing.T) {
	_, err := HashPassword("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestCheckPassword_MissingHash(t *testing.T) {
	empty := ""
	assert.False(t, CheckPassword(nil, "secret"))
	assert.False(t, CheckPassword(&empty, "secret"))
}
