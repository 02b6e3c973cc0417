package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	digest, err := h.Hash("pw1")
	require.NoError(t, err)
	assert.NotEqual(t, "pw1", digest)

	ok, err := h.Compare("pw1", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare("pw2", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcrypt_SaltedDigests(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBcrypt_CorruptDigest(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	ok, err := h.Compare("pw", "not-a-bcrypt-hash")
	assert.False(t, ok)
	assert.Error(t, err)
}

func TestBcrypt_TooLongPassword(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("x", 100))
	assert.Error(t, err)
}

func TestNewBcrypt_ClampsCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, DefaultCost, NewBcrypt(99).cost)
	assert.Equal(t, 12, NewBcrypt(12).cost)
}
