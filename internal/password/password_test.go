package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moveon-app/moveon-server/internal/model"
)

func TestBcrypt_HashVerify_Roundtrip(t *testing.T) {
	h := NewBcrypt()

	hash, err := h.Hash("Abcdefg1")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, "Abcdefg1", hash)

	assert.True(t, h.Verify("Abcdefg1", hash))
	assert.False(t, h.Verify("Abcdefg2", hash))
	assert.False(t, h.Verify("abcdefg1", hash))
}

func TestBcrypt_Hash_Salted(t *testing.T) {
	h := NewBcrypt()

	first, err := h.Hash("Abcdefg1")
	require.NoError(t, err)
	second, err := h.Hash("Abcdefg1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("Abcdefg1", first))
	assert.True(t, h.Verify("Abcdefg1", second))
}

func TestBcrypt_Hash_Empty(t *testing.T) {
	h := NewBcrypt()

	_, err := h.Hash("")
	require.ErrorIs(t, err, model.ErrEmptyPassword)
}

func TestBcrypt_Verify_GarbageHash(t *testing.T) {
	h := NewBcrypt()

	assert.False(t, h.Verify("Abcdefg1", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify("Abcdefg1", ""))
}
