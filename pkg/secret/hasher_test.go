package secret

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher(t *testing.T) {
	h := NewBcryptHasher(bcryptTestCost)

	digest, err := h.Hash("hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	assert.NotEqual(t, "hunter2", digest)

	assert.True(t, h.Verify("hunter2", digest))
	assert.False(t, h.Verify("hunter3", digest))
	assert.False(t, h.Verify("", digest))
}

func TestBcryptHasherDistinctDigests(t *testing.T) {
	h := NewBcryptHasher(bcryptTestCost)

	first, err := h.Hash("same-secret")
	require.NoError(t, err)
	second, err := h.Hash("same-secret")
	require.NoError(t, err)

	// Salted: same plaintext, different digests, both verify.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same-secret", first))
	assert.True(t, h.Verify("same-secret", second))
}

// bcryptTestCost keeps hashing fast in tests.
const bcryptTestCost = 4
