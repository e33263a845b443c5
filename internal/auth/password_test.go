package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "Secret123!")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123!", digest)
	assert.True(t, strings.HasPrefix(digest, "$2a$"))

	ok, err := h.Verify(ctx, "Secret123!", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify(ctx, "Secret123?", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasher_SaltsEveryDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)
	a, err := h.Hash(context.Background(), "Secret123!")
	require.NoError(t, err)
	b, err := h.Hash(context.Background(), "Secret123!")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHasher_Policy(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)

	_, err := h.Hash(context.Background(), "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = h.Hash(context.Background(), strings.Repeat("a", MaxPasswordLength+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)

	_, err = h.Hash(context.Background(), strings.Repeat("a", MaxPasswordLength))
	assert.NoError(t, err)
}

func TestHasher_CancelledContext(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Hash(ctx, "Secret123!")
	assert.ErrorIs(t, err, context.Canceled)

	ok, err := h.Verify(ctx, "Secret123!", "$2a$04$invalid")
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, ok)
}

func TestHasher_MalformedDigest(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 1)
	ok, err := h.Verify(context.Background(), "Secret123!", "not-a-bcrypt-hash")
	assert.Error(t, err)
	assert.False(t, ok)
}
