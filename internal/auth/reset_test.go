package auth

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateResetToken(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	tok, err := GenerateResetToken(now)
	require.NoError(t, err)

	raw, err := hex.DecodeString(tok.Plaintext)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
	assert.Equal(t, HashResetToken(tok.Plaintext), tok.Hash)
	assert.NotEqual(t, tok.Plaintext, tok.Hash)
	assert.Equal(t, now.Add(10*time.Minute), tok.Expires)

	again, err := GenerateResetToken(now)
	require.NoError(t, err)
	assert.NotEqual(t, tok.Plaintext, again.Plaintext)
}

func TestHashResetToken_Deterministic(t *testing.T) {
	assert.Equal(t, HashResetToken("abc"), HashResetToken("abc"))
	assert.NotEqual(t, HashResetToken("abc"), HashResetToken("abd"))
	assert.Len(t, HashResetToken("abc"), 64)
}
