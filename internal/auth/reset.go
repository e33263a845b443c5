package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ResetTokenTTL is the fixed lifetime of a password-reset token.
const ResetTokenTTL = 10 * time.Minute

const resetTokenBytes = 32

// ResetToken is a freshly generated reset credential. Only Hash and Expires
// are persisted; Plaintext goes to the notifier and nowhere else.
type ResetToken struct {
	Plaintext string
	Hash      string
	Expires   time.Time
}

func GenerateResetToken(now time.Time) (ResetToken, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return ResetToken{}, fmt.Errorf("generate reset token: %w", err)
	}
	plaintext := hex.EncodeToString(buf)
	return ResetToken{
		Plaintext: plaintext,
		Hash:      HashResetToken(plaintext),
		Expires:   now.Add(ResetTokenTTL),
	}, nil
}

// HashResetToken is the deterministic digest stored in place of the plaintext.
func HashResetToken(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
