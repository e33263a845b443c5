package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultBcryptCost = 12
	MinPasswordLength = 8
	// MaxPasswordLength is the bcrypt input limit in bytes.
	MaxPasswordLength = 72
)

var (
	ErrPasswordTooShort = fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	ErrPasswordTooLong  = fmt.Errorf("password must be at most %d bytes long", MaxPasswordLength)
)

// Hasher hashes and verifies passwords with bcrypt on a bounded pool so a
// burst of logins cannot saturate every CPU. Callers block until their job
// finishes or ctx is done; a cancelled caller never observes a digest.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

func NewHasher(cost, concurrency int) *Hasher {
	if cost == 0 {
		cost = DefaultBcryptCost
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Hasher{cost: cost, sem: semaphore.NewWeighted(int64(concurrency))}
}

type hashResult struct {
	digest []byte
	err    error
}

// Hash returns the bcrypt digest of plaintext.
func (h *Hasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := ValidatePassword(plaintext); err != nil {
		return "", err
	}
	res, err := h.run(ctx, func() hashResult {
		digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
		return hashResult{digest: digest, err: err}
	})
	if err != nil {
		return "", err
	}
	if res.err != nil {
		return "", fmt.Errorf("hash password: %w", res.err)
	}
	return string(res.digest), nil
}

// Verify reports whether plaintext matches digest. A mismatch is not an error.
func (h *Hasher) Verify(ctx context.Context, plaintext, digest string) (bool, error) {
	res, err := h.run(ctx, func() hashResult {
		return hashResult{err: bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))}
	})
	if err != nil {
		return false, err
	}
	switch {
	case res.err == nil:
		return true, nil
	case errors.Is(res.err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("verify password: %w", res.err)
	}
}

func (h *Hasher) run(ctx context.Context, job func() hashResult) (hashResult, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return hashResult{}, err
	}

	done := make(chan hashResult, 1)
	go func() {
		defer h.sem.Release(1)
		done <- job()
	}()

	select {
	case res := <-done:
		return res, nil
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}
}

// ValidatePassword enforces the length policy shared by signup, update and reset.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}
