package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// Claims is what a verified token proves: who it was issued to and when.
// IssuedAt has one-second resolution.
type Claims struct {
	SubjectID string
	IssuedAt  time.Time
}

// TokenIssuer signs and verifies HS256 bearer tokens. Verification performs no I/O.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type IssuerOption func(*TokenIssuer)

// WithClock replaces time.Now, used by tests to move through the TTL window.
func WithClock(now func() time.Time) IssuerOption {
	return func(t *TokenIssuer) { t.now = now }
}

func NewTokenIssuer(secret string, ttl time.Duration, opts ...IssuerOption) *TokenIssuer {
	t := &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

func (t *TokenIssuer) Now() time.Time { return t.now() }

// Issue returns a signed token for subjectID valid for the issuer's TTL.
func (t *TokenIssuer) Issue(subjectID string) (string, error) {
	if subjectID == "" {
		return "", errors.New("subject id is required")
	}
	now := t.now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, structure and expiry. Every failure is ErrInvalidToken.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	var claims jwt.RegisteredClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims,
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return t.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, ErrInvalidToken
	}
	return &Claims{SubjectID: claims.Subject, IssuedAt: claims.IssuedAt.Time}, nil
}
