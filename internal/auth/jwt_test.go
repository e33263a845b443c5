package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestIssuer(clock *fakeClock) *TokenIssuer {
	return NewTokenIssuer("test-secret", time.Hour, WithClock(clock.Now))
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 500, time.UTC)}
	issuer := newTestIssuer(clock)

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	claims, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID)
	assert.Equal(t, clock.t.Unix(), claims.IssuedAt.Unix())
}

func TestTokenIssuer_Deterministic(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(clock)

	a, err := issuer.Issue("user-1")
	require.NoError(t, err)
	b, err := issuer.Issue("user-1")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTokenIssuer_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	issuer := newTestIssuer(clock)

	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	clock.Advance(time.Hour - time.Second)
	_, err = issuer.Verify(token)
	assert.NoError(t, err)

	clock.Advance(time.Second)
	_, err = issuer.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	issuer := newTestIssuer(clock)
	token, err := issuer.Issue("user-1")
	require.NoError(t, err)

	other := NewTokenIssuer("other-secret", time.Hour, WithClock(clock.Now))
	forged, err := other.Issue("user-1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-1",
		IssuedAt:  jwt.NewNumericDate(clock.t),
		ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  "user-1",
		IssuedAt: jwt.NewNumericDate(clock.t),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	cases := map[string]string{
		"empty":         "",
		"malformed":     "not.a.token",
		"wrong secret":  forged,
		"bad signature": tampered,
		"alg none":      none,
		"missing exp":   noExp,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := issuer.Verify(tok)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenIssuer_RequiresSubject(t *testing.T) {
	_, err := NewTokenIssuer("s", time.Hour).Issue("")
	assert.Error(t, err)
}
