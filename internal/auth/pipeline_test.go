package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourhub_backend/internal/models"
	"tourhub_backend/pkg/apperrors"
)

type pipelineFixture struct {
	clock  *fakeClock
	tokens *TokenIssuer
	users  map[string]*models.User
	auth   *Authenticator
}

func newPipelineFixture() *pipelineFixture {
	f := &pipelineFixture{
		clock: &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)},
		users: map[string]*models.User{},
	}
	f.tokens = NewTokenIssuer("secret", 24*time.Hour, WithClock(f.clock.Now))
	f.auth = NewAuthenticator(f.tokens, func(_ context.Context, id string) (*models.User, error) {
		u, ok := f.users[id]
		if !ok || !u.Active {
			return nil, ErrIdentityNotFound
		}
		return u, nil
	})
	return f
}

func (f *pipelineFixture) addUser(id string, role models.UserRole) *models.User {
	u := &models.User{BaseModel: models.BaseModel{ID: id}, Role: role, Active: true}
	f.users[id] = u
	return u
}

func (f *pipelineFixture) request(t *testing.T, subject string) *http.Request {
	t.Helper()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if subject != "" {
		token, err := f.tokens.Issue(subject)
		require.NoError(t, err)
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}

func TestPipeline_StopsAtFirstRejection(t *testing.T) {
	var ran []string
	stage := func(name string, res Result) Stage {
		return Stage{Name: name, Run: func(context.Context, *State) Result {
			ran = append(ran, name)
			return res
		}}
	}

	p := NewPipeline(stage("a", Next()), stage("b", Fail(apperrors.ErrForbidden)), stage("c", Next()))
	res := p.Run(context.Background(), &State{})

	assert.True(t, res.Rejected())
	assert.Equal(t, apperrors.ErrForbidden, res.Err)
	assert.Equal(t, []string{"a", "b"}, ran)
}

func TestPipeline_ThenDoesNotMutate(t *testing.T) {
	base := NewPipeline(Stage{Name: "a", Run: func(context.Context, *State) Result { return Next() }})
	extended := base.Then(Stage{Name: "b", Run: func(context.Context, *State) Result {
		return Fail(apperrors.ErrForbidden)
	}})

	assert.False(t, base.Run(context.Background(), &State{}).Rejected())
	assert.True(t, extended.Run(context.Background(), &State{}).Rejected())
}

func TestAuthenticate_Success(t *testing.T) {
	f := newPipelineFixture()
	f.addUser("u1", models.UserRoleUser)

	st, res := f.auth.Authenticate(context.Background(), f.request(t, "u1"))
	require.False(t, res.Rejected())
	assert.Equal(t, "u1", st.Identity.ID)
	assert.Equal(t, "u1", st.Claims.SubjectID)
}

func TestAuthenticate_Rejections(t *testing.T) {
	f := newPipelineFixture()
	f.addUser("u1", models.UserRoleUser)
	gone := f.addUser("gone", models.UserRoleUser)
	gone.Active = false

	t.Run("no token", func(t *testing.T) {
		_, res := f.auth.Authenticate(context.Background(), f.request(t, ""))
		assert.Equal(t, apperrors.ErrNotLoggedIn, res.Err)
	})

	t.Run("garbage token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer garbage")
		_, res := f.auth.Authenticate(context.Background(), r)
		assert.Equal(t, apperrors.ErrInvalidToken, res.Err)
	})

	t.Run("unknown subject", func(t *testing.T) {
		_, res := f.auth.Authenticate(context.Background(), f.request(t, "nobody"))
		assert.Equal(t, apperrors.ErrIdentityGone, res.Err)
	})

	t.Run("deactivated", func(t *testing.T) {
		_, res := f.auth.Authenticate(context.Background(), f.request(t, "gone"))
		assert.Equal(t, apperrors.ErrIdentityGone, res.Err)
		assert.Equal(t, http.StatusUnauthorized, res.Err.HTTPCode)
	})

	t.Run("expired", func(t *testing.T) {
		r := f.request(t, "u1")
		f.clock.Advance(24 * time.Hour)
		defer f.clock.Advance(-24 * time.Hour)
		_, res := f.auth.Authenticate(context.Background(), r)
		assert.Equal(t, apperrors.ErrInvalidToken, res.Err)
	})
}

func TestAuthenticate_StaleAfterPasswordChange(t *testing.T) {
	f := newPipelineFixture()
	u := f.addUser("u1", models.UserRoleUser)

	old := f.request(t, "u1")

	f.clock.Advance(time.Second)
	changed := f.clock.Now()
	u.PasswordChangedAt = &changed

	_, res := f.auth.Authenticate(context.Background(), old)
	assert.Equal(t, apperrors.ErrStaleToken, res.Err)

	fresh := f.request(t, "u1")
	_, res = f.auth.Authenticate(context.Background(), fresh)
	assert.False(t, res.Rejected())
}

func TestAuthenticate_LookupFailureIsInternal(t *testing.T) {
	f := newPipelineFixture()
	a := NewAuthenticator(f.tokens, func(context.Context, string) (*models.User, error) {
		return nil, errors.New("connection refused")
	})

	_, res := a.Authenticate(context.Background(), f.request(t, "u1"))
	require.True(t, res.Rejected())
	assert.Equal(t, http.StatusInternalServerError, res.Err.HTTPCode)
}

func TestIdentify_Permissive(t *testing.T) {
	f := newPipelineFixture()
	f.addUser("u1", models.UserRoleUser)

	assert.Nil(t, f.auth.Identify(context.Background(), f.request(t, "")))
	assert.Nil(t, f.auth.Identify(context.Background(), f.request(t, "nobody")))

	u := f.auth.Identify(context.Background(), f.request(t, "u1"))
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)
}

func TestIdentify_EveryRejectionIsAnonymous(t *testing.T) {
	tests := []struct {
		name    string
		request func(t *testing.T, f *pipelineFixture) *http.Request
	}{
		{
			name: "stale after password change",
			request: func(t *testing.T, f *pipelineFixture) *http.Request {
				r := f.request(t, "u1")
				changed := f.clock.Now().Add(2 * time.Second)
				f.users["u1"].PasswordChangedAt = &changed
				return r
			},
		},
		{
			name: "signed with another secret",
			request: func(t *testing.T, f *pipelineFixture) *http.Request {
				forged, err := NewTokenIssuer("other-secret", time.Hour, WithClock(f.clock.Now)).Issue("u1")
				require.NoError(t, err)
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("Authorization", "Bearer "+forged)
				return r
			},
		},
		{
			name: "malformed token",
			request: func(t *testing.T, f *pipelineFixture) *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("Authorization", "Bearer not.a.jwt")
				return r
			},
		},
		{
			name: "expired",
			request: func(t *testing.T, f *pipelineFixture) *http.Request {
				r := f.request(t, "u1")
				f.clock.Advance(25 * time.Hour)
				return r
			},
		},
		{
			name: "deactivated",
			request: func(t *testing.T, f *pipelineFixture) *http.Request {
				r := f.request(t, "u1")
				f.users["u1"].Active = false
				return r
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newPipelineFixture()
			f.addUser("u1", models.UserRoleUser)
			r := tt.request(t, f)

			_, res := f.auth.Authenticate(context.Background(), r)
			require.True(t, res.Rejected())
			assert.Equal(t, http.StatusUnauthorized, res.Err.HTTPCode)

			assert.Nil(t, f.auth.Identify(context.Background(), r))
		})
	}
}

func TestIdentify_LookupFailureIsAnonymous(t *testing.T) {
	f := newPipelineFixture()
	a := NewAuthenticator(f.tokens, func(context.Context, string) (*models.User, error) {
		return nil, errors.New("connection refused")
	})

	assert.Nil(t, a.Identify(context.Background(), f.request(t, "u1")))
}

func TestRestrictTo(t *testing.T) {
	f := newPipelineFixture()
	f.addUser("standard", models.UserRoleUser)
	f.addUser("boss", models.UserRoleAdmin)

	adminOnly := f.auth.Pipeline().Then(RestrictToStage(models.UserRoleAdmin))

	res := adminOnly.Run(context.Background(), &State{Request: f.request(t, "standard")})
	assert.Equal(t, apperrors.ErrForbidden, res.Err)
	assert.Equal(t, http.StatusForbidden, res.Err.HTTPCode)

	res = adminOnly.Run(context.Background(), &State{Request: f.request(t, "boss")})
	assert.False(t, res.Rejected())
}

func TestAuthorize_RequiresIdentity(t *testing.T) {
	res := Authorize(nil, models.UserRoleAdmin)
	assert.Equal(t, apperrors.ErrNotLoggedIn, res.Err)
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	u := &models.User{Name: "Ann"}
	got, ok := IdentityFrom(WithIdentity(context.Background(), u))
	require.True(t, ok)
	assert.Same(t, u, got)
}
