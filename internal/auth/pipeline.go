package auth

import (
	"context"
	"errors"
	"net/http"

	"tourhub_backend/internal/models"
	"tourhub_backend/pkg/apperrors"
	"tourhub_backend/pkg/contextkeys"
)

// ErrIdentityNotFound is returned by an IdentityLookup when no active
// identity has the requested id.
var ErrIdentityNotFound = errors.New("identity not found")

// Outcome tags a stage result.
type Outcome int

const (
	Continue Outcome = iota
	Reject
)

// Result is what a stage hands back to the runner: keep going, or stop with Err.
type Result struct {
	Outcome Outcome
	Err     *apperrors.AppError
}

func Next() Result { return Result{Outcome: Continue} }

func Fail(err *apperrors.AppError) Result { return Result{Outcome: Reject, Err: err} }

func (r Result) Rejected() bool { return r.Outcome == Reject }

// State accumulates what the stages resolve for one request.
type State struct {
	Request  *http.Request
	Token    string
	Claims   *Claims
	Identity *models.User
}

// Stage is one step of the authorization pipeline.
type Stage struct {
	Name string
	Run  func(ctx context.Context, st *State) Result
}

// Pipeline runs its stages in order and stops at the first rejection.
type Pipeline struct {
	stages []Stage
}

func NewPipeline(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Then returns a new pipeline with extra stages appended.
func (p *Pipeline) Then(stages ...Stage) *Pipeline {
	all := make([]Stage, 0, len(p.stages)+len(stages))
	all = append(all, p.stages...)
	all = append(all, stages...)
	return &Pipeline{stages: all}
}

func (p *Pipeline) Run(ctx context.Context, st *State) Result {
	for _, stage := range p.stages {
		if res := stage.Run(ctx, st); res.Rejected() {
			return res
		}
	}
	return Next()
}

// IdentityLookup loads an active identity by id.
type IdentityLookup func(ctx context.Context, id string) (*models.User, error)

// ExtractTokenStage reads the bearer credential from header or cookie.
func ExtractTokenStage() Stage {
	return Stage{Name: "extract_token", Run: func(_ context.Context, st *State) Result {
		st.Token = ExtractToken(st.Request)
		if st.Token == "" {
			return Fail(apperrors.ErrNotLoggedIn)
		}
		return Next()
	}}
}

func VerifyTokenStage(tokens *TokenIssuer) Stage {
	return Stage{Name: "verify_token", Run: func(_ context.Context, st *State) Result {
		claims, err := tokens.Verify(st.Token)
		if err != nil {
			return Fail(apperrors.ErrInvalidToken)
		}
		st.Claims = claims
		return Next()
	}}
}

func LoadIdentityStage(lookup IdentityLookup) Stage {
	return Stage{Name: "load_identity", Run: func(ctx context.Context, st *State) Result {
		user, err := lookup(ctx, st.Claims.SubjectID)
		switch {
		case errors.Is(err, ErrIdentityNotFound):
			return Fail(apperrors.ErrIdentityGone)
		case err != nil:
			return Fail(apperrors.InternalError(err))
		}
		st.Identity = user
		return Next()
	}}
}

func CheckStalenessStage() Stage {
	return Stage{Name: "check_staleness", Run: func(_ context.Context, st *State) Result {
		if IsStale(st.Identity.PasswordChangedAt, st.Claims.IssuedAt) {
			return Fail(apperrors.ErrStaleToken)
		}
		return Next()
	}}
}

// RestrictToStage admits only identities whose role is in roles. It must run
// after authentication.
func RestrictToStage(roles ...models.UserRole) Stage {
	return Stage{Name: "restrict_to", Run: func(_ context.Context, st *State) Result {
		return Authorize(st.Identity, roles...)
	}}
}

// Authorize is the pure role check behind RestrictToStage.
func Authorize(identity *models.User, roles ...models.UserRole) Result {
	if identity == nil {
		return Fail(apperrors.ErrNotLoggedIn)
	}
	if !Allowed(identity.Role, roles...) {
		return Fail(apperrors.ErrForbidden)
	}
	return Next()
}

// Authenticator bundles the authentication stages in their fixed order.
type Authenticator struct {
	pipeline *Pipeline
}

func NewAuthenticator(tokens *TokenIssuer, lookup IdentityLookup) *Authenticator {
	return &Authenticator{pipeline: NewPipeline(
		ExtractTokenStage(),
		VerifyTokenStage(tokens),
		LoadIdentityStage(lookup),
		CheckStalenessStage(),
	)}
}

func (a *Authenticator) Pipeline() *Pipeline { return a.pipeline }

// Authenticate runs the strict variant: any rejection fails the request.
func (a *Authenticator) Authenticate(ctx context.Context, r *http.Request) (*State, Result) {
	st := &State{Request: r}
	return st, a.pipeline.Run(ctx, st)
}

// Identify runs the permissive variant: rejections degrade to a nil identity.
func (a *Authenticator) Identify(ctx context.Context, r *http.Request) *models.User {
	st := &State{Request: r}
	if res := a.pipeline.Run(ctx, st); res.Rejected() {
		return nil
	}
	return st.Identity
}

// WithIdentity attaches the resolved identity to ctx for downstream handlers.
func WithIdentity(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, contextkeys.IdentityContextKey, user)
}

func IdentityFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(contextkeys.IdentityContextKey).(*models.User)
	return user, ok && user != nil
}
