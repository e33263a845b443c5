package apperrors

import "net/http"

// Predefined errors of the authentication subsystem. Decorate them with
// WithDetails/WithError; both return copies.
var (
	ErrNotLoggedIn = New(CodeUnauthenticated, "auth",
		"You are not logged in! Please log in to get access.", http.StatusUnauthorized)
	ErrInvalidToken = New(CodeUnauthenticated, "auth",
		"Invalid token. Please log in again.", http.StatusUnauthorized)
	ErrIdentityGone = New(CodeUnauthenticated, "auth",
		"The user belonging to this token no longer exists.", http.StatusUnauthorized)
	ErrStaleToken = New(CodeStaleToken, "auth",
		"User recently changed password. Please log in again.", http.StatusUnauthorized)
	ErrInvalidCredentials = New(CodeInvalidCredentials, "auth",
		"Incorrect email or password", http.StatusUnauthorized)
	ErrIncorrectPassword = New(CodeInvalidCredentials, "auth",
		"Your current password is wrong.", http.StatusUnauthorized)
	ErrForbidden = New(CodeForbidden, "auth",
		"You do not have permission to perform this action", http.StatusForbidden)

	ErrResetTokenInvalid = New(CodeTokenInvalid, "auth",
		"Token is invalid or has expired.", http.StatusBadRequest)
	ErrPasswordMismatch = New(CodeValidationFailed, "auth",
		"Passwords are not the same.", http.StatusBadRequest)
	ErrMissingCredentials = New(CodeValidationFailed, "auth",
		"Please provide email and password!", http.StatusBadRequest)

	ErrEmailNotFound = New(CodeNotFound, "user",
		"There is no user with that email address.", http.StatusNotFound)
	ErrUserNotFound = New(CodeNotFound, "user",
		"No user found with that ID", http.StatusNotFound)
	ErrEmailAlreadyExists = New(CodeAlreadyExists, "user",
		"Email already exists", http.StatusConflict)

	ErrEmailDelivery = New(CodeUpstreamError, "upstream",
		"There was an error sending the email. Try again later!", http.StatusInternalServerError)

	ErrTooManyRequests = New(CodeRateLimited, "request",
		"Too many requests from this IP, please try again in an hour.", http.StatusTooManyRequests)
)

// ErrNotFound wraps a repository miss for the given resource.
func ErrNotFound(domain string, err error) *AppError {
	return Wrap(err, CodeNotFound, domain, "No document found with that ID", http.StatusNotFound)
}
