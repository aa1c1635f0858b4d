package fittrack

import (
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeInvalidCreds is reported for every failed credential check.
	// A nonexistent email and a wrong password are indistinguishable on
	// purpose; the response must not enable account enumeration.
	TextCodeInvalidCreds = "INVALID_CREDENTIALS"
	// TextCodeTokenExpired marks tokens past their validity window.
	TextCodeTokenExpired = "TOKEN_EXPIRED"
	// TextCodeTokenMalformed marks tokens that fail signature or shape checks.
	TextCodeTokenMalformed = "TOKEN_MALFORMED"
	// TextCodeSessionNotFound marks requests carrying no session cookie.
	TextCodeSessionNotFound = "SESSION_NOT_FOUND"
)

// ErrInvalidCredentials is the single error for any failed login.
var ErrInvalidCredentials = goerrors.New("invalid email or password", goerrors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenExpired is returned when a session token is past its expiry.
var ErrTokenExpired = goerrors.New("authentication token expired", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(goerrors.CodeUnauthorized)

// ErrTokenMalformed is returned when a token fails signature or shape validation.
var ErrTokenMalformed = goerrors.New("authentication token malformed", goerrors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(goerrors.CodeUnauthorized)

// ErrUnableToFindSession is the error when a request carries no session cookie.
var ErrUnableToFindSession = goerrors.New("unable to find session", goerrors.CategoryAuth).
	WithTextCode(TextCodeSessionNotFound).
	WithCode(goerrors.CodeUnauthorized)

// ErrAdminNotFound is returned when operating on a nonexistent admin id.
var ErrAdminNotFound = goerrors.New("admin not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrUserNotFound is returned when operating on a nonexistent user id.
var ErrUserNotFound = goerrors.New("user not found", goerrors.CategoryNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrMasterAdminImmutable guards the bootstrap admin from deletion.
var ErrMasterAdminImmutable = goerrors.New("master admin cannot be deleted", goerrors.CategoryAuthz).
	WithCode(goerrors.CodeForbidden)

// ErrNoEmptyString rejects empty secrets before hashing.
var ErrNoEmptyString = goerrors.New("value must not be empty", goerrors.CategoryValidation).
	WithCode(goerrors.CodeBadRequest)

// IsTokenExpiredError will check for expired tokens, including errors
// coming from the jwt library before they are wrapped.
func IsTokenExpiredError(err error) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode == TextCodeTokenExpired {
		return true
	}
	return strings.Contains(err.Error(), "token is expired")
}

// IsMalformedError will check for malformed token errors.
func IsMalformedError(err error) bool {
	if err == nil {
		return false
	}
	var rich *goerrors.Error
	if goerrors.As(err, &rich) && rich.TextCode == TextCodeTokenMalformed {
		return true
	}
	return strings.Contains(err.Error(), "token is malformed") ||
		strings.Contains(err.Error(), "missing or malformed JWT")
}
