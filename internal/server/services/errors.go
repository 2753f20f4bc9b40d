package services

import (
	"github.com/dmitrijs2005/familyaccount/internal/common"
	"github.com/dmitrijs2005/familyaccount/internal/validation"
)

// Error is a failure whose Message can be shown to the API caller. Err is
// one of the common sentinels and decides the HTTP status.
type Error struct {
	Err     error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

func newError(kind error, message string) *Error {
	return &Error{Err: kind, Message: message}
}

// validationError reports the first failed field, in field-name order.
func validationError(errs validation.Errors) *Error {
	return newError(common.ErrorValidation, errs[errs.Fields()[0]])
}

var (
	errInvalidCredentials = newError(common.ErrorUnauthorized, "Invalid email or password")
	errUserExists         = newError(common.ErrorAlreadyExists, "An account with this email already exists")
	errUserNotFound       = newError(common.ErrorUnauthorized, "User not found")
	errTokenExpired       = newError(common.ErrorUnauthorized, "Token expired")
	errTokenInvalid       = newError(common.ErrorUnauthorized, "Invalid token")
	errTokenRevoked       = newError(common.ErrorUnauthorized, "Token has been revoked")
	errWrongPassword      = newError(common.ErrorValidation, "Current password is incorrect")
	errResetCodeInvalid   = newError(common.ErrorValidation, "Invalid or expired reset code")
	errPhotoTooLarge      = newError(common.ErrorValidation, "Photo must be 5 MB or smaller")
	errPhotoType          = newError(common.ErrorValidation, "Only JPEG, PNG, GIF or WebP images are accepted")
	errInternal           = newError(common.ErrorInternal, "Something went wrong. Please try again.")
)
