package usecase

import "errors"

var (
	// ErrAssessmentNotFound is returned when an assessment does not exist or
	// belongs to another user.
	ErrAssessmentNotFound = errors.New("assessment not found")

	// ErrInvalidCredentials is returned on login when the username is unknown
	// or the password does not match. The two cases are deliberately
	// indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrPasswordTooShort is returned on registration when the password is
	// below the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
)
