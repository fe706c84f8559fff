package common

import "errors"

// Sentinel errors shared by client layers. Callers match them with
// errors.Is.
var (
	// Validation errors, raised before any network call.
	ErrInvalidEmail    = errors.New("invalid email address")
	ErrInvalidPassword = errors.New("invalid password")

	// Token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")

	// Local persistence errors.
	ErrStorageUnavailable = errors.New("local storage unavailable")
)
