package service

import "errors"

var (
	// ErrUnauthorized covers bad credentials, bad tokens and tokens for
	// deleted users alike. The cases are deliberately indistinguishable
	// so callers cannot enumerate usernames.
	ErrUnauthorized = errors.New("not authorized")

	ErrValidation  = errors.New("validation")
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("not found")
	ErrUnavailable = errors.New("unavailable")
)
