// Package services holds the application logic between the HTTP layer and
// the repositories.
package services

import "errors"

// Failure vocabulary the controllers map to HTTP status codes. Anything
// else bubbling out of a service is treated as a persistence error (500).
var (
	ErrDuplicateUser      = errors.New("username already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
