// Package repositories implements MongoDB data access for the three
// collections (users, orders, products).
package repositories

import "errors"

// Store-level sentinels. Services translate these into their own error
// vocabulary; anything else is a persistence error.
var (
	ErrNotFound  = errors.New("repositories: document not found")
	ErrDuplicate = errors.New("repositories: duplicate key")
)
