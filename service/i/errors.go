package i

import "errors"

// Errors shared between services and their adapters.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrNotOwner           = errors.New("maze belongs to another user")
	ErrInvalidCredentials = errors.New("invalid username or password")
)
