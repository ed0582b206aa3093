package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user. A username already taken by another
	// user yields ErrConflict.
	Save(ctx context.Context, user *dmn.User) error

	// ByID retrieves a user by their unique ID, or ErrNotFound.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username, or ErrNotFound.
	ByUsername(ctx context.Context, username string) (*dmn.User, error)
}

// MazeRepo stores finished mazes.
type MazeRepo interface {
	Save(ctx context.Context, m *dmn.Maze) error
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
