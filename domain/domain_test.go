package domain

import (
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMaze(t *testing.T) {
	t.Run("Same seed and level give the same rows", func(t *testing.T) {
		cfg := MazeConfig{ID: uuid.New(), OwnerID: uuid.New(), Level: 6, Seed: 77}
		a, err := NewMaze(cfg)
		require.NoError(t, err)
		b, err := NewMaze(cfg)
		require.NoError(t, err)

		assert.Equal(t, a.Rows, b.Rows)
		assert.Len(t, a.Rows, 13)
		assert.Equal(t, cfg.ID, a.ID)
	})

	t.Run("Endpoints are marked", func(t *testing.T) {
		m, err := NewMaze(MazeConfig{ID: uuid.New(), Level: 3, Seed: 9})
		require.NoError(t, err)

		grid, err := m.Grid()
		require.NoError(t, err)
		assert.Equal(t, maze.StartPoint, grid.Cell(1, 1))
		assert.Equal(t, maze.EndPoint, grid.Cell(5, 5))
		assert.True(t, grid.Generated())
	})

	t.Run("Zero seed is rejected", func(t *testing.T) {
		_, err := NewMaze(MazeConfig{Level: 3})
		assert.ErrorIs(t, err, ErrZeroSeed)
	})

	t.Run("Level errors are passed through", func(t *testing.T) {
		_, err := NewMaze(MazeConfig{Level: 0, Seed: 1})
		assert.ErrorIs(t, err, maze.ErrInvalidLevel)

		_, err = NewMaze(MazeConfig{Level: 11, Seed: 1, MaxLevel: 10})
		assert.ErrorIs(t, err, maze.ErrLevelTooLarge)
	})
}

func TestNewUser(t *testing.T) {
	t.Run("Valid user", func(t *testing.T) {
		u, err := NewUser(UserConfig{ID: uuid.New(), Username: "maze_maker", PlainPassword: "correct-horse-battery-staple-42"})
		require.NoError(t, err)
		assert.NotEqual(t, "correct-horse-battery-staple-42", u.PasswordHash)
		assert.True(t, u.VerifyPassword("correct-horse-battery-staple-42"))
		assert.False(t, u.VerifyPassword("wrong"))
	})

	t.Run("Username rules", func(t *testing.T) {
		_, err := NewUser(UserConfig{Username: "ab", PlainPassword: "correct-horse-battery-staple-42"})
		assert.ErrorIs(t, err, ErrUsernameTooShort)

		_, err = NewUser(UserConfig{Username: "abcdefghijklmnopqrstu", PlainPassword: "correct-horse-battery-staple-42"})
		assert.ErrorIs(t, err, ErrUsernameTooLong)

		_, err = NewUser(UserConfig{Username: "bad name", PlainPassword: "correct-horse-battery-staple-42"})
		assert.ErrorIs(t, err, ErrUsernameFormat)
	})

	t.Run("Weak password", func(t *testing.T) {
		_, err := NewUser(UserConfig{Username: "maze_maker", PlainPassword: "password"})
		assert.ErrorIs(t, err, ErrWeakPassword)
	})
}
