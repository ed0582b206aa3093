package service

import (
	"context"
	"sync"
	"testing"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mazeFixture struct {
	svc    *MazeService
	repo   *memMazeRepo
	cache  *memCache
	index  *memIndex
	logger *recordingLogger
}

func newMazeFixture(t *testing.T, opts *MazeOptions) *mazeFixture {
	t.Helper()
	f := &mazeFixture{
		repo:   newMemMazeRepo(),
		cache:  newMemCache(),
		index:  newMemIndex(),
		logger: &recordingLogger{},
	}
	svc, err := NewMazeService(f.repo, f.cache, f.index, f.logger, opts)
	require.NoError(t, err)
	f.svc = svc
	return f
}

func TestNewMazeService(t *testing.T) {
	t.Run("Missing dependencies", func(t *testing.T) {
		_, err := NewMazeService(nil, newMemCache(), newMemIndex(), &recordingLogger{}, nil)
		assert.Error(t, err)
	})

	t.Run("Defaults", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		assert.Equal(t, maze.MaxLevel, f.svc.opts.MaxLevel)
		assert.Equal(t, defaultRecentKey, f.svc.opts.RecentKey)
		assert.EqualValues(t, defaultRecentLimit, f.svc.opts.RecentLimit)
		assert.NotZero(t, f.svc.opts.Seeder())
	})
}

func TestMazeServiceCreate(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("Stores, caches and indexes the maze", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		m, err := f.svc.Create(ctx, owner, 5, 1234)
		require.NoError(t, err)

		assert.Equal(t, owner, m.OwnerID)
		assert.EqualValues(t, 1234, m.Seed)
		assert.Len(t, m.Rows, 11)
		assert.Contains(t, f.repo.mazes, m.ID)
		assert.Contains(t, f.cache.mazes, m.ID)
		assert.Equal(t, 1, f.index.size(defaultRecentKey))
	})

	t.Run("Zero seed uses the seeder", func(t *testing.T) {
		f := newMazeFixture(t, &MazeOptions{Seeder: func() int64 { return 99 }})
		m, err := f.svc.Create(ctx, owner, 3, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 99, m.Seed)
	})

	t.Run("Same seed reproduces the rows", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		a, err := f.svc.Create(ctx, owner, 7, 555)
		require.NoError(t, err)
		b, err := f.svc.Create(ctx, owner, 7, 555)
		require.NoError(t, err)
		assert.NotEqual(t, a.ID, b.ID)
		assert.Equal(t, a.Rows, b.Rows)
	})

	t.Run("Invalid level", func(t *testing.T) {
		f := newMazeFixture(t, &MazeOptions{MaxLevel: 4})
		_, err := f.svc.Create(ctx, owner, 0, 1)
		assert.ErrorIs(t, err, maze.ErrInvalidLevel)

		_, err = f.svc.Create(ctx, owner, 5, 1)
		assert.ErrorIs(t, err, maze.ErrLevelTooLarge)
		assert.Empty(t, f.repo.mazes)
	})

	t.Run("Cache failure is logged, not returned", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		f.cache.failSet = true
		_, err := f.svc.Create(ctx, owner, 2, 8)
		require.NoError(t, err)
		assert.Contains(t, f.logger.lines[len(f.logger.lines)-2], "WARN Caching maze")
	})

	t.Run("Concurrent creates draw distinct seeds", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		const workers = 8
		seeds := make([]int64, workers)
		errs := make([]error, workers)

		var wg sync.WaitGroup
		for n := 0; n < workers; n++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				m, err := f.svc.Create(ctx, uuid.New(), 2, 0)
				errs[n] = err
				if err == nil {
					seeds[n] = m.Seed
				}
			}(n)
		}
		wg.Wait()

		seen := make(map[int64]bool)
		for n := 0; n < workers; n++ {
			require.NoError(t, errs[n])
			assert.NotZero(t, seeds[n])
			seen[seeds[n]] = true
		}
		assert.Len(t, seen, workers)
	})

	t.Run("Index count failure is logged, not returned", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		f.index.failCount = true
		_, err := f.svc.Create(ctx, owner, 2, 8)
		require.NoError(t, err)
		assert.True(t, f.logger.has("WARN Counting recent index"))
	})

	t.Run("Recent index is trimmed", func(t *testing.T) {
		f := newMazeFixture(t, &MazeOptions{RecentLimit: 2})
		for seed := int64(1); seed <= 4; seed++ {
			_, err := f.svc.Create(ctx, owner, 2, seed)
			require.NoError(t, err)
		}
		assert.Equal(t, 2, f.index.size(defaultRecentKey))
	})
}

func TestMazeServiceByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Cache hit skips the repo", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		m, err := f.svc.Create(ctx, uuid.New(), 3, 3)
		require.NoError(t, err)

		got, err := f.svc.ByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, m, got)
		assert.Zero(t, f.repo.reads)
	})

	t.Run("Cache miss back-fills", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		m, err := f.svc.Create(ctx, uuid.New(), 3, 3)
		require.NoError(t, err)
		require.NoError(t, f.cache.Delete(ctx, m.ID))

		got, err := f.svc.ByID(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, m.Rows, got.Rows)
		assert.Equal(t, 1, f.repo.reads)
		assert.Contains(t, f.cache.mazes, m.ID)
	})

	t.Run("Unknown maze", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		_, err := f.svc.ByID(ctx, uuid.New())
		assert.ErrorIs(t, err, i.ErrNotFound)
	})
}

func TestMazeServiceRecent(t *testing.T) {
	ctx := context.Background()
	f := newMazeFixture(t, nil)

	var ids []uuid.UUID
	for seed := int64(1); seed <= 3; seed++ {
		m, err := f.svc.Create(ctx, uuid.New(), 2, seed)
		require.NoError(t, err)
		ids = append(ids, m.ID)
	}
	// Scores come from creation time; pin them so the order is certain.
	for n, id := range ids {
		require.NoError(t, f.index.Add(ctx, defaultRecentKey, float64(n), id.String()))
	}
	require.NoError(t, f.index.Add(ctx, defaultRecentKey, 100, "not-a-uuid"))

	t.Run("Newest first, malformed dropped", func(t *testing.T) {
		mazes, err := f.svc.Recent(ctx, 2)
		require.NoError(t, err)
		require.Len(t, mazes, 1)
		assert.Equal(t, ids[2], mazes[0].ID)
		assert.Equal(t, 3, f.index.size(defaultRecentKey))
	})

	t.Run("Missing mazes are pruned", func(t *testing.T) {
		delete(f.repo.mazes, ids[2])
		require.NoError(t, f.cache.Delete(ctx, ids[2]))

		mazes, err := f.svc.Recent(ctx, 0)
		require.NoError(t, err)
		require.Len(t, mazes, 2)
		assert.Equal(t, ids[1], mazes[0].ID)
		assert.Equal(t, ids[0], mazes[1].ID)
		assert.Equal(t, 2, f.index.size(defaultRecentKey))
	})

	t.Run("Prune failures are logged", func(t *testing.T) {
		require.NoError(t, f.index.Add(ctx, defaultRecentKey, 200, "still-not-a-uuid"))
		f.index.failRemove = true
		defer func() { f.index.failRemove = false }()

		mazes, err := f.svc.Recent(ctx, 0)
		require.NoError(t, err)
		assert.Len(t, mazes, 2)
		assert.True(t, f.logger.has(`WARN Pruning "still-not-a-uuid" from recent index`))
	})
}

func TestMazeServiceDelete(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("Owner deletes everywhere", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		m, err := f.svc.Create(ctx, owner, 2, 2)
		require.NoError(t, err)

		require.NoError(t, f.svc.Delete(ctx, owner, m.ID))
		assert.NotContains(t, f.repo.mazes, m.ID)
		assert.NotContains(t, f.cache.mazes, m.ID)
		assert.Zero(t, f.index.size(defaultRecentKey))
	})

	t.Run("Other users are refused", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		m, err := f.svc.Create(ctx, owner, 2, 2)
		require.NoError(t, err)

		assert.ErrorIs(t, f.svc.Delete(ctx, uuid.New(), m.ID), i.ErrNotOwner)
		assert.Contains(t, f.repo.mazes, m.ID)
	})

	t.Run("Unknown maze", func(t *testing.T) {
		f := newMazeFixture(t, nil)
		assert.ErrorIs(t, f.svc.Delete(ctx, owner, uuid.New()), i.ErrNotFound)
	})
}
