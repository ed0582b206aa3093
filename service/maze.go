package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

const (
	defaultRecentKey   = "mazes:recent"
	defaultRecentLimit = 100
	defaultPageSize    = 10
)

var _ i.MazeService = &MazeService{}

// MazeOptions tunes a MazeService.
type MazeOptions struct {
	// MaxLevel bounds accepted levels. Zero means maze.MaxLevel.
	MaxLevel int

	// RecentKey is the index key the newest maze IDs are kept under.
	RecentKey string

	// RecentLimit is how many IDs the recent index retains.
	RecentLimit int64

	// Seeder picks a seed when the caller does not supply one. It must not
	// return zero and is called from concurrent requests.
	Seeder func() int64
}

// MazeService generates mazes and serves them from the cache or the repository.
type MazeService struct {
	repo   i.MazeRepo
	cache  i.MazeCache
	recent i.SortedIndex
	logger i.Logger
	opts   *MazeOptions
}

// NewMazeService creates a MazeService. opts may be nil.
func NewMazeService(repo i.MazeRepo, cache i.MazeCache, recent i.SortedIndex, logger i.Logger, opts *MazeOptions) (*MazeService, error) {
	if repo == nil || cache == nil || recent == nil || logger == nil {
		return nil, errors.New("maze service requires a repo, a cache, a recent index and a logger")
	}

	if opts == nil {
		opts = &MazeOptions{}
	}

	if opts.MaxLevel <= 0 {
		opts.MaxLevel = maze.MaxLevel
	}

	if opts.RecentKey == "" {
		opts.RecentKey = defaultRecentKey
	}

	if opts.RecentLimit <= 0 {
		opts.RecentLimit = defaultRecentLimit
	}

	if opts.Seeder == nil {
		var mu sync.Mutex
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		opts.Seeder = func() int64 {
			mu.Lock()
			defer mu.Unlock()
			return rng.Int63() + 1
		}
	}

	return &MazeService{
		repo:   repo,
		cache:  cache,
		recent: recent,
		logger: logger,
		opts:   opts,
	}, nil
}

// Create generates and stores a new maze.
func (ms *MazeService) Create(ctx context.Context, owner uuid.UUID, level int, seed int64) (*dmn.Maze, error) {
	if seed == 0 {
		seed = ms.opts.Seeder()
	}

	started := time.Now()
	m, err := dmn.NewMaze(dmn.MazeConfig{
		ID:       uuid.New(),
		OwnerID:  owner,
		Level:    level,
		Seed:     seed,
		MaxLevel: ms.opts.MaxLevel,
	})
	if err != nil {
		return nil, err
	}
	ms.logger.Debug(fmt.Sprintf("Generated maze: ID=%s Level=%d Seed=%d in %v", m.ID, level, seed, time.Since(started)))

	if err := ms.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("saving maze: %w", err)
	}

	ms.cacheMaze(ctx, m)

	if err := ms.recent.Add(ctx, ms.opts.RecentKey, float64(m.CreatedAt.UnixNano()), m.ID.String()); err != nil {
		ms.logger.Warn(fmt.Sprintf("Adding maze %s to recent index: %v", m.ID, err))
	} else {
		ms.trimRecent(ctx)
	}

	ms.logger.Info(fmt.Sprintf("Created maze: ID=%s Owner=%s Level=%d", m.ID, owner, level))
	return m, nil
}

// ByID returns a maze from the cache, falling back to the repository.
func (ms *MazeService) ByID(ctx context.Context, id uuid.UUID) (*dmn.Maze, error) {
	m, err := ms.cache.Get(ctx, id)
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, i.ErrNotFound) {
		ms.logger.Warn(fmt.Sprintf("Reading maze %s from cache: %v", id, err))
	}

	m, err = ms.repo.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ms.cacheMaze(ctx, m)
	return m, nil
}

// Recent returns the newest mazes, skipping IDs whose maze is gone.
func (ms *MazeService) Recent(ctx context.Context, limit int64) ([]*dmn.Maze, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > ms.opts.RecentLimit {
		limit = ms.opts.RecentLimit
	}

	ids, err := ms.recent.Tops(ctx, ms.opts.RecentKey, limit)
	if err != nil {
		return nil, err
	}

	mazes := make([]*dmn.Maze, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			ms.logger.Warn(fmt.Sprintf("Dropping malformed ID %q from recent index", raw))
			ms.pruneRecent(ctx, raw)
			continue
		}

		m, err := ms.ByID(ctx, id)
		if errors.Is(err, i.ErrNotFound) {
			ms.pruneRecent(ctx, raw)
			continue
		}
		if err != nil {
			return nil, err
		}
		mazes = append(mazes, m)
	}

	return mazes, nil
}

// Delete removes a maze owned by owner from every store.
func (ms *MazeService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	m, err := ms.repo.ByID(ctx, id)
	if err != nil {
		return err
	}

	if m.OwnerID != owner {
		return i.ErrNotOwner
	}

	if err := ms.repo.Delete(ctx, id); err != nil {
		return err
	}

	if err := ms.cache.Delete(ctx, id); err != nil {
		ms.logger.Warn(fmt.Sprintf("Evicting maze %s from cache: %v", id, err))
	}
	if err := ms.recent.Remove(ctx, ms.opts.RecentKey, id.String()); err != nil {
		ms.logger.Warn(fmt.Sprintf("Removing maze %s from recent index: %v", id, err))
	}

	ms.logger.Info(fmt.Sprintf("Deleted maze: ID=%s Owner=%s", id, owner))
	return nil
}

// trimRecent keeps the recent index within RecentLimit. Failures are logged, not returned.
func (ms *MazeService) trimRecent(ctx context.Context) {
	count, err := ms.recent.Count(ctx, ms.opts.RecentKey)
	if err != nil {
		ms.logger.Warn(fmt.Sprintf("Counting recent index: %v", err))
		return
	}
	if count <= ms.opts.RecentLimit {
		return
	}
	if err := ms.recent.Trim(ctx, ms.opts.RecentKey, ms.opts.RecentLimit); err != nil {
		ms.logger.Warn(fmt.Sprintf("Trimming recent index: %v", err))
	}
}

// pruneRecent drops a member from the recent index. Failures are logged, not returned.
func (ms *MazeService) pruneRecent(ctx context.Context, member string) {
	if err := ms.recent.Remove(ctx, ms.opts.RecentKey, member); err != nil {
		ms.logger.Warn(fmt.Sprintf("Pruning %q from recent index: %v", member, err))
	}
}

// cacheMaze stores m in the cache. Failures are logged, not returned.
func (ms *MazeService) cacheMaze(ctx context.Context, m *dmn.Maze) {
	if err := ms.cache.Set(ctx, m); err != nil {
		ms.logger.Warn(fmt.Sprintf("Caching maze %s: %v", m.ID, err))
	}
}
