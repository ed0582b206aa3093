package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
)

type memMazeRepo struct {
	sync.Mutex
	mazes map[uuid.UUID]*dmn.Maze
	reads int
}

func newMemMazeRepo() *memMazeRepo {
	return &memMazeRepo{mazes: make(map[uuid.UUID]*dmn.Maze)}
}

func (r *memMazeRepo) Save(_ context.Context, m *dmn.Maze) error {
	r.Lock()
	defer r.Unlock()
	r.mazes[m.ID] = m
	return nil
}

func (r *memMazeRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Maze, error) {
	r.Lock()
	defer r.Unlock()
	r.reads++
	m, ok := r.mazes[id]
	if !ok {
		return nil, i.ErrNotFound
	}
	return m, nil
}

func (r *memMazeRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.Lock()
	defer r.Unlock()
	if _, ok := r.mazes[id]; !ok {
		return i.ErrNotFound
	}
	delete(r.mazes, id)
	return nil
}

type memCache struct {
	memMazeRepo
	failSet bool
}

func newMemCache() *memCache {
	return &memCache{memMazeRepo: memMazeRepo{mazes: make(map[uuid.UUID]*dmn.Maze)}}
}

func (c *memCache) Set(ctx context.Context, m *dmn.Maze) error {
	if c.failSet {
		return errors.New("cache unavailable")
	}
	return c.Save(ctx, m)
}

func (c *memCache) Get(ctx context.Context, id uuid.UUID) (*dmn.Maze, error) {
	return c.ByID(ctx, id)
}

func (c *memCache) Delete(_ context.Context, id uuid.UUID) error {
	c.Lock()
	defer c.Unlock()
	delete(c.mazes, id)
	return nil
}

type memIndex struct {
	sync.Mutex
	sets       map[string]map[string]float64
	failRemove bool
	failCount  bool
}

func newMemIndex() *memIndex {
	return &memIndex{sets: make(map[string]map[string]float64)}
}

func (x *memIndex) Add(_ context.Context, key string, score float64, member string) error {
	x.Lock()
	defer x.Unlock()
	if x.sets[key] == nil {
		x.sets[key] = make(map[string]float64)
	}
	x.sets[key][member] = score
	return nil
}

func (x *memIndex) sorted(key string) []string {
	members := make([]string, 0, len(x.sets[key]))
	for m := range x.sets[key] {
		members = append(members, m)
	}
	sort.Slice(members, func(a, b int) bool {
		return x.sets[key][members[a]] > x.sets[key][members[b]]
	})
	return members
}

func (x *memIndex) Tops(_ context.Context, key string, n int64) ([]string, error) {
	x.Lock()
	defer x.Unlock()
	members := x.sorted(key)
	if int64(len(members)) > n {
		members = members[:n]
	}
	return members, nil
}

func (x *memIndex) Remove(_ context.Context, key string, member string) error {
	x.Lock()
	defer x.Unlock()
	if x.failRemove {
		return errors.New("index unavailable")
	}
	delete(x.sets[key], member)
	return nil
}

func (x *memIndex) Trim(_ context.Context, key string, max int64) error {
	x.Lock()
	defer x.Unlock()
	members := x.sorted(key)
	for int64(len(members)) > max {
		delete(x.sets[key], members[len(members)-1])
		members = members[:len(members)-1]
	}
	return nil
}

func (x *memIndex) Count(_ context.Context, key string) (int64, error) {
	x.Lock()
	defer x.Unlock()
	if x.failCount {
		return 0, errors.New("index unavailable")
	}
	return int64(len(x.sets[key])), nil
}

func (x *memIndex) size(key string) int {
	x.Lock()
	defer x.Unlock()
	return len(x.sets[key])
}

type memUserRepo struct {
	sync.Mutex
	users map[uuid.UUID]*dmn.User
	err   error // returned by every lookup when set
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[uuid.UUID]*dmn.User)}
}

func (r *memUserRepo) Save(_ context.Context, u *dmn.User) error {
	r.Lock()
	defer r.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *memUserRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.User, error) {
	r.Lock()
	defer r.Unlock()
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, i.ErrNotFound
}

func (r *memUserRepo) ByUsername(_ context.Context, username string) (*dmn.User, error) {
	r.Lock()
	defer r.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, i.ErrNotFound
}

type stubTokenizer struct {
	claims map[string]interface{}
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, _ time.Duration) (string, error) {
	s.claims = claims
	return fmt.Sprintf("token-for-%v", claims[i.ClaimUserID]), nil
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return s.claims, nil
}

type recordingLogger struct {
	sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, msg string) {
	l.Lock()
	defer l.Unlock()
	l.lines = append(l.lines, level+" "+msg)
}

func (l *recordingLogger) has(prefix string) bool {
	l.Lock()
	defer l.Unlock()
	for _, line := range l.lines {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func (l *recordingLogger) Debug(msg string) { l.record("DEBUG", msg) }
func (l *recordingLogger) Info(msg string)  { l.record("INFO", msg) }
func (l *recordingLogger) Warn(msg string)  { l.record("WARN", msg) }
func (l *recordingLogger) Error(msg string) { l.record("ERROR", msg) }
