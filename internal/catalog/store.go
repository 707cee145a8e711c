package catalog

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/imunderthetree/Codeforces-Dashboard/internal/codeforces"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/logger"
	"github.com/imunderthetree/Codeforces-Dashboard/pkg/redis"
)

// Fetcher is the slice of the Codeforces client the store needs.
type Fetcher interface {
	Problemset(ctx context.Context) ([]codeforces.Problem, error)
}

// Store holds the session's problemset snapshot. The catalog is fetched once,
// kept in memory for the configured TTL, and optionally written through to
// Redis so restarts within the TTL skip the (large) problemset call.
type Store struct {
	mu        sync.Mutex
	fetcher   Fetcher
	cache     *redis.Cache
	logger    *logger.Logger
	ttl       time.Duration
	problems  []codeforces.Problem
	fetchedAt time.Time
}

// NewStore creates a catalog store. cache may wrap a disabled Redis client.
func NewStore(fetcher Fetcher, cache *redis.Cache, ttl time.Duration, log *logger.Logger) *Store {
	return &Store{
		fetcher: fetcher,
		cache:   cache,
		logger:  log,
		ttl:     ttl,
	}
}

// Get returns the catalog snapshot, fetching it if missing or stale.
func (s *Store) Get(ctx context.Context) ([]codeforces.Problem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fresh() {
		return s.problems, nil
	}

	// Try the shared cache before hitting the API.
	var cached []codeforces.Problem
	if found, err := s.cache.Get(ctx, redis.ProblemsetKey(), &cached); err == nil && found && len(cached) > 0 {
		s.problems = cached
		s.fetchedAt = time.Now()
		s.logger.WithField("problems", len(cached)).Debug("Problem catalog loaded from cache")
		return s.problems, nil
	}

	return s.refreshLocked(ctx)
}

// Refresh forces a re-fetch of the catalog and returns its new size.
func (s *Store) Refresh(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	problems, err := s.refreshLocked(ctx)
	if err != nil {
		return 0, err
	}
	return len(problems), nil
}

// Size returns the snapshot size and its age; ok is false before first fetch.
func (s *Store) Size() (size int, age time.Duration, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fetchedAt.IsZero() {
		return 0, 0, false
	}
	return len(s.problems), time.Since(s.fetchedAt), true
}

func (s *Store) fresh() bool {
	return !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < s.ttl
}

func (s *Store) refreshLocked(ctx context.Context) ([]codeforces.Problem, error) {
	problems, err := s.fetcher.Problemset(ctx)
	if err != nil {
		// A stale snapshot beats no snapshot.
		if len(s.problems) > 0 {
			s.logger.WithError(err).Warn("Catalog refresh failed, serving stale snapshot")
			return s.problems, nil
		}
		return nil, fmt.Errorf("fetch problemset: %w", err)
	}

	s.problems = problems
	s.fetchedAt = time.Now()

	if err := s.cache.Set(ctx, redis.ProblemsetKey(), problems, s.ttl); err != nil {
		s.logger.WithError(err).Warn("Failed to cache problem catalog")
	}

	s.logger.WithField("problems", len(problems)).Info("Problem catalog refreshed")
	return s.problems, nil
}
