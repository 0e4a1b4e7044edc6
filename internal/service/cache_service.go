package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/noah-isme/academy-api/pkg/errors"
)

// CacheRepository abstracts persistence for cached payloads.
type CacheRepository interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// CacheResult is the outcome of a lookup. Err is set when the backend failed;
// callers treat that the same as a miss.
type CacheResult struct {
	Found bool
	Err   error
}

// CacheWriteResult is the outcome of a write or delete.
type CacheWriteResult struct {
	OK  bool
	Err error
}

// CacheService is a best-effort side cache. Backend failures are logged,
// counted and reported in the result, never returned as errors.
type CacheService struct {
	repo       CacheRepository
	metrics    *MetricsService
	defaultTTL time.Duration
	logger     *zap.Logger
	enabled    bool
}

// NewCacheService constructs a cache service.
func NewCacheService(repo CacheRepository, metrics *MetricsService, defaultTTL time.Duration, logger *zap.Logger, enabled bool) *CacheService {
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{repo: repo, metrics: metrics, defaultTTL: defaultTTL, logger: logger, enabled: enabled}
}

// Enabled indicates whether caching is active.
func (s *CacheService) Enabled() bool {
	return s != nil && s.enabled && s.repo != nil
}

// Get loads key into dest.
func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) CacheResult {
	if !s.Enabled() {
		return CacheResult{}
	}
	start := time.Now()
	err := s.repo.Get(ctx, key, dest)
	duration := time.Since(start)
	if err == nil {
		s.metrics.RecordCacheOperation(true, duration)
		return CacheResult{Found: true}
	}

	s.metrics.RecordCacheOperation(false, duration)
	if errors.Is(err, appErrors.ErrCacheMiss) {
		return CacheResult{}
	}
	s.metrics.RecordCacheError("get")
	s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
	return CacheResult{Err: err}
}

// Set stores value under key. A ttl of zero uses the default TTL.
func (s *CacheService) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) CacheWriteResult {
	if !s.Enabled() {
		return CacheWriteResult{}
	}
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	start := time.Now()
	err := s.repo.Set(ctx, key, value, ttl)
	s.metrics.ObserveCacheWrite(time.Since(start))
	if err != nil {
		s.metrics.RecordCacheError("set")
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Duration("ttl", ttl), zap.Error(err))
		return CacheWriteResult{Err: err}
	}
	return CacheWriteResult{OK: true}
}

// Delete drops a single key.
func (s *CacheService) Delete(ctx context.Context, key string) CacheWriteResult {
	if !s.Enabled() {
		return CacheWriteResult{}
	}
	if err := s.repo.Delete(ctx, key); err != nil {
		s.metrics.RecordCacheError("delete")
		s.logger.Warn("cache delete failed", zap.String("key", key), zap.Error(err))
		return CacheWriteResult{Err: err}
	}
	return CacheWriteResult{OK: true}
}

// Invalidate removes cached values for the provided pattern. Unlike the other
// calls it returns the failure so operators running it can observe it.
func (s *CacheService) Invalidate(ctx context.Context, pattern string) error {
	if !s.Enabled() {
		return nil
	}
	if err := s.repo.DeleteByPattern(ctx, pattern); err != nil {
		s.metrics.RecordCacheError("delete")
		s.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(err))
		return err
	}
	return nil
}

// CourseListKey derives the listing key. The search term is trimmed and lower-cased.
func CourseListKey(page, limit int, search string) string {
	return fmt.Sprintf("courses:paginated:page=%d:limit=%d:search=%s", page, limit, normalizeSearch(search))
}

// UserProfileKey is the cache key of a user's profile.
func UserProfileKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

func normalizeSearch(search string) string {
	return strings.ToLower(strings.TrimSpace(search))
}
