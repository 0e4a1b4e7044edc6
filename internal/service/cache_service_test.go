package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheServiceBestEffortResults(t *testing.T) {
	repo := newMemoryCache()
	metrics := NewMetricsService()
	svc := NewCacheService(repo, metrics, time.Minute, nil, true)
	ctx := context.Background()

	var out map[string]int
	res := svc.Get(ctx, "k", &out)
	assert.False(t, res.Found)
	assert.NoError(t, res.Err)

	write := svc.Set(ctx, "k", map[string]int{"a": 1}, 0)
	assert.True(t, write.OK)
	assert.Equal(t, time.Minute, repo.ttls["k"])

	res = svc.Get(ctx, "k", &out)
	require.True(t, res.Found)
	assert.Equal(t, 1, out["a"])

	repo.getErr = errors.New("redis get k: broken pipe")
	res = svc.Get(ctx, "k", &out)
	assert.False(t, res.Found)
	assert.Error(t, res.Err)

	repo.setErr = errors.New("redis set k: OOM")
	write = svc.Set(ctx, "k", 1, time.Second)
	assert.False(t, write.OK)
	assert.Error(t, write.Err)

	assert.True(t, svc.Delete(ctx, "k").OK)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.CacheHits)
	assert.Equal(t, uint64(2), snapshot.CacheMisses)
	assert.Equal(t, uint64(2), snapshot.CacheErrors)
}

func TestCacheServiceDisabled(t *testing.T) {
	repo := newMemoryCache()
	svc := NewCacheService(repo, nil, 0, nil, false)
	ctx := context.Background()

	assert.False(t, svc.Set(ctx, "k", 1, 0).OK)
	assert.Zero(t, repo.sets)
	var out int
	assert.False(t, svc.Get(ctx, "k", &out).Found)
	assert.NoError(t, svc.Invalidate(ctx, "*"))

	var nilSvc *CacheService
	assert.False(t, nilSvc.Enabled())
	assert.False(t, nilSvc.Get(ctx, "k", &out).Found)
}

func TestCacheServiceInvalidate(t *testing.T) {
	repo := newMemoryCache()
	svc := NewCacheService(repo, nil, 0, nil, true)
	ctx := context.Background()

	svc.Set(ctx, CourseListKey(1, 25, ""), 1, 0)
	svc.Set(ctx, CourseListKey(2, 25, "Go"), 1, 0)
	svc.Set(ctx, UserProfileKey(1), 1, 0)

	require.NoError(t, svc.Invalidate(ctx, "courses:paginated:*"))
	assert.Len(t, repo.entries, 1)
	_, ok := repo.entries["user:1"]
	assert.True(t, ok)
}

func TestCourseListKey(t *testing.T) {
	assert.Equal(t, "courses:paginated:page=1:limit=25:search=", CourseListKey(1, 25, ""))
	assert.Equal(t, CourseListKey(1, 25, ""), CourseListKey(1, 25, "   "))
	assert.Equal(t, CourseListKey(3, 10, "go"), CourseListKey(3, 10, " GO "))
	assert.NotEqual(t, CourseListKey(1, 12, ""), CourseListKey(11, 2, ""))
	assert.NotEqual(t, CourseListKey(1, 25, "go"), CourseListKey(1, 25, ""))
}
