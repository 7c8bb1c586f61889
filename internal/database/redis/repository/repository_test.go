package repository

import (
	"context"
	"strconv"
	"testing"
	"time"

	"squadhealth/config"
	client "squadhealth/internal/database/client"
	"squadhealth/internal/telemetry"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *client.RedisClient) {
	t.Helper()
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	conf := &config.Configuration{Redis: config.Redis{Host: mr.Host(), Port: port}}
	redisClient, cleanup, err := client.NewRedisClient(zap.NewNop(), conf)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return mr, redisClient
}

func noopTrace(t *testing.T) *telemetry.Trace {
	t.Helper()
	tr, _, err := telemetry.NewTrace(&config.Configuration{}, zap.NewNop())
	require.NoError(t, err)
	return tr
}

type cachedSnapshot struct {
	Users []string          `json:"users"`
	Ranks map[string]int    `json:"ranks"`
	At    time.Time         `json:"at"`
	Meta  map[string]string `json:"meta,omitempty"`
}

func TestSnapshotCacheRoundTrip(t *testing.T) {
	mr, redisClient := setupTestRedis(t)
	repo := NewSnapshotCacheRepository(redisClient)
	ctx := context.Background()

	var got cachedSnapshot
	hit, err := repo.Get(ctx, "org", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	want := cachedSnapshot{
		Users: []string{"vp", "director"},
		Ranks: map[string]int{"vp": 1},
		At:    time.Date(2024, time.September, 2, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Set(ctx, "org", want, time.Minute))
	assert.True(t, mr.Exists("squadhealth:org_snapshot:org"))

	hit, err = repo.Get(ctx, "org", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want.Users, got.Users)
	assert.Equal(t, want.Ranks, got.Ranks)
	assert.True(t, want.At.Equal(got.At))

	mr.FastForward(2 * time.Minute)
	hit, err = repo.Get(ctx, "org", &got)
	require.NoError(t, err)
	assert.False(t, hit, "expired entries miss")

	require.NoError(t, repo.Set(ctx, "org", want, time.Minute))
	require.NoError(t, repo.Invalidate(ctx, "org"))
	assert.False(t, mr.Exists("squadhealth:org_snapshot:org"))
}

func TestSnapshotCacheCorruptEntry(t *testing.T) {
	mr, redisClient := setupTestRedis(t)
	repo := NewSnapshotCacheRepository(redisClient)
	require.NoError(t, mr.Set("squadhealth:org_snapshot:org", "{not json"))

	var got cachedSnapshot
	hit, err := repo.Get(context.Background(), "org", &got)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestSubmissionQuota(t *testing.T) {
	mr, redisClient := setupTestRedis(t)
	repo := NewSubmissionQuotaRepository(noopTrace(t), redisClient)
	ctx := context.Background()

	remaining, _, err := repo.GetCurrent(ctx, "alice", "2024-09-02", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)

	remaining, ttl, err := repo.Consume(ctx, "alice", "2024-09-02", 3600, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)
	assert.Equal(t, int64(3600), ttl)

	remaining, _, err = repo.Consume(ctx, "alice", "2024-09-02", 3600, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	_, _, err = repo.Consume(ctx, "alice", "2024-09-02", 3600, 2)
	assert.ErrorIs(t, err, ErrQuotaExceeded)

	// 其他使用者與其他日期互不影響
	remaining, _, err = repo.Consume(ctx, "bob", "2024-09-02", 3600, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, remaining)

	require.NoError(t, repo.Refund(ctx, "bob", "2024-09-02"))
	remaining, ttl, err = repo.GetCurrent(ctx, "bob", "2024-09-02", 2)
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
	assert.Positive(t, ttl)

	mr.FastForward(2 * time.Hour)
	require.NoError(t, repo.Refund(ctx, "alice", "2024-09-02"), "refund after expiry is a no-op")
	assert.False(t, mr.Exists("squadhealth:submission_quota:alice:2024-09-02"))
}
