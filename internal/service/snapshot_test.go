package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"squadhealth/config"
	cErr "squadhealth/internal/pkg/error"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotLoadUsesCache(t *testing.T) {
	conf := &config.Configuration{Cache: config.Cache{Enabled: true}}
	svc := newTestServices(newTestSource(), conf)
	ctx := context.Background()

	first, err := svc.snapshots.Load(ctx)
	require.NoError(t, err)
	second, err := svc.snapshots.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(1), svc.source.loads.Load(), "second load is served from the cache")
	assert.Len(t, second.Users, len(first.Users))
	assert.Contains(t, svc.cache.entries, "org:mongo")

	u, ok := second.Directory().User("alice")
	require.True(t, ok)
	assert.Equal(t, []string{"alpha"}, u.TeamIDs)
}

func TestSnapshotInvalidateForcesReload(t *testing.T) {
	conf := &config.Configuration{Cache: config.Cache{Enabled: true}}
	svc := newTestServices(newTestSource(), conf)
	ctx := context.Background()

	_, err := svc.snapshots.Load(ctx)
	require.NoError(t, err)
	svc.snapshots.Invalidate(ctx)
	_, err = svc.snapshots.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(2), svc.source.loads.Load())
}

func TestSnapshotWithoutCacheAlwaysReads(t *testing.T) {
	svc := newTestServices(newTestSource(), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.snapshots.Load(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), svc.source.loads.Load())
	assert.Empty(t, svc.cache.entries)
}

func TestSnapshotSourceErrorIsDatabaseError(t *testing.T) {
	source := newTestSource()
	source.err = errors.New("connection refused")
	svc := newTestServices(source, nil)

	_, err := svc.snapshots.Load(context.Background())
	requireAppError(t, err, http.StatusInternalServerError, cErr.DATABASE_ERROR)
}

func TestSnapshotCacheKeyFollowsDriver(t *testing.T) {
	conf := &config.Configuration{
		Cache: config.Cache{Enabled: true},
		Store: config.Store{Driver: "backend"},
	}
	svc := newTestServices(newTestSource(), conf)

	_, err := svc.snapshots.Load(context.Background())
	require.NoError(t, err)
	assert.Contains(t, svc.cache.entries, "org:backend")
}
