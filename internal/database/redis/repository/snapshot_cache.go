package repository

import (
	"context"
	"errors"
	"time"

	"squadhealth/internal/core"
	client "squadhealth/internal/database/client"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

// SnapshotCacheRepository 組織快照快取；僅影響資料新鮮度，讀寫失敗時由呼叫端回源
type SnapshotCacheRepository struct {
	client *redis.Client
}

func NewSnapshotCacheRepository(client *client.RedisClient) *SnapshotCacheRepository {
	return &SnapshotCacheRepository{client: client.Client()}
}

// Get 命中時解碼到 dest 並回傳 true
func (repository *SnapshotCacheRepository) Get(contextValue context.Context, name string, dest any) (hit bool, returnedError error) {
	raw, getError := repository.client.Get(contextValue, repository.buildKey(name)).Result()
	if errors.Is(getError, redis.Nil) {
		return false, nil
	}
	if getError != nil {
		return false, getError
	}
	if returnedError = sonic.UnmarshalString(raw, dest); returnedError != nil {
		return false, returnedError
	}
	return true, nil
}

func (repository *SnapshotCacheRepository) Set(contextValue context.Context, name string, value any, ttl time.Duration) (returnedError error) {
	encoded, marshalError := sonic.MarshalString(value)
	if marshalError != nil {
		return marshalError
	}
	return repository.client.Set(contextValue, repository.buildKey(name), encoded, ttl).Err()
}

// Invalidate 管理端修改組織設定後呼叫
func (repository *SnapshotCacheRepository) Invalidate(contextValue context.Context, name string) (returnedError error) {
	return repository.client.Del(contextValue, repository.buildKey(name)).Err()
}

func (repository *SnapshotCacheRepository) buildKey(name string) string {
	return redisKey(core.RedisKeySnapshot, name)
}
