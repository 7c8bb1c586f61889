package client

import (
	"context"
	"fmt"
	"time"

	"squadhealth/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const defaultRedisDialTimeout = 5 * time.Second

// RedisClient 組織快照快取與提交配額使用的 Redis 連線
type RedisClient struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewRedisClient(logger *zap.Logger, config *config.Configuration) (*RedisClient, func(), error) {
	options := redisOptions(config.Redis)
	rdb := redis.NewClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), options.DialTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		logger.Error("failed to connect to Redis", zap.String("addr", options.Addr), zap.Error(err))
		return nil, nil, err
	}
	logger.Info("Connected to Redis", zap.String("addr", options.Addr), zap.Int("db", options.DB))

	redisClient := &RedisClient{rdb: rdb, logger: logger}
	cleanup := func() {
		logger.Info("closing the Redis resources")
		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close Redis client", zap.Error(err))
		}
	}
	return redisClient, cleanup, nil
}

func redisOptions(conf config.Redis) *redis.Options {
	dialTimeout := defaultRedisDialTimeout
	if conf.DialTimeout > 0 {
		dialTimeout = time.Duration(conf.DialTimeout) * time.Second
	}
	return &redis.Options{
		Addr:        fmt.Sprintf("%s:%d", conf.Host, conf.Port),
		Password:    conf.Password,
		DB:          conf.DB,
		PoolSize:    conf.PoolSize,
		DialTimeout: dialTimeout,
	}
}

// Ping 給 readiness 檢查使用
func (redisClient *RedisClient) Ping(ctx context.Context) error {
	return redisClient.rdb.Ping(ctx).Err()
}

func (redisClient *RedisClient) Close() error {
	return redisClient.rdb.Close()
}

// Client 給 repository 使用的底層連線
func (redisClient *RedisClient) Client() *redis.Client {
	return redisClient.rdb
}
