package database

import (
	client "squadhealth/internal/database/client"
	fluentdRepo "squadhealth/internal/database/fluentd/repository"
	mongoRepo "squadhealth/internal/database/mongodb/repository"
	redisRepo "squadhealth/internal/database/redis/repository"

	"github.com/google/wire"
)

// ClientSet 連線層；mongo / redis 啟動時會 ping，失敗即中止啟動
var ClientSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	client.NewBackendClient,
)

// RepositorySet mongo 為組織設定與紀錄，redis 為快取與配額，fluentd 為稽核日誌
var RepositorySet = wire.NewSet(
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)

var ProviderSet = wire.NewSet(ClientSet, RepositorySet)
