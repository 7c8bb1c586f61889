package service

import (
	client "squadhealth/internal/database/client"
	redisRepo "squadhealth/internal/database/redis/repository"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewMongoDataSource,
	NewBackendDataSource,
	NewDataSource,
	wire.Bind(new(SnapshotCache), new(*redisRepo.SnapshotCacheRepository)),
	NewSnapshotService,
	NewSessionService,
	NewDashboardService,
	NewExportService,
	NewAdminService,
	NewScheduleService,
	NewProxyService,
	ProvideHealthDependencies,
	NewHealthService,
)

// ProvideHealthDependencies readiness 需要檢查的連線
func ProvideHealthDependencies(mongoClient *client.MongoClient, redisClient *client.RedisClient) map[string]Pinger {
	return map[string]Pinger{
		"mongodb": mongoClient,
		"redis":   redisClient,
	}
}
