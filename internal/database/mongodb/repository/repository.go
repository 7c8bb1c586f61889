package repository

import (
	"squadhealth/internal/core"

	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewDimensionRepository,
	NewHierarchyLevelRepository,
	NewUserRepository,
	NewTeamRepository,
	NewHealthCheckSessionRepository,
)

func withUpdatedAt(update bson.M) bson.M {
	// 確保 $currentDate 存在
	currentDate, ok := update["$currentDate"].(bson.M)
	if !ok || currentDate == nil {
		currentDate = bson.M{}
	}
	currentDate["updatedAt"] = true
	update["$currentDate"] = currentDate
	return update
}

// pageOptions Size <= 0 時不分頁
func pageOptions(listOptions core.ListOptions, sort bson.D) *options.FindOptions {
	findOptions := options.Find().SetSort(sort)
	if listOptions.Size > 0 {
		findOptions.SetSkip(listOptions.Page * listOptions.Size).SetLimit(listOptions.Size)
	}
	return findOptions
}

func filterOf(listOptions core.ListOptions) bson.M {
	if listOptions.Filter == nil {
		return bson.M{}
	}
	return listOptions.Filter
}
