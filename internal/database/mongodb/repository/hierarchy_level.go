package repository

import (
	"context"
	"time"

	"squadhealth/internal/core"
	client "squadhealth/internal/database/client"
	"squadhealth/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type HierarchyLevelRepository struct {
	collection *mongo.Collection
}

func NewHierarchyLevelRepository(mongoClient *client.MongoClient) *HierarchyLevelRepository {
	repository := &HierarchyLevelRepository{
		collection: mongoClient.Collection(core.MongoCollectionHierarchyLevels),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *HierarchyLevelRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.HierarchyLevelIndexes)
	return nil
}

func (repository *HierarchyLevelRepository) Create(contextValue context.Context, level *model.HierarchyLevel) (_ *model.HierarchyLevel, returnedError error) {
	nowUTC := time.Now().UTC()
	level.CreatedAt = nowUTC
	level.UpdatedAt = nowUTC

	if _, returnedError = repository.collection.InsertOne(contextValue, level); returnedError != nil {
		return nil, returnedError
	}
	return level, nil
}

func (repository *HierarchyLevelRepository) GetByID(contextValue context.Context, levelIdentifier string) (_ *model.HierarchyLevel, returnedError error) {
	var level model.HierarchyLevel
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": levelIdentifier}).Decode(&level); returnedError != nil {
		return nil, returnedError
	}
	return &level, nil
}

// ListAll 依 rank 由高層到低層
func (repository *HierarchyLevelRepository) ListAll(contextValue context.Context) (_ []*model.HierarchyLevel, returnedError error) {
	cursor, findError := repository.collection.Find(contextValue, bson.M{}, pageOptions(core.ListOptions{}, bson.D{{Key: "rank", Value: 1}}))
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var levels []*model.HierarchyLevel
	if returnedError = cursor.All(contextValue, &levels); returnedError != nil {
		return nil, returnedError
	}
	return levels, nil
}

// Replace 整筆覆寫 (保留 createdAt)
func (repository *HierarchyLevelRepository) Replace(contextValue context.Context, level *model.HierarchyLevel) (_ *model.HierarchyLevel, returnedError error) {
	setFields := bson.M{
		"name":              level.Name,
		"rank":              level.Rank,
		"isTeamMemberLevel": level.IsTeamMemberLevel,
		"permissions":       level.Permissions,
	}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": level.ID}, withUpdatedAt(bson.M{"$set": setFields}))
	if updateError != nil {
		return nil, updateError
	}
	if result.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return repository.GetByID(contextValue, level.ID)
}

func (repository *HierarchyLevelRepository) DeleteByID(contextValue context.Context, levelIdentifier string) (returnedError error) {
	result, deleteError := repository.collection.DeleteOne(contextValue, bson.M{"_id": levelIdentifier})
	if deleteError != nil {
		return deleteError
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
