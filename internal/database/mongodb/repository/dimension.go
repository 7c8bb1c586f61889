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

type DimensionRepository struct {
	collection *mongo.Collection
}

func NewDimensionRepository(mongoClient *client.MongoClient) *DimensionRepository {
	repository := &DimensionRepository{
		collection: mongoClient.Collection(core.MongoCollectionDimensions),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *DimensionRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.DimensionIndexes)
	return nil
}

func (repository *DimensionRepository) Create(contextValue context.Context, dimension *model.Dimension) (_ *model.Dimension, returnedError error) {
	nowUTC := time.Now().UTC()
	dimension.CreatedAt = nowUTC
	dimension.UpdatedAt = nowUTC

	if _, returnedError = repository.collection.InsertOne(contextValue, dimension); returnedError != nil {
		return nil, returnedError
	}
	return dimension, nil
}

func (repository *DimensionRepository) GetByID(contextValue context.Context, dimensionIdentifier string) (_ *model.Dimension, returnedError error) {
	var dimension model.Dimension
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": dimensionIdentifier}).Decode(&dimension); returnedError != nil {
		return nil, returnedError
	}
	return &dimension, nil
}

// List 依 sortOrder 排序，順序即為 registry 的插入順序
func (repository *DimensionRepository) List(contextValue context.Context, listOptions core.ListOptions) (_ []*model.Dimension, returnedError error) {
	findOptions := pageOptions(listOptions, bson.D{{Key: "sortOrder", Value: 1}, {Key: "_id", Value: 1}})
	cursor, findError := repository.collection.Find(contextValue, filterOf(listOptions), findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var dimensions []*model.Dimension
	if returnedError = cursor.All(contextValue, &dimensions); returnedError != nil {
		return nil, returnedError
	}
	return dimensions, nil
}

func (repository *DimensionRepository) UpdateByID(contextValue context.Context, dimensionIdentifier string, setFields bson.M) (_ int64, returnedError error) {
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": dimensionIdentifier}, withUpdatedAt(bson.M{"$set": setFields}))
	if updateError != nil {
		return 0, updateError
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

func (repository *DimensionRepository) DeleteByID(contextValue context.Context, dimensionIdentifier string) (returnedError error) {
	result, deleteError := repository.collection.DeleteOne(contextValue, bson.M{"_id": dimensionIdentifier})
	if deleteError != nil {
		return deleteError
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
