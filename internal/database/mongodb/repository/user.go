package repository

import (
	"context"
	"fmt"
	"time"

	"squadhealth/internal/core"
	client "squadhealth/internal/database/client"
	"squadhealth/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(mongoClient *client.MongoClient) *UserRepository {
	repository := &UserRepository{
		collection: mongoClient.Collection(core.MongoCollectionUsers),
	}
	// 啟動時建立常用索引（冪等、存在即跳過）
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *UserRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.UserIndexes)
	return nil
}

// Create：單文件插入
func (repository *UserRepository) Create(
	contextValue context.Context,
	user *model.User,
) (_ *model.User, returnedError error) {

	nowUTC := time.Now().UTC()
	// 若上游未指定 _id，可自己先產生；InsertOne 會沿用
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.CreatedAt = nowUTC
	user.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, user)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	user.ID = objectID
	return user, nil
}

// GetByID：單文件讀取
func (repository *UserRepository) GetByID(
	contextValue context.Context,
	userIdentifier primitive.ObjectID,
) (_ *model.User, returnedError error) {

	var user model.User
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": userIdentifier}).Decode(&user); returnedError != nil {
		return nil, returnedError
	}
	return &user, nil
}

// CountByLevel 刪除階層前確認是否仍有人使用
func (repository *UserRepository) CountByLevel(
	contextValue context.Context,
	levelIdentifier string,
) (_ int64, returnedError error) {
	return repository.collection.CountDocuments(contextValue, bson.M{"hierarchyLevelId": levelIdentifier})
}

// CountReports 刪除使用者前確認是否仍有直屬部屬
func (repository *UserRepository) CountReports(
	contextValue context.Context,
	userIdentifier primitive.ObjectID,
) (_ int64, returnedError error) {
	return repository.collection.CountDocuments(contextValue, bson.M{"reportsTo": userIdentifier})
}

// Replace：覆寫可編輯欄位（保留 createdAt）
func (repository *UserRepository) Replace(
	contextValue context.Context,
	user *model.User,
) (_ *model.User, returnedError error) {

	setFields := bson.M{
		"username":         user.Username,
		"name":             user.Name,
		"email":            user.Email,
		"hierarchyLevelId": user.HierarchyLevelID,
		"teamIds":          user.TeamIDs,
		"isAdmin":          user.IsAdmin,
	}
	update := bson.M{"$set": setFields}
	if user.ReportsTo != nil {
		setFields["reportsTo"] = user.ReportsTo
	} else {
		update["$unset"] = bson.M{"reportsTo": ""}
	}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": user.ID}, withUpdatedAt(update))
	if updateError != nil {
		return nil, updateError
	}
	if result.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return repository.GetByID(contextValue, user.ID)
}

// DeleteByID：單文件刪除
func (repository *UserRepository) DeleteByID(
	contextValue context.Context,
	userIdentifier primitive.ObjectID,
) (returnedError error) {

	result, deleteError := repository.collection.DeleteOne(contextValue, bson.M{"_id": userIdentifier})
	if deleteError != nil {
		return deleteError
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// List：分頁列舉（依建立時間倒序）
func (repository *UserRepository) List(
	contextValue context.Context,
	listOptions core.ListOptions,
) (_ []*model.User, returnedError error) {

	findOptions := pageOptions(listOptions, bson.D{{Key: "createdAt", Value: -1}})
	cursor, findError := repository.collection.Find(contextValue, filterOf(listOptions), findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var users []*model.User
	if returnedError = cursor.All(contextValue, &users); returnedError != nil {
		return nil, returnedError
	}
	return users, nil
}

// ListAll：全量列舉，組織快照使用（依建立時間正序，維持穩定的部屬順序）
func (repository *UserRepository) ListAll(
	contextValue context.Context,
) (_ []*model.User, returnedError error) {

	findOptions := pageOptions(core.ListOptions{}, bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, findError := repository.collection.Find(contextValue, bson.M{}, findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var users []*model.User
	for cursor.Next(contextValue) {
		var user model.User
		if decodeError := cursor.Decode(&user); decodeError != nil {
			return nil, decodeError
		}
		users = append(users, &user)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}
	return users, nil
}
