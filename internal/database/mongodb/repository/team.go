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

type TeamRepository struct {
	collection *mongo.Collection
}

func NewTeamRepository(mongoClient *client.MongoClient) *TeamRepository {
	repository := &TeamRepository{
		collection: mongoClient.Collection(core.MongoCollectionTeams),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *TeamRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.TeamIndexes)
	return nil
}

func (repository *TeamRepository) Create(contextValue context.Context, team *model.Team) (_ *model.Team, returnedError error) {
	nowUTC := time.Now().UTC()
	if team.ID.IsZero() {
		team.ID = primitive.NewObjectID()
	}
	team.CreatedAt = nowUTC
	team.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, team)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	team.ID = objectID
	return team, nil
}

func (repository *TeamRepository) GetByID(contextValue context.Context, teamIdentifier primitive.ObjectID) (_ *model.Team, returnedError error) {
	var team model.Team
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": teamIdentifier}).Decode(&team); returnedError != nil {
		return nil, returnedError
	}
	return &team, nil
}

func (repository *TeamRepository) List(contextValue context.Context, listOptions core.ListOptions) (_ []*model.Team, returnedError error) {
	findOptions := pageOptions(listOptions, bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}})
	cursor, findError := repository.collection.Find(contextValue, filterOf(listOptions), findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var teams []*model.Team
	if returnedError = cursor.All(contextValue, &teams); returnedError != nil {
		return nil, returnedError
	}
	return teams, nil
}

// ListDue 下次檢查日已到 (<= now) 或尚未設定的團隊
func (repository *TeamRepository) ListDue(contextValue context.Context, now time.Time) (_ []*model.Team, returnedError error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"nextCheckDate": bson.M{"$lte": now.UTC()}},
		bson.M{"nextCheckDate": bson.M{"$exists": false}},
	}}
	return repository.List(contextValue, core.ListOptions{Filter: filter})
}

func (repository *TeamRepository) Replace(contextValue context.Context, team *model.Team) (_ *model.Team, returnedError error) {
	setFields := bson.M{
		"name":            team.Name,
		"cadence":         team.Cadence,
		"nextCheckDate":   team.NextCheckDate,
		"members":         team.Members,
		"supervisorChain": team.SupervisorChain,
	}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": team.ID}, withUpdatedAt(bson.M{"$set": setFields}))
	if updateError != nil {
		return nil, updateError
	}
	if result.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return repository.GetByID(contextValue, team.ID)
}

func (repository *TeamRepository) SetNextCheckDate(contextValue context.Context, teamIdentifier primitive.ObjectID, next time.Time) (returnedError error) {
	update := bson.M{"$set": bson.M{"nextCheckDate": next.UTC()}}
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": teamIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return updateError
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repository *TeamRepository) DeleteByID(contextValue context.Context, teamIdentifier primitive.ObjectID) (returnedError error) {
	result, deleteError := repository.collection.DeleteOne(contextValue, bson.M{"_id": teamIdentifier})
	if deleteError != nil {
		return deleteError
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
