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
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SessionFilter 空值欄位不列入條件
type SessionFilter struct {
	TeamID *primitive.ObjectID
	UserID *primitive.ObjectID
	Period string
	From   *time.Time
	To     *time.Time
}

func (f SessionFilter) toBson() bson.M {
	filter := bson.M{}
	if f.TeamID != nil {
		filter["teamId"] = *f.TeamID
	}
	if f.UserID != nil {
		filter["userId"] = *f.UserID
	}
	if f.Period != "" {
		filter["assessmentPeriod"] = f.Period
	}
	dateRange := bson.M{}
	if f.From != nil {
		dateRange["$gte"] = f.From.UTC()
	}
	if f.To != nil {
		dateRange["$lte"] = f.To.UTC()
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}
	return filter
}

type HealthCheckSessionRepository struct {
	collection *mongo.Collection
}

func NewHealthCheckSessionRepository(mongoClient *client.MongoClient) *HealthCheckSessionRepository {
	repository := &HealthCheckSessionRepository{
		collection: mongoClient.Collection(core.MongoCollectionSessions),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *HealthCheckSessionRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.HealthCheckSessionIndexes)
	return nil
}

// Create 只新增不覆寫；重複 (userId, teamId, day) 時回傳 mongo duplicate key error
func (repository *HealthCheckSessionRepository) Create(contextValue context.Context, session *model.HealthCheckSession) (_ *model.HealthCheckSession, returnedError error) {
	if session.ID.IsZero() {
		session.ID = primitive.NewObjectID()
	}
	session.CreatedAt = time.Now().UTC()

	insertResult, insertError := repository.collection.InsertOne(contextValue, session)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	session.ID = objectID
	return session, nil
}

func (repository *HealthCheckSessionRepository) List(contextValue context.Context, filter SessionFilter) (_ []*model.HealthCheckSession, returnedError error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "_id", Value: 1}})
	cursor, findError := repository.collection.Find(contextValue, filter.toBson(), findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var sessions []*model.HealthCheckSession
	if returnedError = cursor.All(contextValue, &sessions); returnedError != nil {
		return nil, returnedError
	}
	return sessions, nil
}
