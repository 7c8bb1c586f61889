package model

import (
	"time"

	"squadhealth/internal/healthcheck"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DayLayout session.day 欄位格式，用於「同一人同一團隊同一天只能提交一次」的唯一索引
const DayLayout = "2006-01-02"

type Response struct {
	DimensionID string `json:"dimensionId" bson:"dimensionId"`
	Score       int    `json:"score" bson:"score"`
	Trend       string `json:"trend" bson:"trend"`
	Comment     string `json:"comment,omitempty" bson:"comment,omitempty"`
}

type HealthCheckSession struct {
	ID               primitive.ObjectID `json:"id" bson:"_id"`
	TeamID           primitive.ObjectID `json:"teamId" bson:"teamId"`
	UserID           primitive.ObjectID `json:"userId" bson:"userId"`
	Date             time.Time          `json:"date" bson:"date"`
	Day              string             `json:"day" bson:"day"`
	AssessmentPeriod string             `json:"assessmentPeriod" bson:"assessmentPeriod"`
	Responses        []Response         `json:"responses" bson:"responses"`
	Completed        bool               `json:"completed" bson:"completed"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
}

var HealthCheckSessionIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "teamId", Value: 1}, {Key: "day", Value: 1}},
		Options: options.Index().SetName("uniq_userId_teamId_day").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "teamId", Value: 1}, {Key: "date", Value: -1}},
		Options: options.Index().SetName("idx_teamId_date_desc"),
	},
	{
		Keys:    bson.D{{Key: "assessmentPeriod", Value: 1}},
		Options: options.Index().SetName("idx_assessmentPeriod"),
	},
}

func (s *HealthCheckSession) ToDomain() healthcheck.Session {
	responses := make([]healthcheck.Response, 0, len(s.Responses))
	for _, r := range s.Responses {
		responses = append(responses, healthcheck.Response{
			DimensionID: r.DimensionID,
			Score:       healthcheck.Score(r.Score),
			Trend:       healthcheck.Trend(r.Trend),
			Comment:     r.Comment,
		})
	}
	return healthcheck.Session{
		ID:               s.ID.Hex(),
		TeamID:           s.TeamID.Hex(),
		UserID:           s.UserID.Hex(),
		Date:             s.Date.UTC(),
		AssessmentPeriod: s.AssessmentPeriod,
		Responses:        responses,
		Completed:        s.Completed,
	}
}

func SessionFromDomain(s healthcheck.Session) (*HealthCheckSession, error) {
	id, err := existingObjectID("id", s.ID)
	if err != nil {
		return nil, err
	}
	teamID, err := requiredObjectID("teamId", s.TeamID)
	if err != nil {
		return nil, err
	}
	userID, err := requiredObjectID("userId", s.UserID)
	if err != nil {
		return nil, err
	}
	responses := make([]Response, 0, len(s.Responses))
	for _, r := range s.Responses {
		responses = append(responses, Response{
			DimensionID: r.DimensionID,
			Score:       int(r.Score),
			Trend:       string(r.Trend),
			Comment:     r.Comment,
		})
	}
	return &HealthCheckSession{
		ID:               id,
		TeamID:           teamID,
		UserID:           userID,
		Date:             s.Date.UTC(),
		Day:              s.Date.UTC().Format(DayLayout),
		AssessmentPeriod: s.Period(),
		Responses:        responses,
		Completed:        s.Completed,
	}, nil
}
