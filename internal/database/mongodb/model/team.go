package model

import (
	"time"

	"squadhealth/internal/healthcheck"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SupervisorLink struct {
	UserID  primitive.ObjectID `json:"userId" bson:"userId"`
	LevelID string             `json:"levelId" bson:"levelId"`
}

type Team struct {
	ID              primitive.ObjectID   `json:"id" bson:"_id"`
	Name            string               `json:"name" bson:"name"`
	Cadence         string               `json:"cadence" bson:"cadence"`
	NextCheckDate   time.Time            `json:"nextCheckDate" bson:"nextCheckDate"`
	Members         []primitive.ObjectID `json:"members" bson:"members"`
	SupervisorChain []SupervisorLink     `json:"supervisorChain" bson:"supervisorChain"` // 由 team lead 往上到最高主管
	CreatedAt       time.Time            `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt" bson:"updatedAt"`
}

var TeamIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "supervisorChain.userId", Value: 1}},
		Options: options.Index().SetName("idx_supervisorChain_userId"),
	},
	{
		Keys:    bson.D{{Key: "members", Value: 1}},
		Options: options.Index().SetName("idx_members"),
	},
	{
		Keys:    bson.D{{Key: "nextCheckDate", Value: 1}},
		Options: options.Index().SetName("idx_nextCheckDate"),
	},
}

func (t *Team) ToDomain() healthcheck.Team {
	chain := make([]healthcheck.SupervisorLink, 0, len(t.SupervisorChain))
	for _, link := range t.SupervisorChain {
		chain = append(chain, healthcheck.SupervisorLink{UserID: link.UserID.Hex(), LevelID: link.LevelID})
	}
	return healthcheck.Team{
		ID:              t.ID.Hex(),
		Name:            t.Name,
		Cadence:         healthcheck.Cadence(t.Cadence),
		NextCheckDate:   t.NextCheckDate.UTC(),
		Members:         hexIDs(t.Members),
		SupervisorChain: chain,
	}
}

func TeamFromDomain(t healthcheck.Team) (*Team, error) {
	id, err := existingObjectID("id", t.ID)
	if err != nil {
		return nil, err
	}
	members, err := objectIDs("members", t.Members)
	if err != nil {
		return nil, err
	}
	chain := make([]SupervisorLink, 0, len(t.SupervisorChain))
	for _, link := range t.SupervisorChain {
		userID, err := requiredObjectID("supervisorChain.userId", link.UserID)
		if err != nil {
			return nil, err
		}
		chain = append(chain, SupervisorLink{UserID: userID, LevelID: link.LevelID})
	}
	return &Team{
		ID:              id,
		Name:            t.Name,
		Cadence:         string(t.Cadence),
		NextCheckDate:   t.NextCheckDate.UTC(),
		Members:         members,
		SupervisorChain: chain,
	}, nil
}
