package model

import (
	"time"

	"squadhealth/internal/healthcheck"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// HierarchyLevel 組織階層；rank 1 為最高層
type HierarchyLevel struct {
	ID                string                  `json:"id" bson:"_id"`
	Name              string                  `json:"name" bson:"name"`
	Rank              int                     `json:"rank" bson:"rank"`
	IsTeamMemberLevel bool                    `json:"isTeamMemberLevel" bson:"isTeamMemberLevel"`
	Permissions       healthcheck.Permissions `json:"permissions" bson:"permissions"`
	CreatedAt         time.Time               `json:"createdAt" bson:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt" bson:"updatedAt"`
}

var HierarchyLevelIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "rank", Value: 1}},
		Options: options.Index().SetName("uniq_rank").SetUnique(true),
	},
}

func (l *HierarchyLevel) ToDomain() healthcheck.HierarchyLevel {
	return healthcheck.HierarchyLevel{
		ID:                l.ID,
		Name:              l.Name,
		Rank:              l.Rank,
		IsTeamMemberLevel: l.IsTeamMemberLevel,
		Permissions:       l.Permissions,
	}
}

func HierarchyLevelFromDomain(l healthcheck.HierarchyLevel) *HierarchyLevel {
	return &HierarchyLevel{
		ID:                l.ID,
		Name:              l.Name,
		Rank:              l.Rank,
		IsTeamMemberLevel: l.IsTeamMemberLevel,
		Permissions:       l.Permissions,
	}
}
