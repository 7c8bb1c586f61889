package model

import (
	"time"

	"squadhealth/internal/healthcheck"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Dimension 健康檢查的題目；_id 使用 slug (例如 "mission")
type Dimension struct {
	ID              string    `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Description     string    `json:"description,omitempty" bson:"description,omitempty"`
	GoodDescription string    `json:"goodDescription,omitempty" bson:"goodDescription,omitempty"`
	BadDescription  string    `json:"badDescription,omitempty" bson:"badDescription,omitempty"`
	IsActive        bool      `json:"isActive" bson:"isActive"`
	Weight          float64   `json:"weight" bson:"weight"`
	SortOrder       int       `json:"sortOrder" bson:"sortOrder"`
	CreatedAt       time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt" bson:"updatedAt"`
}

var DimensionIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "sortOrder", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("idx_sortOrder_id"),
	},
	{
		Keys:    bson.D{{Key: "isActive", Value: 1}},
		Options: options.Index().SetName("idx_isActive"),
	},
}

func (d *Dimension) ToDomain() healthcheck.Dimension {
	return healthcheck.Dimension{
		ID:              d.ID,
		Name:            d.Name,
		Description:     d.Description,
		GoodDescription: d.GoodDescription,
		BadDescription:  d.BadDescription,
		IsActive:        d.IsActive,
		Weight:          d.Weight,
	}
}

func DimensionFromDomain(d healthcheck.Dimension, sortOrder int) *Dimension {
	return &Dimension{
		ID:              d.ID,
		Name:            d.Name,
		Description:     d.Description,
		GoodDescription: d.GoodDescription,
		BadDescription:  d.BadDescription,
		IsActive:        d.IsActive,
		Weight:          d.Weight,
		SortOrder:       sortOrder,
	}
}
