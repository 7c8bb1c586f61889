package model

import (
	"time"

	"squadhealth/internal/healthcheck"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type User struct {
	ID               primitive.ObjectID   `json:"id" bson:"_id"`                                  // 使用者唯一識別碼
	Username         string               `json:"username" bson:"username"`                       // 登入帳號
	Name             string               `json:"name" bson:"name"`                               // 顯示名稱
	Email            string               `json:"email,omitempty" bson:"email,omitempty"`         // 使用者信箱
	HierarchyLevelID string               `json:"hierarchyLevelId" bson:"hierarchyLevelId"`       // 所屬階層
	ReportsTo        *primitive.ObjectID  `json:"reportsTo,omitempty" bson:"reportsTo,omitempty"` // 直屬主管
	TeamIDs          []primitive.ObjectID `json:"teamIds" bson:"teamIds"`                         // 所屬團隊
	IsAdmin          bool                 `json:"isAdmin" bson:"isAdmin"`                         // 系統管理員
	CreatedAt        time.Time            `json:"createdAt" bson:"createdAt"`                     // 建立時間
	UpdatedAt        time.Time            `json:"updatedAt" bson:"updatedAt"`                     // 更新時間
}

var UserIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetName("uniq_username").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "reportsTo", Value: 1}},
		Options: options.Index().SetName("idx_reportsTo"),
	},
	{
		Keys:    bson.D{{Key: "hierarchyLevelId", Value: 1}},
		Options: options.Index().SetName("idx_hierarchyLevelId"),
	},
}

func (u *User) ToDomain() healthcheck.User {
	user := healthcheck.User{
		ID:               u.ID.Hex(),
		Username:         u.Username,
		Name:             u.Name,
		HierarchyLevelID: u.HierarchyLevelID,
		TeamIDs:          hexIDs(u.TeamIDs),
		IsAdmin:          u.IsAdmin,
	}
	if u.ReportsTo != nil {
		user.ReportsTo = u.ReportsTo.Hex()
	}
	return user
}

func UserFromDomain(u healthcheck.User) (*User, error) {
	id, err := existingObjectID("id", u.ID)
	if err != nil {
		return nil, err
	}
	reportsTo, err := optionalObjectID("reportsTo", u.ReportsTo)
	if err != nil {
		return nil, err
	}
	teamIDs, err := objectIDs("teamIds", u.TeamIDs)
	if err != nil {
		return nil, err
	}
	return &User{
		ID:               id,
		Username:         u.Username,
		Name:             u.Name,
		HierarchyLevelID: u.HierarchyLevelID,
		ReportsTo:        reportsTo,
		TeamIDs:          teamIDs,
		IsAdmin:          u.IsAdmin,
	}, nil
}
