package core

import "go.mongodb.org/mongo-driver/bson"

type MongoDatabaseName string
type MongoCollection string
type RedisKey string
type FluentdSubTag string

// StoreDriver 決定組織設定與健康檢查紀錄從哪裡讀寫
type StoreDriver string

const (
	StoreDriverMongo   StoreDriver = "mongo"
	StoreDriverBackend StoreDriver = "backend"
)

// ─── MongoDB ───────────────────────────────────────────────────────────────────
const (
	MongoDBSquadHealth MongoDatabaseName = "squadhealth"
)

// MongoDB collections
const (
	MongoCollectionDimensions      MongoCollection = "health_dimensions"
	MongoCollectionHierarchyLevels MongoCollection = "hierarchy_levels"
	MongoCollectionUsers           MongoCollection = "users"
	MongoCollectionTeams           MongoCollection = "teams"
	MongoCollectionSessions        MongoCollection = "health_check_sessions"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

const (
	RedisKeyServerName RedisKey = "squadhealth"      // 伺服器名稱
	RedisKeySnapshot   RedisKey = "org_snapshot"     // 組織快照快取
	RedisKeySubmission RedisKey = "submission_quota" // 每日提交次數
)

const (
	FluentdRequest    FluentdSubTag = "request_log"
	FluentdResponse   FluentdSubTag = "response_log"
	FluentdSubmission FluentdSubTag = "submission_log"
)

type ListOptions struct {
	Filter bson.M `json:"filter,omitempty" bson:"filter,omitempty"`
	Page   int64  `json:"page,omitempty" bson:"page,omitempty"`
	Size   int64  `json:"size,omitempty" bson:"size,omitempty"`
}
