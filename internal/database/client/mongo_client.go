package client

import (
	"context"
	"strings"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const defaultMongoConnectTimeout = 10 * time.Second

// MongoClient 連接 MongoDB
type MongoClient struct {
	client   *mongo.Client
	database string
	logger   *zap.Logger
}

func NewMongoClient(logger *zap.Logger, config *config.Configuration) (*MongoClient, func(), error) {
	mongoClient := &MongoClient{logger: logger, database: string(core.MongoDBSquadHealth)}
	if config.MongoDB.Database != "" {
		mongoClient.database = config.MongoDB.Database
	}
	client, err := mongoClient.connectDB(config)
	if err != nil {
		logger.Error("failed to connect to MongoDB", zap.Error(err))
		return nil, nil, err
	}
	logger.Info("Connected to MongoDB")
	mongoClient.client = client

	cleanup := func() {
		logger.Info("closing the MongoDB resources")
		if err := mongoClient.Close(); err != nil {
			logger.Error("failed to close MongoDB client", zap.Error(err))
		}
	}

	return mongoClient, cleanup, nil
}

func (client *MongoClient) connectDB(config *config.Configuration) (*mongo.Client, error) {
	timeout := defaultMongoConnectTimeout
	if config.MongoDB.ConnectTimeout > 0 {
		timeout = time.Duration(config.MongoDB.ConnectTimeout) * time.Second
	}
	opts := options.Client().
		ApplyURI(buildMongoURI(config.MongoDB.URI, config.MongoDB.Options)).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)
	if config.MongoDB.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(config.MongoDB.MaxPoolSize)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	mc, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	// 啟動時就確認可連線，避免第一個請求才失敗
	if err := mc.Ping(ctx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(context.Background())
		return nil, err
	}
	return mc, nil
}

func buildMongoURI(baseURI, optionStr string) string {
	if optionStr == "" {
		return baseURI
	}
	if strings.Contains(baseURI, "?") {
		return baseURI + "&" + optionStr
	}
	return baseURI + "?" + optionStr
}

// Close 關閉 MongoDB 連線
func (m *MongoClient) Close() error {
	return m.client.Disconnect(context.Background())
}

// Client 回傳 MongoDB 連線
func (m *MongoClient) Client() *mongo.Client {
	return m.client
}

// Database 回傳設定中的資料庫 (MONGODB__DATABASE，預設 squadhealth)
func (m *MongoClient) Database() *mongo.Database {
	return m.client.Database(m.database)
}

// Collection 取得服務使用的 collection
func (m *MongoClient) Collection(name core.MongoCollection) *mongo.Collection {
	return m.Database().Collection(string(name))
}

func (m *MongoClient) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}
