package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"
	client "squadhealth/internal/database/client"
	"squadhealth/internal/healthcheck"
	cErr "squadhealth/internal/pkg/error"

	"go.mongodb.org/mongo-driver/mongo"
)

// SessionQuery 空值欄位不列入條件
type SessionQuery struct {
	TeamID string
	UserID string
	Period string
	Since  time.Time
}

// DataSource 組織設定與健康檢查紀錄的讀寫來源
type DataSource interface {
	Dimensions(ctx context.Context) ([]healthcheck.Dimension, error)
	HierarchyLevels(ctx context.Context) ([]healthcheck.HierarchyLevel, error)
	Users(ctx context.Context) ([]healthcheck.User, error)
	Teams(ctx context.Context) ([]healthcheck.Team, error)
	Sessions(ctx context.Context, query SessionQuery) ([]healthcheck.Session, error)
	CreateSession(ctx context.Context, session healthcheck.Session) (healthcheck.Session, error)
}

var ErrDuplicateSession = errors.New("session already submitted for this team today")

// NewDataSource 依 STORE__DRIVER 選擇資料來源，預設 mongo
func NewDataSource(conf *config.Configuration, mongoSource *MongoDataSource, backendSource *BackendDataSource) (DataSource, error) {
	switch core.StoreDriver(conf.Store.Driver) {
	case "", core.StoreDriverMongo:
		return mongoSource, nil
	case core.StoreDriverBackend:
		if conf.Backend.BaseURL == "" {
			return nil, fmt.Errorf("store driver %q requires BACKEND__BASE_URL", conf.Store.Driver)
		}
		return backendSource, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", conf.Store.Driver)
	}
}

// sourceError 把資料來源的錯誤轉成 API 錯誤
func sourceError(err error, desc string) error {
	if err == nil {
		return nil
	}
	var appErr *cErr.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, ErrDuplicateSession) {
		return cErr.Conflict(err.Error())
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return cErr.NotFound(desc + ": not found")
	}
	var backendErr *client.BackendError
	if errors.As(err, &backendErr) {
		switch backendErr.StatusCode {
		case http.StatusNotFound:
			return cErr.NotFound(desc + ": not found")
		case http.StatusConflict:
			return cErr.Conflict(desc)
		}
		return cErr.ExternalRequestError(desc)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return cErr.GatewayTimeout(desc)
	}
	return cErr.DatabaseError(desc)
}

func isBackendConflict(err error) bool {
	var backendErr *client.BackendError
	return errors.As(err, &backendErr) && backendErr.StatusCode == http.StatusConflict
}
