package repository

import (
	"context"
	"time"

	"squadhealth/config"
	"squadhealth/internal/core"
	"squadhealth/internal/database/client"
	"squadhealth/internal/database/fluentd/model"

	"github.com/bytedance/sonic"
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(NewLogRepository)

const loggedAtLayout = "2006-01-02 15:04:05.999999 UTC"

// LogRepository 統一負責發送 Request/Response/Submission Log 到 Fluentd
type LogRepository struct {
	fluentdClient client.Client
	version       string
}

func NewLogRepository(config *config.Configuration, client client.Client) *LogRepository {
	version := "1.0.0"
	if config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{fluentdClient: client, version: version}
}

func (repository *LogRepository) LogRequest(ctx context.Context, req model.RequestLog) error {
	if req.LoggedAt == "" {
		req.LoggedAt = time.Now().UTC().Format(loggedAtLayout)
	}
	if req.Version == "" {
		req.Version = repository.version
	}
	return repository.post(ctx, core.FluentdRequest, req)
}

func (repository *LogRepository) LogResponse(ctx context.Context, resp model.ResponseLog) error {
	if resp.LoggedAt == "" {
		resp.LoggedAt = time.Now().UTC().Format(loggedAtLayout)
	}
	if resp.Version == "" {
		resp.Version = repository.version
	}
	return repository.post(ctx, core.FluentdResponse, resp)
}

func (repository *LogRepository) LogSubmission(ctx context.Context, submission model.SubmissionLog) error {
	if submission.LoggedAt == "" {
		submission.LoggedAt = time.Now().UTC().Format(loggedAtLayout)
	}
	if submission.Version == "" {
		submission.Version = repository.version
	}
	return repository.post(ctx, core.FluentdSubmission, submission)
}

// post 先轉成 map 再送出，讓 fluentd 端拿到的是扁平的 json 欄位
func (repository *LogRepository) post(ctx context.Context, tag core.FluentdSubTag, record any) error {
	b, err := sonic.Marshal(record)
	if err != nil {
		return err
	}
	var fluentdMessage map[string]any
	if err := sonic.Unmarshal(b, &fluentdMessage); err != nil {
		return err
	}
	return repository.fluentdClient.Post(ctx, string(tag), fluentdMessage)
}
